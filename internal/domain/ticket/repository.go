package ticket

import (
	"context"
	"time"
)

// Repository - interface for the exchange_ticket_ledger table
type Repository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	// ListByEmployeeForUpdate reads an employee's entries with a row lock so
	// concurrent credits and debits against the same ledger serialize.
	// Callers must be inside a transaction.
	ListByEmployeeForUpdate(ctx context.Context, employee string) ([]Entry, error)
	ListByEmployee(ctx context.Context, employee string) ([]Entry, error)
	UpdateQuantity(ctx context.Context, id int64, quantity float64) error
	Delete(ctx context.Context, id int64) error
	// DeleteExpiredBefore removes entries whose computed expiry is before
	// the cutoff; returns the number of rows removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
