package ticket

import "errors"

var (
	ErrInsufficientTickets = errors.New("Insufficient exchange ticket balance")
	ErrNonPositiveAmount   = errors.New("Ticket amount must be positive")
	ErrEntryNotFound       = errors.New("Exchange ticket ledger entry not found")
)
