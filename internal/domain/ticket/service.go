package ticket

import (
	"context"
	"time"
)

// BalanceResponse is one employee's ledger with the unexpired total.
type BalanceResponse struct {
	Employee string         `json:"employee"`
	Balance  float64        `json:"balance"`
	Entries  []BalanceEntry `json:"entries"`
}

type Service interface {
	Balance(ctx context.Context, employee string) (BalanceResponse, error)
	// PurgeExpired removes ledger entries that lapsed before the retention
	// cutoff; the sweep job calls this.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
