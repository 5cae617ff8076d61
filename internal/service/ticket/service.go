package ticket

import (
	"context"
	"fmt"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
)

// LedgerService serves ledger balances and runs the retention sweep.
// Credits and debits happen inside the overtime and leave approval flows,
// not here.
type LedgerService struct {
	ticketRepo ticket.Repository
	now        func() time.Time
}

func NewLedgerService(ticketRepo ticket.Repository) *LedgerService {
	return &LedgerService{
		ticketRepo: ticketRepo,
		now:        time.Now,
	}
}

// Balance lists an employee's unexpired entries with computed expiries and
// the summed total. Expired rows still waiting for the sweep are skipped.
func (s *LedgerService) Balance(ctx context.Context, employee string) (ticket.BalanceResponse, error) {
	entries, err := s.ticketRepo.ListByEmployee(ctx, employee)
	if err != nil {
		return ticket.BalanceResponse{}, fmt.Errorf("list ticket ledger: %w", err)
	}

	now := s.now()
	resp := ticket.BalanceResponse{
		Employee: employee,
		Balance:  ticket.Balance(entries, now),
		Entries:  make([]ticket.BalanceEntry, 0, len(entries)),
	}
	for _, e := range entries {
		if e.Expired(now) {
			continue
		}
		resp.Entries = append(resp.Entries, ticket.BalanceEntry{
			Entry:      e,
			ExpiryDate: e.ExpiresAt(),
		})
	}
	return resp, nil
}

func (s *LedgerService) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	removed, err := s.ticketRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge expired tickets: %w", err)
	}
	metrics.TicketsSwept.Add(float64(removed))
	return removed, nil
}
