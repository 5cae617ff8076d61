package ticket

import (
	"sort"
	"time"
)

// Consumption is one slice taken from a ledger entry by a debit plan.
type Consumption struct {
	EntryID   int64   `json:"entry_id"`
	Amount    float64 `json:"amount"`
	Remaining float64 `json:"remaining"`
}

// Plan is the outcome of planning a debit: per-entry consumptions plus the
// repository actions that realize them. Entries drained to zero are
// deleted, a partially consumed entry keeps its remainder.
type Plan struct {
	Consumed []Consumption
	Updates  []Entry
	Deletes  []int64
}

// PlanConsumption plans a debit of amount tickets against the given ledger
// entries, consuming in ascending expiry order and skipping entries already
// expired as of now. Physical storage order is irrelevant: the queue is
// rebuilt from computed expiries. Returns ErrInsufficientTickets when the
// unexpired balance cannot cover the amount; no partial plan is produced in
// that case.
func PlanConsumption(entries []Entry, amount float64, now time.Time) (Plan, error) {
	if amount <= 0 {
		return Plan{}, ErrNonPositiveAmount
	}

	queue := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Expired(now) && e.Quantity > 0 {
			queue = append(queue, e)
		}
	}
	sort.Slice(queue, func(i, j int) bool {
		ei, ej := queue[i].ExpiresAt(), queue[j].ExpiresAt()
		if ei.Equal(ej) {
			return queue[i].ID < queue[j].ID
		}
		return ei.Before(ej)
	})

	if Balance(queue, now) < amount {
		return Plan{}, ErrInsufficientTickets
	}

	var plan Plan
	remaining := amount
	for _, e := range queue {
		if remaining <= 0 {
			break
		}
		take := e.Quantity
		if take > remaining {
			take = remaining
		}
		left := round2(e.Quantity - take)
		remaining = round2(remaining - take)

		plan.Consumed = append(plan.Consumed, Consumption{
			EntryID:   e.ID,
			Amount:    round2(take),
			Remaining: left,
		})
		if left <= 0 {
			plan.Deletes = append(plan.Deletes, e.ID)
		} else {
			updated := e
			updated.Quantity = left
			plan.Updates = append(plan.Updates, updated)
		}
	}

	return plan, nil
}
