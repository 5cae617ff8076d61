package ticket

import "time"

// Entry is one exchange-ticket ledger row. Quantity is in tickets with a
// half-ticket minimum granularity (0.25 appears transiently from hourly
// credits).
type Entry struct {
	ID         int64     `json:"id"`
	Employee   string    `json:"employee"`
	Quantity   float64   `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// ExpiresAt computes the entry's expiry from its acquisition time. Tickets
// earned before September lapse at year end; tickets earned September or
// later carry three months into the new year.
func (e Entry) ExpiresAt() time.Time {
	if e.AcquiredAt.Month() < time.September {
		return time.Date(e.AcquiredAt.Year(), time.December, 31, 23, 59, 59, 0, e.AcquiredAt.Location())
	}
	return e.AcquiredAt.AddDate(0, 3, 0)
}

// Expired reports whether the entry has lapsed as of now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt())
}

// BalanceEntry is a ledger row decorated with its computed expiry, the
// shape the balance query returns.
type BalanceEntry struct {
	Entry
	ExpiryDate time.Time `json:"expiry_date"`
}

// Balance sums the unexpired quantity across entries.
func Balance(entries []Entry, now time.Time) float64 {
	var total float64
	for _, e := range entries {
		if !e.Expired(now) {
			total += e.Quantity
		}
	}
	return round2(total)
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int64(v*100-0.5)) / 100
	}
	return float64(int64(v*100+0.5)) / 100
}
