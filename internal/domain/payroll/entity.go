package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Festivals whose days qualify for the flat incentive bonus once the day's
// approved overtime reaches the threshold.
var IncentiveFestivals = map[string]bool{
	"Spring Festival":       true,
	"National Day":          true,
	"Heat-Protection Leave": true,
}

// IncentiveThresholdHours is the per-day approved overtime needed before an
// incentive festival day pays the flat bonus.
const IncentiveThresholdHours = 8.0

// DayPay is one day's approved overtime compensation. On an incentive day
// the amount is the flat bonus regardless of hours beyond the threshold.
type DayPay struct {
	Date      time.Time       `json:"date"`
	Hours     float64         `json:"hours"`
	Festival  string          `json:"festival,omitempty"`
	Incentive bool            `json:"incentive"`
	Amount    decimal.Decimal `json:"amount"`
}

// MonthlySummary aggregates one employee-month for downstream pay.
type MonthlySummary struct {
	Employee   string          `json:"employee"`
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	TotalHours float64         `json:"total_hours"`
	Total      decimal.Decimal `json:"total"`
	Days       []DayPay        `json:"days"`
}

type Service interface {
	MonthlyOvertimePay(ctx context.Context, employee string, year, month int) (MonthlySummary, error)
}
