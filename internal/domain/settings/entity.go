package settings

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// Settings is the single-row operational configuration. AttendanceAdmin is
// the employee name holding upload rights and the final overtime gate.
type Settings struct {
	AttendanceAdmin    string          `json:"attendance_admin"`
	OvertimeHourlyRate decimal.Decimal `json:"overtime_hourly_rate"`
	IncentiveBonus     decimal.Decimal `json:"incentive_bonus"`
}

var ErrNotConfigured = errors.New("Settings row is missing")

// Repository - interface for the settings table (single row)
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, s Settings) error
}
