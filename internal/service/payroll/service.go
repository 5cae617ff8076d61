package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plantops/attendance-backend-go/internal/domain/holiday"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/payroll"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
)

// PayService aggregates approved overtime into per-day pay lines. Only
// paid-out requests count; ticket-settled overtime never reaches payroll
// because its pay-hours field is zero.
type PayService struct {
	overtimeRepo overtime.Repository
	holidayRepo  holiday.Repository
	settingsRepo settings.Repository
}

func NewPayService(overtimeRepo overtime.Repository, holidayRepo holiday.Repository, settingsRepo settings.Repository) *PayService {
	return &PayService{
		overtimeRepo: overtimeRepo,
		holidayRepo:  holidayRepo,
		settingsRepo: settingsRepo,
	}
}

// MonthlyOvertimePay sums an employee's approved overtime hours by day and
// prices each day. An incentive festival day whose total reaches the
// threshold pays the flat bonus instead of hourly; hours beyond the
// threshold on such a day earn nothing extra.
func (s *PayService) MonthlyOvertimePay(ctx context.Context, employee string, year, month int) (payroll.MonthlySummary, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("load settings: %w", err)
	}
	holidays, err := s.holidayRepo.ListByYear(ctx, year)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("list holidays: %w", err)
	}
	calendar := holiday.NewCalendar(holidays)

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	requests, err := s.overtimeRepo.ListByApplicantInRange(ctx, employee, from, to)
	if err != nil {
		return payroll.MonthlySummary{}, fmt.Errorf("list overtime requests: %w", err)
	}

	hoursByDay := make(map[string]float64)
	dates := make(map[string]time.Time)
	for _, r := range requests {
		if r.Status != overtime.StatusApproved || r.PayHours <= 0 {
			continue
		}
		if r.Date.Before(from) || !r.Date.Before(to) {
			continue
		}
		key := r.Date.Format("2006-01-02")
		hoursByDay[key] += r.PayHours
		dates[key] = r.Date
	}

	summary := payroll.MonthlySummary{
		Employee: employee,
		Year:     year,
		Month:    month,
		Total:    decimal.Zero,
		Days:     make([]payroll.DayPay, 0, len(hoursByDay)),
	}
	for key, hours := range hoursByDay {
		date := dates[key]
		day := payroll.DayPay{
			Date:     date,
			Hours:    hours,
			Festival: calendar.Festival(date),
		}
		if payroll.IncentiveFestivals[day.Festival] && hours >= payroll.IncentiveThresholdHours {
			day.Incentive = true
			day.Amount = cfg.IncentiveBonus
		} else {
			day.Amount = decimal.NewFromFloat(hours).Mul(cfg.OvertimeHourlyRate)
		}
		summary.TotalHours += hours
		summary.Total = summary.Total.Add(day.Amount)
		summary.Days = append(summary.Days, day)
	}
	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date.Before(summary.Days[j].Date)
	})
	return summary, nil
}
