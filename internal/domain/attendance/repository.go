package attendance

import (
	"context"
	"time"
)

// PunchRepository - interface for the punch_records table
type PunchRepository interface {
	// Upsert writes one employee-day keyed on (employee_id, date),
	// overwriting the time slots on conflict.
	Upsert(ctx context.Context, record PunchRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeName string, date time.Time) (PunchRecord, error)
	ListByEmployeeAndMonth(ctx context.Context, employeeName string, year, month int) ([]PunchRecord, error)
}

// SuggestionRepository - interface for the suggestions table
type SuggestionRepository interface {
	// ReplaceForMonth deletes every suggestion under the (employee,
	// department, year, month) key and inserts the fresh set. Full replace,
	// never an incremental merge.
	ReplaceForMonth(ctx context.Context, employeeName, department string, year, month int, suggestions []Suggestion) error
	ListByEmployeeAndMonth(ctx context.Context, employeeName string, year, month int) ([]Suggestion, error)
	ListByMonth(ctx context.Context, year, month int) ([]Suggestion, error)
	ListByDepartmentAndMonth(ctx context.Context, department string, year, month int) ([]Suggestion, error)
}
