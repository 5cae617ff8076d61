package attendance

import (
	"sort"
	"time"
)

// MaxPunchesPerDay caps the ordered punch slots stored per employee-day.
const MaxPunchesPerDay = 10

// PunchRecord holds one employee's raw punch timestamps for one calendar
// date, in punch order. Re-uploading the same employee-day overwrites the
// slots wholesale.
type PunchRecord struct {
	EmployeeID   string      `json:"employee_id"`
	EmployeeName string      `json:"employee_name"`
	Department   string      `json:"department"`
	Date         time.Time   `json:"date"`
	Times        []time.Time `json:"times"`
}

// SortedTimes returns the day's punches in chronological order. Sheets and
// stored slots keep upload order, which is not guaranteed chronological.
func (p *PunchRecord) SortedTimes() []time.Time {
	times := append([]time.Time(nil), p.Times...)
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

// WorkIntervals pairs consecutive punches into (clock-in, clock-out)
// intervals, in chronological order. An unpaired trailing punch is dropped.
func (p *PunchRecord) WorkIntervals() [][2]time.Time {
	times := p.SortedTimes()
	var intervals [][2]time.Time
	for i := 0; i+1 < len(times); i += 2 {
		intervals = append(intervals, [2]time.Time{times[i], times[i+1]})
	}
	return intervals
}

// Suggestion statuses.
const (
	SuggestionOvertime = 0 // unexplained overtime, needs a registration
	SuggestionAbsence  = 1 // absence window, needs a leave request
)

// Suggestion is one inferred anomaly for an employee-month. Handled and
// under-review flags are never persisted; reconciliation computes them per
// read.
type Suggestion struct {
	ID           int64     `json:"id"`
	EmployeeName string    `json:"employee_name"`
	Department   string    `json:"department"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       int       `json:"status"`
	Message      string    `json:"message"`
}

// SuggestionView is a suggestion decorated with read-time reconciliation.
type SuggestionView struct {
	Suggestion
	Handled     bool `json:"handled"`
	UnderReview bool `json:"under_review"`
}

// Outstanding reports whether the anomaly still needs action.
func (v SuggestionView) Outstanding() bool {
	return !v.Handled && !v.UnderReview
}

// PunchRow is one merged row delivered by sheet ingestion.
type PunchRow struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Date         time.Time
	Times        []time.Time
}
