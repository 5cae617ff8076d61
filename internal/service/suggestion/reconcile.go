package suggestion

import (
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/trip"
)

// RequestSet holds one employee's requests overlapping a suggestion month,
// the material reconciliation tests suggestions against.
type RequestSet struct {
	Overtimes []overtime.Request
	Leaves    []leave.Request
	Trips     []trip.Request
}

// Reconcile decorates a suggestion with read-time handled/under-review
// flags. A suggestion is handled when an approved record of the matching
// type fully contains its interval; failing that it is under review when a
// still-pending record does. Nothing is persisted.
func Reconcile(s attendance.Suggestion, requests RequestSet) attendance.SuggestionView {
	view := attendance.SuggestionView{Suggestion: s}

	switch s.Status {
	case attendance.SuggestionOvertime:
		view.Handled = overtimeCovers(s, requests.Overtimes, func(st overtime.Status) bool {
			return st == overtime.StatusApproved
		})
		if !view.Handled {
			view.UnderReview = overtimeCovers(s, requests.Overtimes, overtime.Status.Pending)
		}
	case attendance.SuggestionAbsence:
		view.Handled = leaveCovers(s, requests.Leaves, func(st leave.Status) bool {
			return st == leave.StatusApproved
		}) || tripCovers(s, requests.Trips, func(r *trip.Request) bool {
			return r.DualApproved()
		})
		if !view.Handled {
			view.UnderReview = leaveCovers(s, requests.Leaves, leave.Status.Pending) ||
				tripCovers(s, requests.Trips, func(r *trip.Request) bool {
					return r.Overall() == trip.OverallPending
				})
		}
	}
	return view
}

func overtimeCovers(s attendance.Suggestion, records []overtime.Request, match func(overtime.Status) bool) bool {
	for _, r := range records {
		if match(r.Status) && contains(r.StartTime, r.EndTime, s.StartTime, s.EndTime) {
			return true
		}
	}
	return false
}

func leaveCovers(s attendance.Suggestion, records []leave.Request, match func(leave.Status) bool) bool {
	for _, r := range records {
		if match(r.Status) && contains(r.StartTime, r.EndTime, s.StartTime, s.EndTime) {
			return true
		}
	}
	return false
}

func tripCovers(s attendance.Suggestion, records []trip.Request, match func(*trip.Request) bool) bool {
	for i := range records {
		r := &records[i]
		start, end := r.Interval()
		if match(r) && contains(start, end, s.StartTime, s.EndTime) {
			return true
		}
	}
	return false
}

// contains reports whether [outerStart, outerEnd] fully covers
// [innerStart, innerEnd].
func contains(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !outerStart.After(innerStart) && !outerEnd.Before(innerEnd)
}
