package overtime

import "time"

// Validation failure reasons, in the order the checks run.
const (
	ReasonDuplicateRange      = "duplicate time range"
	ReasonPunchMismatch       = "punch mismatch"
	ReasonDuplicateSubmission = "duplicate submission"
)

// Interval is a half-open-agnostic time window used by batch validation.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Contains(other Interval) bool {
	return !i.Start.After(other.Start) && !i.End.Before(other.End)
}

// ValidateItem is one pending registration offered to batch validation.
type ValidateItem struct {
	ID        string    `json:"id"`
	Applicant string    `json:"applicant"`
	Date      time.Time `json:"date"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (v ValidateItem) interval() Interval {
	return Interval{Start: v.StartTime, End: v.EndTime}
}

// ValidateResult is the verdict for one item.
type ValidateResult struct {
	ID     string `json:"id"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateBatch runs the three pre-approval checks over a batch of pending
// items. The checks are ordered and the first failure wins:
//
//  1. the item's interval overlaps any other item in the batch, whoever the
//     applicant,
//  2. the interval is not fully contained in any punch-derived work interval
//     for that person and date,
//  3. the interval overlaps an existing overtime record for that person.
//
// workIntervals supplies the punch-derived work intervals per person and
// date; existing is the set of already-stored records to test overlap
// against.
func ValidateBatch(items []ValidateItem, workIntervals func(applicant string, date time.Time) []Interval, existing []Request) []ValidateResult {
	results := make([]ValidateResult, 0, len(items))

	for idx, item := range items {
		results = append(results, validateOne(idx, item, items, workIntervals, existing))
	}

	return results
}

func validateOne(idx int, item ValidateItem, items []ValidateItem, workIntervals func(string, time.Time) []Interval, existing []Request) ValidateResult {
	iv := item.interval()

	// 1. duplicate range inside the batch, across all applicants
	for j, other := range items {
		if j == idx {
			continue
		}
		if iv.Overlaps(other.interval()) {
			return ValidateResult{ID: item.ID, Reason: ReasonDuplicateRange}
		}
	}

	// 2. punch containment
	contained := false
	for _, work := range workIntervals(item.Applicant, item.Date) {
		if work.Contains(iv) {
			contained = true
			break
		}
	}
	if !contained {
		return ValidateResult{ID: item.ID, Reason: ReasonPunchMismatch}
	}

	// 3. overlap with an existing record
	for _, rec := range existing {
		if rec.ID == item.ID || rec.Applicant != item.Applicant {
			continue
		}
		if iv.Overlaps(Interval{Start: rec.StartTime, End: rec.EndTime}) {
			return ValidateResult{ID: item.ID, Reason: ReasonDuplicateSubmission}
		}
	}

	return ValidateResult{ID: item.ID, Valid: true}
}
