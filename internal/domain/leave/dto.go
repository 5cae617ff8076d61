package leave

import (
	"time"

	"github.com/plantops/attendance-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	Category            Category `json:"category"`
	Shift               string   `json:"shift,omitempty"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	DurationDays        float64  `json:"duration_days"`
	Reason              string   `json:"reason"`
	FirstApprover       string   `json:"first_approver"`
	SecondApprover      string   `json:"second_approver,omitempty"`
	NeedsSecondApproval bool     `json:"needs_second_approval"`

	start time.Time
	end   time.Time
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category is required",
		})
	}

	start, okStart := validator.IsValidDateTime(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid timestamp",
		})
	}
	end, okEnd := validator.IsValidDateTime(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid timestamp",
		})
	}
	if okStart && okEnd && !validator.IsValidInterval(start, end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be after start_time",
		})
	}

	if r.DurationDays <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_days",
			Message: "duration_days must be positive",
		})
	}

	if validator.IsEmpty(r.FirstApprover) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_approver",
			Message: "first_approver is required",
		})
	}

	if r.NeedsSecondApproval && validator.IsEmpty(r.SecondApprover) {
		errs = append(errs, validator.ValidationError{
			Field:   "second_approver",
			Message: "second_approver is required when needs_second_approval is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.start = start.Truncate(time.Second)
	r.end = end.Truncate(time.Second)
	return nil
}

// Interval returns the parsed bounds. Valid only after Validate succeeded.
func (r *SubmitRequest) Interval() (time.Time, time.Time) {
	return r.start, r.end
}

type DecisionRequest struct {
	RequestID    string `json:"request_id"`
	RejectReason string `json:"reject_reason,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BatchDecisionRequest struct {
	RequestIDs   []string `json:"request_ids"`
	RejectReason string   `json:"reject_reason,omitempty"`
}

func (r *BatchDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RequestIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "request_ids",
			Message: "request_ids must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
