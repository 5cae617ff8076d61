package trip

import (
	"time"

	"github.com/plantops/attendance-backend-go/internal/pkg/validator"
)

type ApplyRequest struct {
	TargetUnit      string `json:"target_unit"`
	Location        string `json:"location"`
	AssignedAt      string `json:"assigned_at"`
	PlannedReturnAt string `json:"planned_return_at"`

	assigned time.Time
	planned  time.Time
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TargetUnit) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_unit",
			Message: "target_unit is required",
		})
	}

	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}

	assigned, okAssigned := validator.IsValidDateTime(r.AssignedAt)
	if !okAssigned {
		errs = append(errs, validator.ValidationError{
			Field:   "assigned_at",
			Message: "assigned_at must be a valid timestamp",
		})
	}
	planned, okPlanned := validator.IsValidDateTime(r.PlannedReturnAt)
	if !okPlanned {
		errs = append(errs, validator.ValidationError{
			Field:   "planned_return_at",
			Message: "planned_return_at must be a valid timestamp",
		})
	}
	if okAssigned && okPlanned && !validator.IsValidInterval(assigned, planned) {
		errs = append(errs, validator.ValidationError{
			Field:   "planned_return_at",
			Message: "planned_return_at must be after assigned_at",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.assigned = assigned.Truncate(time.Second)
	r.planned = planned.Truncate(time.Second)
	return nil
}

// Parsed returns the parsed trip window. Valid only after Validate
// succeeded.
func (r *ApplyRequest) Parsed() (assigned, planned time.Time) {
	return r.assigned, r.planned
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

type RegisterReturnRequest struct {
	RequestID  string `json:"request_id"`
	DepartedAt string `json:"departed_at"`
	ReturnedAt string `json:"returned_at"`

	departed time.Time
	returned time.Time
}

func (r *RegisterReturnRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	departed, okDeparted := validator.IsValidDateTime(r.DepartedAt)
	if !okDeparted {
		errs = append(errs, validator.ValidationError{
			Field:   "departed_at",
			Message: "departed_at must be a valid timestamp",
		})
	}
	returned, okReturned := validator.IsValidDateTime(r.ReturnedAt)
	if !okReturned {
		errs = append(errs, validator.ValidationError{
			Field:   "returned_at",
			Message: "returned_at must be a valid timestamp",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	if !departed.Before(returned) {
		return validator.ValidationErrors{{
			Field:   "returned_at",
			Message: "returned_at must be after departed_at",
		}}
	}

	r.departed = departed.Truncate(time.Second)
	r.returned = returned.Truncate(time.Second)
	return nil
}

// Parsed returns the parsed departure and return times. Valid only after
// Validate succeeded.
func (r *RegisterReturnRequest) Parsed() (departed, returned time.Time) {
	return r.departed, r.returned
}
