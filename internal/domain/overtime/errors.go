package overtime

import "errors"

var (
	ErrRequestNotFound    = errors.New("Overtime request not found")
	ErrInvalidTransition  = errors.New("Overtime request is not in a state that permits this action")
	ErrNotApprover        = errors.New("Caller is not an approver for this overtime request")
	ErrNotAttendanceAdmin = errors.New("Final overtime approval is reserved for the attendance admin")
	ErrNotRejected        = errors.New("Only rejected overtime requests can be deleted")
	ErrNotApplicant       = errors.New("Only the applicant can delete this overtime request")
)
