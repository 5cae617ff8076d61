package leave

import "errors"

var (
	ErrRequestNotFound   = errors.New("Leave request not found")
	ErrInvalidTransition = errors.New("Leave request is not in a state that permits this action")
	ErrNotApprover       = errors.New("Caller is not an approver for this leave request")
	ErrNotRejected       = errors.New("Only rejected leave requests can be deleted")
	ErrNotApplicant      = errors.New("Only the applicant can delete this leave request")
)
