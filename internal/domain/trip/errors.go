package trip

import "errors"

var (
	ErrRequestNotFound    = errors.New("Business trip request not found")
	ErrInvalidTransition  = errors.New("Business trip request is not in a state that permits this action")
	ErrRoomDirectorFirst  = errors.New("Room director approval is required before the department leader can act")
	ErrNotApprover        = errors.New("Caller is not an approver for this business trip request")
	ErrNotRejected        = errors.New("Only rejected business trip requests can be deleted")
	ErrNotApplicant       = errors.New("Only the applicant can act on this business trip request")
	ErrReturnBeforeDepart = errors.New("Return time must be after departure time")
)
