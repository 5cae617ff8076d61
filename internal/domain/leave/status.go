package leave

// Status is the approval state of a leave request. The numeric values are
// part of the stored data contract.
type Status int

const (
	StatusAwaitingFirst  Status = 1
	StatusAwaitingSecond Status = 3
	StatusApproved       Status = 4
	StatusRejected       Status = 22
)

func (s Status) String() string {
	switch s {
	case StatusAwaitingFirst:
		return "awaiting_first_approval"
	case StatusAwaitingSecond:
		return "awaiting_second_approval"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Pending reports whether the status still accepts approval actions.
func (s Status) Pending() bool {
	return s == StatusAwaitingFirst || s == StatusAwaitingSecond
}

// Action is an approval decision applied to a pending request.
type Action int

const (
	ActionApprove Action = iota
	ActionReject
)

type transitionKey struct {
	From     Status
	Action   Action
	TwoStage bool
}

// transitions is the full legal transition table. Anything absent is an
// invalid state change.
var transitions = map[transitionKey]Status{
	{StatusAwaitingFirst, ActionApprove, true}:   StatusAwaitingSecond,
	{StatusAwaitingFirst, ActionApprove, false}:  StatusApproved,
	{StatusAwaitingFirst, ActionReject, true}:    StatusRejected,
	{StatusAwaitingFirst, ActionReject, false}:   StatusRejected,
	{StatusAwaitingSecond, ActionApprove, true}:  StatusApproved,
	{StatusAwaitingSecond, ActionApprove, false}: StatusApproved,
	{StatusAwaitingSecond, ActionReject, true}:   StatusRejected,
	{StatusAwaitingSecond, ActionReject, false}:  StatusRejected,
}

// NextStatus resolves one approval action against the transition table.
func NextStatus(from Status, action Action, twoStage bool) (Status, error) {
	next, ok := transitions[transitionKey{From: from, Action: action, TwoStage: twoStage}]
	if !ok {
		return from, ErrInvalidTransition
	}
	return next, nil
}
