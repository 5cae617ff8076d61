package overtime

// Status is the approval state of an overtime request. The numeric values
// are part of the stored data contract. Historical rows may carry 0 for the
// first stage; NormalizeStatus folds it into StatusAwaitingFirst.
type Status int

const (
	StatusAwaitingFirst  Status = 1
	StatusAwaitingSecond Status = 3
	StatusApproved       Status = 4
	StatusAwaitingFinal  Status = 5
	StatusRejected       Status = 22
)

// NormalizeStatus maps stored status codes onto the enum.
func NormalizeStatus(code int) Status {
	if code == 0 {
		return StatusAwaitingFirst
	}
	return Status(code)
}

func (s Status) String() string {
	switch s {
	case StatusAwaitingFirst:
		return "awaiting_first_approval"
	case StatusAwaitingSecond:
		return "awaiting_second_approval"
	case StatusAwaitingFinal:
		return "awaiting_final_approval"
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
	switch s {
	case StatusAwaitingFirst, StatusAwaitingSecond, StatusAwaitingFinal:
		return true
	}
	return false
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

// transitions is the full legal transition table. Every chain funnels into
// the final attendance-admin gate before Approved.
var transitions = map[transitionKey]Status{
	{StatusAwaitingFirst, ActionApprove, true}:   StatusAwaitingSecond,
	{StatusAwaitingFirst, ActionApprove, false}:  StatusAwaitingFinal,
	{StatusAwaitingFirst, ActionReject, true}:    StatusRejected,
	{StatusAwaitingFirst, ActionReject, false}:   StatusRejected,
	{StatusAwaitingSecond, ActionApprove, true}:  StatusAwaitingFinal,
	{StatusAwaitingSecond, ActionApprove, false}: StatusAwaitingFinal,
	{StatusAwaitingSecond, ActionReject, true}:   StatusRejected,
	{StatusAwaitingSecond, ActionReject, false}:  StatusRejected,
	{StatusAwaitingFinal, ActionApprove, true}:   StatusApproved,
	{StatusAwaitingFinal, ActionApprove, false}:  StatusApproved,
	{StatusAwaitingFinal, ActionReject, true}:    StatusRejected,
	{StatusAwaitingFinal, ActionReject, false}:   StatusRejected,
}

// NextStatus resolves one approval action against the transition table.
func NextStatus(from Status, action Action, twoStage bool) (Status, error) {
	next, ok := transitions[transitionKey{From: from, Action: action, TwoStage: twoStage}]
	if !ok {
		return from, ErrInvalidTransition
	}
	return next, nil
}
