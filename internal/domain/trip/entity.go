package trip

import "time"

// Request is one business-trip application with two independent approval
// tracks. Both tracks must be approved for the request to be approved
// overall.
type Request struct {
	ID                    string     `json:"id"`
	Applicant             string     `json:"applicant"`
	Department            string     `json:"department"`
	TargetUnit            string     `json:"target_unit"`
	Location              string     `json:"location"`
	AssignedAt            time.Time  `json:"assigned_at"`
	PlannedReturnAt       time.Time  `json:"planned_return_at"`
	DepartedAt            *time.Time `json:"departed_at,omitempty"`
	ReturnedAt            *time.Time `json:"returned_at,omitempty"`
	RoomDirectorStatus    TrackStatus `json:"room_director_status"`
	RoomDirectorDecidedAt *time.Time  `json:"room_director_decided_at,omitempty"`
	DeptLeaderStatus      TrackStatus `json:"dept_leader_status"`
	DeptLeaderDecidedAt   *time.Time  `json:"dept_leader_decided_at,omitempty"`
	RejectReason          string      `json:"reject_reason,omitempty"`
	SubmittedAt           time.Time   `json:"submitted_at"`
}

// Interval is the trip window reconciliation tests suggestions against: the
// assignment time to the actual return if registered, else the planned one.
func (r *Request) Interval() (time.Time, time.Time) {
	end := r.PlannedReturnAt
	if r.ReturnedAt != nil {
		end = *r.ReturnedAt
	}
	return r.AssignedAt, end
}
