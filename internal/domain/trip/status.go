package trip

// TrackStatus is the state of one approval track. The numeric values are
// part of the stored data contract.
type TrackStatus int

const (
	TrackPending  TrackStatus = 1
	TrackApproved TrackStatus = 2
	TrackRejected TrackStatus = 22
)

func (s TrackStatus) String() string {
	switch s {
	case TrackPending:
		return "pending"
	case TrackApproved:
		return "approved"
	case TrackRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Track identifies which approval track an action targets.
type Track int

const (
	TrackRoomDirector Track = iota
	TrackDeptLeader
)

// OverallStatus is the derived request-level state.
type OverallStatus string

const (
	OverallPending  OverallStatus = "pending"
	OverallApproved OverallStatus = "approved"
	OverallRejected OverallStatus = "rejected"
)

// Overall derives the request-level status: approved iff both tracks are
// approved, rejected iff either track is rejected, else still pending.
func (r *Request) Overall() OverallStatus {
	if r.RoomDirectorStatus == TrackRejected || r.DeptLeaderStatus == TrackRejected {
		return OverallRejected
	}
	if r.RoomDirectorStatus == TrackApproved && r.DeptLeaderStatus == TrackApproved {
		return OverallApproved
	}
	return OverallPending
}

// DualApproved reports whether both tracks have reached Approved.
func (r *Request) DualApproved() bool {
	return r.RoomDirectorStatus == TrackApproved && r.DeptLeaderStatus == TrackApproved
}

// Approve advances one track.
//
// The department-leader track is gated on the room-director track being
// approved first; while the gate is open it also accepts a request coming
// back from an earlier department-leader rejection (see Reject).
func (r *Request) Approve(track Track) error {
	switch track {
	case TrackRoomDirector:
		if r.RoomDirectorStatus != TrackPending {
			return ErrInvalidTransition
		}
		r.RoomDirectorStatus = TrackApproved
	case TrackDeptLeader:
		if r.RoomDirectorStatus != TrackApproved {
			return ErrRoomDirectorFirst
		}
		if r.DeptLeaderStatus == TrackApproved {
			return ErrInvalidTransition
		}
		r.DeptLeaderStatus = TrackApproved
	}
	return nil
}

// Reject terminates one track. A department-leader rejection after the
// room-director track had approved resets that first gate back to Pending:
// the sole allowed status regression in the system, a late rejection forces
// the whole request to restart at stage one. A room-director rejection
// likewise clears any approval sitting on the other track.
func (r *Request) Reject(track Track) error {
	switch track {
	case TrackRoomDirector:
		if r.RoomDirectorStatus != TrackPending {
			return ErrInvalidTransition
		}
		r.RoomDirectorStatus = TrackRejected
		if r.DeptLeaderStatus == TrackApproved {
			r.DeptLeaderStatus = TrackPending
		}
	case TrackDeptLeader:
		if r.RoomDirectorStatus != TrackApproved {
			return ErrRoomDirectorFirst
		}
		if r.DeptLeaderStatus == TrackApproved {
			return ErrInvalidTransition
		}
		r.DeptLeaderStatus = TrackRejected
		r.RoomDirectorStatus = TrackPending
	}
	return nil
}
