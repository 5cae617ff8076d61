package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingRequest() *Request {
	return &Request{
		ID:                 "t1",
		Applicant:          "Chen",
		RoomDirectorStatus: TrackPending,
		DeptLeaderStatus:   TrackPending,
	}
}

func TestHappyPathDualApproval(t *testing.T) {
	t.Parallel()

	r := pendingRequest()
	require.NoError(t, r.Approve(TrackRoomDirector))
	assert.Equal(t, OverallPending, r.Overall())

	require.NoError(t, r.Approve(TrackDeptLeader))
	assert.Equal(t, OverallApproved, r.Overall())
	assert.True(t, r.DualApproved())
}

func TestDeptLeaderBlockedUntilRoomDirectorApproves(t *testing.T) {
	t.Parallel()

	r := pendingRequest()
	assert.ErrorIs(t, r.Approve(TrackDeptLeader), ErrRoomDirectorFirst)
	assert.ErrorIs(t, r.Reject(TrackDeptLeader), ErrRoomDirectorFirst)
	assert.Equal(t, TrackPending, r.DeptLeaderStatus)
}

func TestLateRejectionReopensFirstGate(t *testing.T) {
	t.Parallel()

	r := pendingRequest()
	require.NoError(t, r.Approve(TrackRoomDirector))
	require.NoError(t, r.Reject(TrackDeptLeader))

	// the first gate reopens, the request reads rejected until reprocessed
	assert.Equal(t, TrackPending, r.RoomDirectorStatus)
	assert.Equal(t, TrackRejected, r.DeptLeaderStatus)
	assert.Equal(t, OverallRejected, r.Overall())

	// department leader cannot act before the room director approves again
	assert.ErrorIs(t, r.Approve(TrackDeptLeader), ErrRoomDirectorFirst)

	// full restart: room director approves, then the department leader can
	require.NoError(t, r.Approve(TrackRoomDirector))
	require.NoError(t, r.Approve(TrackDeptLeader))
	assert.Equal(t, OverallApproved, r.Overall())
}

func TestRoomDirectorRejectionIsTerminalForward(t *testing.T) {
	t.Parallel()

	r := pendingRequest()
	require.NoError(t, r.Reject(TrackRoomDirector))
	assert.Equal(t, OverallRejected, r.Overall())

	assert.ErrorIs(t, r.Approve(TrackRoomDirector), ErrInvalidTransition)
	assert.ErrorIs(t, r.Reject(TrackRoomDirector), ErrInvalidTransition)
}

func TestDoubleApprovalRejected(t *testing.T) {
	t.Parallel()

	r := pendingRequest()
	require.NoError(t, r.Approve(TrackRoomDirector))
	assert.ErrorIs(t, r.Approve(TrackRoomDirector), ErrInvalidTransition)

	require.NoError(t, r.Approve(TrackDeptLeader))
	assert.ErrorIs(t, r.Approve(TrackDeptLeader), ErrInvalidTransition)
	assert.ErrorIs(t, r.Reject(TrackDeptLeader), ErrInvalidTransition)
}
