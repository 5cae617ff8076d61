package trip

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/trip"
)

type fakeTripRepo struct {
	requests map[string]trip.Request
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{requests: make(map[string]trip.Request)}
}

func (r *fakeTripRepo) Create(_ context.Context, request trip.Request) (trip.Request, error) {
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeTripRepo) GetByID(_ context.Context, id string) (trip.Request, error) {
	request, ok := r.requests[id]
	if !ok {
		return trip.Request{}, trip.ErrRequestNotFound
	}
	return request, nil
}

func (r *fakeTripRepo) ListByApplicant(_ context.Context, applicant string) ([]trip.Request, error) {
	var out []trip.Request
	for _, request := range r.requests {
		if request.Applicant == applicant {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) ListPendingByDepartment(_ context.Context, department string) ([]trip.Request, error) {
	var out []trip.Request
	for _, request := range r.requests {
		if request.Overall() == trip.OverallApproved {
			continue
		}
		if department != "" && request.Department != department {
			continue
		}
		out = append(out, request)
	}
	return out, nil
}

func (r *fakeTripRepo) ListByApplicantInRange(_ context.Context, applicant string, from, to time.Time) ([]trip.Request, error) {
	var out []trip.Request
	for _, request := range r.requests {
		if request.Applicant != applicant {
			continue
		}
		start, end := request.Interval()
		if start.Before(to) && from.Before(end) {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) Update(_ context.Context, request trip.Request) error {
	if _, ok := r.requests[request.ID]; !ok {
		return trip.ErrRequestNotFound
	}
	r.requests[request.ID] = request
	return nil
}

func (r *fakeTripRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.requests[id]; !ok {
		return trip.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

type rosterEntry struct {
	level      directory.Level
	department string
}

type fakeDirectory struct {
	roster map[string]rosterEntry
}

func (d *fakeDirectory) ResolveScope(_ context.Context, name string) (directory.Level, string, error) {
	entry, ok := d.roster[name]
	if !ok {
		return directory.LevelUnknown, "", directory.ErrEmployeeNotFound
	}
	return entry.level, entry.department, nil
}

func (d *fakeDirectory) Approvers(context.Context, string) (directory.ApproverSet, error) {
	return directory.ApproverSet{}, nil
}

func (d *fakeDirectory) FirstApprovers(context.Context, string) ([]directory.Approver, error) {
	return nil, nil
}

func (d *fakeDirectory) SecondApprovers(context.Context) ([]directory.Approver, error) {
	return nil, nil
}

func (d *fakeDirectory) CreateEmployee(context.Context, directory.CreateEmployeeRequest) (directory.Employee, error) {
	return directory.Employee{}, nil
}

func (d *fakeDirectory) UpdateEmployee(context.Context, directory.UpdateEmployeeRequest) (directory.Employee, error) {
	return directory.Employee{}, nil
}

func (d *fakeDirectory) TerminateEmployee(context.Context, string) error { return nil }

func (d *fakeDirectory) ListEmployees(context.Context) ([]directory.Employee, error) {
	return nil, nil
}

func testRoster() *fakeDirectory {
	return &fakeDirectory{roster: map[string]rosterEntry{
		"Zhou Wei":  {directory.LevelStaff, "Power Generation"},
		"Li Na":     {directory.LevelRoomDirector, "Power Generation"},
		"Wang Jun":  {directory.LevelDeputyRoomDirector, "Power Generation"},
		"Chen Hao":  {directory.LevelRoomDirector, "Maintenance"},
		"Zhang Lei": {directory.LevelDepartmentHead, "Department Office"},
		"Liu Yang":  {directory.LevelDeputyDepartmentHead, "Department Office"},
	}}
}

func newTestService(repo *fakeTripRepo) *RequestService {
	svc := NewRequestService(repo, testRoster())
	svc.now = func() time.Time { return time.Date(2025, 4, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func apply(t *testing.T, svc *RequestService, applicant string) trip.Request {
	t.Helper()
	request, err := svc.Apply(context.Background(), applicant, &trip.ApplyRequest{
		TargetUnit:      "Grid Dispatch Center",
		Location:        "Chengdu",
		AssignedAt:      "2025-04-14 08:00:00",
		PlannedReturnAt: "2025-04-16 18:00:00",
	})
	require.NoError(t, err)
	return request
}

func TestApplyBackfillsDepartmentAndStartsBothTracksPending(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)

	request := apply(t, svc, "Zhou Wei")

	assert.Equal(t, "Power Generation", request.Department)
	assert.Equal(t, trip.TrackPending, request.RoomDirectorStatus)
	assert.Equal(t, trip.TrackPending, request.DeptLeaderStatus)
	assert.Equal(t, trip.OverallPending, request.Overall())
}

func TestDualApprovalFlow(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	// the department leader cannot move before the room director
	_, err := svc.Approve(context.Background(), "Zhang Lei", request.ID)
	assert.ErrorIs(t, err, trip.ErrRoomDirectorFirst)

	updated, err := svc.Approve(context.Background(), "Li Na", request.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.TrackApproved, updated.RoomDirectorStatus)
	assert.Equal(t, trip.OverallPending, updated.Overall())
	require.NotNil(t, updated.RoomDirectorDecidedAt)

	updated, err = svc.Approve(context.Background(), "Zhang Lei", request.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.OverallApproved, updated.Overall())
	assert.True(t, updated.DualApproved())
	require.NotNil(t, updated.DeptLeaderDecidedAt)
}

func TestDeputyRoomDirectorOwnsFirstTrack(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	updated, err := svc.Approve(context.Background(), "Wang Jun", request.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.TrackApproved, updated.RoomDirectorStatus)
}

func TestRoomDirectorScopeIsDepartmentBound(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	// a room director from another department has no track here
	_, err := svc.Approve(context.Background(), "Chen Hao", request.ID)
	assert.ErrorIs(t, err, trip.ErrNotApprover)

	// neither does a plain staff member
	_, err = svc.Approve(context.Background(), "Zhou Wei", request.ID)
	assert.ErrorIs(t, err, trip.ErrNotApprover)
}

func TestLateRejectionRestartsFirstTrack(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	_, err := svc.Approve(context.Background(), "Li Na", request.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), "Liu Yang", request.ID, "dates clash with the outage plan")
	require.NoError(t, err)
	assert.Equal(t, trip.TrackRejected, rejected.DeptLeaderStatus)
	assert.Equal(t, trip.TrackPending, rejected.RoomDirectorStatus)
	assert.Equal(t, trip.OverallRejected, rejected.Overall())
	assert.Equal(t, "dates clash with the outage plan", rejected.RejectReason)

	// the leader cannot act again until the room director re-approves
	_, err = svc.Approve(context.Background(), "Zhang Lei", request.ID)
	assert.ErrorIs(t, err, trip.ErrRoomDirectorFirst)

	_, err = svc.Approve(context.Background(), "Li Na", request.ID)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), "Zhang Lei", request.ID)
	require.NoError(t, err)
	assert.Equal(t, trip.OverallApproved, approved.Overall())
}

func TestBatchApproveIsBestEffort(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	a := apply(t, svc, "Zhou Wei")
	b := apply(t, svc, "Zhou Wei")

	_, err := svc.Approve(context.Background(), "Li Na", b.ID)
	require.NoError(t, err)

	// b is already approved on the first track, so it fails; a succeeds
	result := svc.BatchApprove(context.Background(), "Li Na", []string{a.ID, b.ID, "missing"})
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 2, result.Failed)
}

func TestRegisterReturnIsApplicantOnly(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	req := &trip.RegisterReturnRequest{
		RequestID:  request.ID,
		DepartedAt: "2025-04-14 07:30:00",
		ReturnedAt: "2025-04-16 20:15:00",
	}
	_, err := svc.RegisterReturn(context.Background(), "Li Na", req)
	assert.ErrorIs(t, err, trip.ErrNotApplicant)

	updated, err := svc.RegisterReturn(context.Background(), "Zhou Wei", req)
	require.NoError(t, err)
	require.NotNil(t, updated.DepartedAt)
	require.NotNil(t, updated.ReturnedAt)

	// the registered return replaces the planned one in the trip window
	_, end := updated.Interval()
	assert.Equal(t, time.Date(2025, 4, 16, 20, 15, 0, 0, time.UTC), end)
}

func TestPendingQueueScopes(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	apply(t, svc, "Zhou Wei")

	queue, err := svc.PendingQueue(context.Background(), "Li Na")
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	// department leaders read every department
	queue, err = svc.PendingQueue(context.Background(), "Zhang Lei")
	require.NoError(t, err)
	assert.Len(t, queue, 1)

	// a room director from another department sees nothing
	queue, err = svc.PendingQueue(context.Background(), "Chen Hao")
	require.NoError(t, err)
	assert.Empty(t, queue)

	_, err = svc.PendingQueue(context.Background(), "Zhou Wei")
	assert.ErrorIs(t, err, trip.ErrNotApprover)
}

func TestDeleteRejectedGating(t *testing.T) {
	repo := newFakeTripRepo()
	svc := newTestService(repo)
	request := apply(t, svc, "Zhou Wei")

	err := svc.DeleteRejected(context.Background(), "Zhou Wei", request.ID)
	assert.ErrorIs(t, err, trip.ErrNotRejected)

	_, err = svc.Reject(context.Background(), "Li Na", request.ID, "not needed")
	require.NoError(t, err)

	err = svc.DeleteRejected(context.Background(), "Li Na", request.ID)
	assert.ErrorIs(t, err, trip.ErrNotApplicant)

	err = svc.DeleteRejected(context.Background(), "Zhou Wei", request.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), request.ID)
	assert.ErrorIs(t, err, trip.ErrRequestNotFound)
}
