package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeOvertimeRepo struct {
	requests map[string]overtime.Request
}

func newFakeOvertimeRepo() *fakeOvertimeRepo {
	return &fakeOvertimeRepo{requests: make(map[string]overtime.Request)}
}

func (f *fakeOvertimeRepo) Create(_ context.Context, r overtime.Request) (overtime.Request, error) {
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeOvertimeRepo) GetByID(_ context.Context, id string) (overtime.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeOvertimeRepo) ListByApplicant(_ context.Context, applicant string, status *overtime.Status) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if r.Applicant == applicant && (status == nil || r.Status == *status) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOvertimeRepo) ListPendingForApprover(_ context.Context, approver string) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if (r.Status == overtime.StatusAwaitingFirst && r.FirstApprover == approver) ||
			(r.Status == overtime.StatusAwaitingSecond && r.SecondApprover == approver) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOvertimeRepo) ListPendingFinal(_ context.Context) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if r.Status == overtime.StatusAwaitingFinal {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOvertimeRepo) ListByApplicantInRange(_ context.Context, applicant string, from, to time.Time) ([]overtime.Request, error) {
	var out []overtime.Request
	for _, r := range f.requests {
		if r.Applicant == applicant && r.StartTime.Before(to) && from.Before(r.EndTime) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOvertimeRepo) Update(_ context.Context, r overtime.Request) error {
	if _, ok := f.requests[r.ID]; !ok {
		return overtime.ErrRequestNotFound
	}
	f.requests[r.ID] = r
	return nil
}

func (f *fakeOvertimeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.requests[id]; !ok {
		return overtime.ErrRequestNotFound
	}
	delete(f.requests, id)
	return nil
}

type fakeTicketRepo struct {
	entries []ticket.Entry
	nextID  int64
}

func (f *fakeTicketRepo) Create(_ context.Context, e ticket.Entry) (ticket.Entry, error) {
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeTicketRepo) ListByEmployeeForUpdate(ctx context.Context, employee string) ([]ticket.Entry, error) {
	return f.ListByEmployee(ctx, employee)
}

func (f *fakeTicketRepo) ListByEmployee(_ context.Context, employee string) ([]ticket.Entry, error) {
	var out []ticket.Entry
	for _, e := range f.entries {
		if e.Employee == employee {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) UpdateQuantity(_ context.Context, id int64, q float64) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Quantity = q
		}
	}
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTicketRepo) DeleteExpiredBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakePunchRepo struct {
	records map[string]attendance.PunchRecord
}

func punchKey(name string, date time.Time) string {
	return name + "|" + date.Format("2006-01-02")
}

func (f *fakePunchRepo) Upsert(_ context.Context, r attendance.PunchRecord) error {
	if f.records == nil {
		f.records = make(map[string]attendance.PunchRecord)
	}
	f.records[punchKey(r.EmployeeName, r.Date)] = r
	return nil
}

func (f *fakePunchRepo) GetByEmployeeAndDate(_ context.Context, name string, date time.Time) (attendance.PunchRecord, error) {
	r, ok := f.records[punchKey(name, date)]
	if !ok {
		return attendance.PunchRecord{}, attendance.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakePunchRepo) ListByEmployeeAndMonth(_ context.Context, name string, year, month int) ([]attendance.PunchRecord, error) {
	var out []attendance.PunchRecord
	for _, r := range f.records {
		if r.EmployeeName == name && r.Date.Year() == year && int(r.Date.Month()) == month {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	cfg settings.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (settings.Settings, error) {
	return f.cfg, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s settings.Settings) error {
	f.cfg = s
	return nil
}

type fakeDirectory struct {
	terminated map[string]bool
}

func (d fakeDirectory) ResolveScope(_ context.Context, name string) (directory.Level, string, error) {
	if d.terminated[name] {
		return directory.LevelUnknown, "", directory.ErrEmployeeNotFound
	}
	return directory.LevelStaff, "Turbine Room", nil
}

func (fakeDirectory) Approvers(context.Context, string) (directory.ApproverSet, error) {
	return directory.ApproverSet{}, nil
}

func (fakeDirectory) FirstApprovers(context.Context, string) ([]directory.Approver, error) {
	return []directory.Approver{{Name: "Li"}}, nil
}

func (fakeDirectory) SecondApprovers(context.Context) ([]directory.Approver, error) {
	return []directory.Approver{{Name: "Qian"}}, nil
}

func (fakeDirectory) CreateEmployee(context.Context, directory.CreateEmployeeRequest) (directory.Employee, error) {
	return directory.Employee{}, nil
}

func (fakeDirectory) UpdateEmployee(context.Context, directory.UpdateEmployeeRequest) (directory.Employee, error) {
	return directory.Employee{}, nil
}

func (fakeDirectory) TerminateEmployee(context.Context, string) error { return nil }

func (fakeDirectory) ListEmployees(context.Context) ([]directory.Employee, error) {
	return nil, nil
}

func newService(t *testing.T) (*RequestService, *fakeOvertimeRepo, *fakeTicketRepo, *fakePunchRepo) {
	t.Helper()
	requests := newFakeOvertimeRepo()
	tickets := &fakeTicketRepo{}
	punches := &fakePunchRepo{records: make(map[string]attendance.PunchRecord)}
	cfg := &fakeSettingsRepo{cfg: settings.Settings{
		AttendanceAdmin:    "Admin Gao",
		OvertimeHourlyRate: decimal.NewFromInt(15),
		IncentiveBonus:     decimal.NewFromInt(200),
	}}
	svc := NewRequestService(&fakeTxRunner{}, requests, tickets, punches, cfg, fakeDirectory{})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc, requests, tickets, punches
}

func register(t *testing.T, svc *RequestService, wantsTicket bool, start, end string) overtime.Request {
	t.Helper()
	req := &overtime.RegisterRequest{
		Date:          "2025-06-02",
		StartTime:     start,
		EndTime:       end,
		WantsTicket:   wantsTicket,
		FirstApprover: "Li",
	}
	created, err := svc.Register(context.Background(), "Chen", req)
	require.NoError(t, err)
	return created
}

func approveThroughFinal(t *testing.T, svc *RequestService, id string) overtime.Request {
	t.Helper()
	_, err := svc.Approve(context.Background(), "Li", id)
	require.NoError(t, err)
	final, err := svc.Approve(context.Background(), "Admin Gao", id)
	require.NoError(t, err)
	return final
}

func TestRegisterFloorsHoursToHalf(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 22:45:00")
	assert.InDelta(t, 5.5, created.Hours, 1e-9)
	assert.Equal(t, "Turbine Room", created.Department)
}

func TestFinalGateIsAttendanceAdminOnly(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 22:00:00")

	mid, err := svc.Approve(context.Background(), "Li", created.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusAwaitingFinal, mid.Status)

	// the first approver cannot pass the final gate
	_, err = svc.Approve(context.Background(), "Li", created.ID)
	assert.ErrorIs(t, err, overtime.ErrNotAttendanceAdmin)

	final, err := svc.Approve(context.Background(), "Admin Gao", created.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusApproved, final.Status)
	assert.Equal(t, "Admin Gao", final.FinalApprover)
}

func TestTerminatedApproverCannotAct(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 22:00:00")

	// Li leaves the company between registration and decision; matching the
	// stored approver name alone must no longer clear them.
	svc.directory = fakeDirectory{terminated: map[string]bool{"Li": true}}

	_, err := svc.Approve(context.Background(), "Li", created.ID)
	assert.ErrorIs(t, err, overtime.ErrNotApprover)

	_, err = svc.Reject(context.Background(), "Li", created.ID, "late")
	assert.ErrorIs(t, err, overtime.ErrNotApprover)
}

func TestApproveWithTicketCreditsLedger(t *testing.T) {
	t.Parallel()

	svc, _, tickets, _ := newService(t)
	// 5.75 raw hours -> claim 5.5 -> floor(5.5)=5 -> 1.25 tickets
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 22:45:00")
	final := approveThroughFinal(t, svc, created.ID)

	assert.InDelta(t, 1.25, final.Tickets, 1e-9)
	assert.Zero(t, final.PayHours)

	require.Len(t, tickets.entries, 1)
	assert.InDelta(t, 1.25, tickets.entries[0].Quantity, 1e-9)
	assert.Equal(t, "Chen", tickets.entries[0].Employee)
	assert.Equal(t, created.Date, tickets.entries[0].AcquiredAt)
}

func TestApproveWithoutTicketFillsRawPayHours(t *testing.T) {
	t.Parallel()

	svc, _, tickets, _ := newService(t)
	created := register(t, svc, false, "2025-06-02 17:00:00", "2025-06-02 22:45:00")
	final := approveThroughFinal(t, svc, created.ID)

	// pay hours keep the raw, unfloored duration
	assert.InDelta(t, 5.75, final.PayHours, 1e-9)
	assert.Zero(t, final.Tickets)
	assert.Empty(t, tickets.entries)
}

func TestExactlyOneCompensationFieldNonZero(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	a := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 22:00:00")
	b := register(t, svc, false, "2025-06-03 17:00:00", "2025-06-03 22:00:00")

	finalA := approveThroughFinal(t, svc, a.ID)
	finalB := approveThroughFinal(t, svc, b.ID)

	assert.True(t, (finalA.Tickets > 0) != (finalA.PayHours > 0))
	assert.True(t, (finalB.Tickets > 0) != (finalB.PayHours > 0))
}

func TestTwoStageChainStillEndsAtFinalGate(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	req := &overtime.RegisterRequest{
		Date:                "2025-06-02",
		StartTime:           "2025-06-02 17:00:00",
		EndTime:             "2025-06-02 21:00:00",
		FirstApprover:       "Li",
		SecondApprover:      "Qian",
		NeedsSecondApproval: true,
	}
	created, err := svc.Register(context.Background(), "Chen", req)
	require.NoError(t, err)

	mid, err := svc.Approve(context.Background(), "Li", created.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusAwaitingSecond, mid.Status)

	mid, err = svc.Approve(context.Background(), "Qian", created.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusAwaitingFinal, mid.Status)

	final, err := svc.Approve(context.Background(), "Admin Gao", created.ID)
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusApproved, final.Status)
}

func TestRejectFromFinalStage(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 21:00:00")
	_, err := svc.Approve(context.Background(), "Li", created.ID)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), "Admin Gao", created.ID, "not on the punch sheet")
	require.NoError(t, err)
	assert.Equal(t, overtime.StatusRejected, rejected.Status)
	assert.Zero(t, rejected.Tickets)
	assert.Zero(t, rejected.PayHours)
}

func TestValidateBatchUsesPunchRecords(t *testing.T) {
	t.Parallel()

	svc, _, _, punches := newService(t)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, punches.Upsert(context.Background(), attendance.PunchRecord{
		EmployeeName: "Chen",
		Date:         day,
		Times: []time.Time{
			time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 22, 0, 0, 0, time.UTC),
		},
	}))

	contained := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 21:00:00")

	results, err := svc.ValidateBatch(context.Background(), []string{contained.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Valid)
}

func TestValidateBatchPunchMismatchWithoutPunches(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newService(t)
	created := register(t, svc, true, "2025-06-02 17:00:00", "2025-06-02 21:00:00")

	results, err := svc.ValidateBatch(context.Background(), []string{created.ID})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Valid)
	assert.Equal(t, overtime.ReasonPunchMismatch, results[0].Reason)
}

func TestValidateBatchScenarioOverlappingPair(t *testing.T) {
	t.Parallel()

	svc, _, _, punches := newService(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, punches.Upsert(context.Background(), attendance.PunchRecord{
		EmployeeName: "Chen",
		Date:         day,
		Times: []time.Time{
			time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC),
		},
	}))

	a := register(t, svc, true, "2025-06-02 09:00:00", "2025-06-02 11:00:00")
	b := register(t, svc, true, "2025-06-02 10:00:00", "2025-06-02 12:00:00")

	results, err := svc.ValidateBatch(context.Background(), []string{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// both flagged as batch duplicates; the later checks never run
	for _, r := range results {
		assert.False(t, r.Valid)
		assert.Equal(t, overtime.ReasonDuplicateRange, r.Reason)
	}
}
