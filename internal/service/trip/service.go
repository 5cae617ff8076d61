package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantops/attendance-backend-go/internal/domain/approval"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/trip"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
)

// RequestService drives the dual-track business-trip machine. The actor's
// classified level decides which track an approval or rejection lands on:
// room directors act on the first track, department leaders on the second.
type RequestService struct {
	requestRepo trip.Repository
	directory   directory.Service
	now         func() time.Time
}

func NewRequestService(requestRepo trip.Repository, directorySvc directory.Service) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		directory:   directorySvc,
		now:         time.Now,
	}
}

func (s *RequestService) Apply(ctx context.Context, applicant string, req *trip.ApplyRequest) (trip.Request, error) {
	if err := req.Validate(); err != nil {
		return trip.Request{}, err
	}

	_, department, err := s.directory.ResolveScope(ctx, applicant)
	if err != nil {
		return trip.Request{}, err
	}

	assigned, planned := req.Parsed()
	request := trip.Request{
		ID:                 uuid.NewString(),
		Applicant:          applicant,
		Department:         department,
		TargetUnit:         req.TargetUnit,
		Location:           req.Location,
		AssignedAt:         assigned,
		PlannedReturnAt:    planned,
		RoomDirectorStatus: trip.TrackPending,
		DeptLeaderStatus:   trip.TrackPending,
		SubmittedAt:        s.now(),
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return trip.Request{}, fmt.Errorf("create business trip request: %w", err)
	}
	return created, nil
}

func (s *RequestService) Approve(ctx context.Context, actor, requestID string) (trip.Request, error) {
	return s.decide(ctx, actor, requestID, "", true)
}

func (s *RequestService) Reject(ctx context.Context, actor, requestID, reason string) (trip.Request, error) {
	return s.decide(ctx, actor, requestID, reason, false)
}

func (s *RequestService) decide(ctx context.Context, actor, requestID, reason string, approve bool) (trip.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return trip.Request{}, err
	}

	track, err := s.resolveTrack(ctx, actor, &request)
	if err != nil {
		return trip.Request{}, err
	}

	now := s.now()
	if approve {
		err = request.Approve(track)
	} else {
		err = request.Reject(track)
		request.RejectReason = reason
	}
	if err != nil {
		return trip.Request{}, err
	}

	switch track {
	case trip.TrackRoomDirector:
		request.RoomDirectorDecidedAt = &now
	case trip.TrackDeptLeader:
		request.DeptLeaderDecidedAt = &now
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return trip.Request{}, fmt.Errorf("update business trip request: %w", err)
	}

	action := "approve"
	if !approve {
		action = "reject"
	}
	metrics.ApprovalActions.WithLabelValues("business_trip", action).Inc()
	return request, nil
}

// resolveTrack maps the actor's roster level to the approval track they
// own. Room-level approvers must share the applicant's department;
// department leaders act globally.
func (s *RequestService) resolveTrack(ctx context.Context, actor string, request *trip.Request) (trip.Track, error) {
	level, department, err := s.directory.ResolveScope(ctx, actor)
	if err != nil {
		return 0, err
	}

	switch level {
	case directory.LevelRoomDirector, directory.LevelDeputyRoomDirector:
		if department != request.Department {
			return 0, trip.ErrNotApprover
		}
		return trip.TrackRoomDirector, nil
	case directory.LevelDepartmentHead, directory.LevelDeputyDepartmentHead:
		return trip.TrackDeptLeader, nil
	default:
		return 0, trip.ErrNotApprover
	}
}

// BatchApprove applies the single-item approval across an ID list.
// Best-effort: items succeed and fail independently.
func (s *RequestService) BatchApprove(ctx context.Context, actor string, requestIDs []string) approval.BatchResult {
	var result approval.BatchResult
	for _, id := range requestIDs {
		_, err := s.Approve(ctx, actor, id)
		result.Add(id, err)
	}
	return result
}

// RegisterReturn records the actual departure and return once the trip is
// over. Applicant-only; the registered window replaces the planned one in
// reconciliation.
func (s *RequestService) RegisterReturn(ctx context.Context, applicant string, req *trip.RegisterReturnRequest) (trip.Request, error) {
	if err := req.Validate(); err != nil {
		return trip.Request{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return trip.Request{}, err
	}
	if request.Applicant != applicant {
		return trip.Request{}, trip.ErrNotApplicant
	}

	departed, returned := req.Parsed()
	request.DepartedAt = &departed
	request.ReturnedAt = &returned

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return trip.Request{}, fmt.Errorf("update business trip request: %w", err)
	}
	return request, nil
}

func (s *RequestService) MyRequests(ctx context.Context, applicant string) ([]trip.Request, error) {
	return s.requestRepo.ListByApplicant(ctx, applicant)
}

// PendingQueue lists the not-yet-dual-approved requests the actor can see:
// room-level approvers and department leaders read their department queue,
// department leaders read every department.
func (s *RequestService) PendingQueue(ctx context.Context, approver string) ([]trip.Request, error) {
	level, department, err := s.directory.ResolveScope(ctx, approver)
	if err != nil {
		return nil, err
	}

	switch level {
	case directory.LevelRoomDirector, directory.LevelDeputyRoomDirector:
		return s.requestRepo.ListPendingByDepartment(ctx, department)
	case directory.LevelDepartmentHead, directory.LevelDeputyDepartmentHead:
		return s.requestRepo.ListPendingByDepartment(ctx, "")
	default:
		return nil, trip.ErrNotApprover
	}
}

// DeleteRejected removes a rejected request. Only the applicant may do
// this, and only while a track reads rejected.
func (s *RequestService) DeleteRejected(ctx context.Context, applicant, requestID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Applicant != applicant {
		return trip.ErrNotApplicant
	}
	if request.Overall() != trip.OverallRejected {
		return trip.ErrNotRejected
	}
	return s.requestRepo.Delete(ctx, requestID)
}
