package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantops/attendance-backend-go/internal/domain/approval"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
	"github.com/plantops/attendance-backend-go/internal/pkg/validator"
)

// RequestService drives the leave approval state machine. Terminal approval
// of a compensatory leave debits the exchange-ticket ledger inside the same
// transaction as the status flip.
type RequestService struct {
	txRunner    database.TxRunner
	requestRepo leave.Repository
	ticketRepo  ticket.Repository
	directory   directory.Service
	now         func() time.Time
}

func NewRequestService(txRunner database.TxRunner, requestRepo leave.Repository, ticketRepo ticket.Repository, directorySvc directory.Service) *RequestService {
	return &RequestService{
		txRunner:    txRunner,
		requestRepo: requestRepo,
		ticketRepo:  ticketRepo,
		directory:   directorySvc,
		now:         time.Now,
	}
}

func (s *RequestService) Submit(ctx context.Context, applicant string, req *leave.SubmitRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	_, department, err := s.directory.ResolveScope(ctx, applicant)
	if err != nil {
		return leave.Request{}, err
	}

	candidates, err := s.directory.FirstApprovers(ctx, applicant)
	if err != nil {
		return leave.Request{}, err
	}
	if !approverAllowed(req.FirstApprover, candidates) {
		return leave.Request{}, validator.ValidationErrors{{
			Field:   "first_approver",
			Message: "first_approver is not an eligible approver for this applicant",
		}}
	}
	if req.NeedsSecondApproval {
		seconds, err := s.directory.SecondApprovers(ctx)
		if err != nil {
			return leave.Request{}, err
		}
		if !approverAllowed(req.SecondApprover, seconds) {
			return leave.Request{}, validator.ValidationErrors{{
				Field:   "second_approver",
				Message: "second_approver is not an eligible second-stage approver",
			}}
		}
	}

	start, end := req.Interval()
	request := leave.Request{
		ID:                  uuid.NewString(),
		Applicant:           applicant,
		Department:          department,
		Category:            req.Category,
		Shift:               req.Shift,
		StartTime:           start,
		EndTime:             end,
		DurationDays:        req.DurationDays,
		Reason:              req.Reason,
		FirstApprover:       req.FirstApprover,
		SecondApprover:      req.SecondApprover,
		NeedsSecondApproval: req.NeedsSecondApproval,
		Status:              leave.StatusAwaitingFirst,
		SubmittedAt:         s.now(),
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("create leave request: %w", err)
	}
	return created, nil
}

func (s *RequestService) Approve(ctx context.Context, actor, requestID string) (leave.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	if err := s.authorizeStage(ctx, &request, actor); err != nil {
		return leave.Request{}, err
	}

	next, err := leave.NextStatus(request.Status, leave.ActionApprove, request.NeedsSecondApproval)
	if err != nil {
		return leave.Request{}, err
	}

	now := s.now()
	s.stampStage(&request, now)
	request.Status = next

	if next == leave.StatusApproved && request.Category == leave.CategoryCompensatory {
		if err := s.approveWithTicketDebit(ctx, &request, now); err != nil {
			return leave.Request{}, err
		}
	} else if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.Request{}, fmt.Errorf("update leave request: %w", err)
	}

	metrics.ApprovalActions.WithLabelValues("leave", "approve").Inc()
	return request, nil
}

// approveWithTicketDebit commits the status flip and the ledger debit
// together. The ledger rows are read with a row lock so concurrent debits
// against the same employee serialize instead of double-spending.
func (s *RequestService) approveWithTicketDebit(ctx context.Context, request *leave.Request, now time.Time) error {
	debit := leave.TicketDebit(request.DurationDays)
	if debit <= 0 {
		return s.requestRepo.Update(ctx, *request)
	}

	return s.txRunner.RunTx(ctx, func(ctx context.Context) error {
		entries, err := s.ticketRepo.ListByEmployeeForUpdate(ctx, request.Applicant)
		if err != nil {
			return fmt.Errorf("lock ticket ledger: %w", err)
		}

		plan, err := ticket.PlanConsumption(entries, debit, now)
		if err != nil {
			return err
		}

		for _, entry := range plan.Updates {
			if err := s.ticketRepo.UpdateQuantity(ctx, entry.ID, entry.Quantity); err != nil {
				return fmt.Errorf("update ledger entry: %w", err)
			}
		}
		for _, id := range plan.Deletes {
			if err := s.ticketRepo.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete ledger entry: %w", err)
			}
		}

		if err := s.requestRepo.Update(ctx, *request); err != nil {
			return fmt.Errorf("update leave request: %w", err)
		}
		return nil
	})
}

func (s *RequestService) Reject(ctx context.Context, actor, requestID, reason string) (leave.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}

	if err := s.authorizeStage(ctx, &request, actor); err != nil {
		return leave.Request{}, err
	}

	next, err := leave.NextStatus(request.Status, leave.ActionReject, request.NeedsSecondApproval)
	if err != nil {
		return leave.Request{}, err
	}

	s.stampStage(&request, s.now())
	request.Status = next
	request.RejectReason = reason

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.Request{}, fmt.Errorf("update leave request: %w", err)
	}

	metrics.ApprovalActions.WithLabelValues("leave", "reject").Inc()
	return request, nil
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

func (s *RequestService) MyRequests(ctx context.Context, applicant string, status *leave.Status) ([]leave.Request, error) {
	return s.requestRepo.ListByApplicant(ctx, applicant, status)
}

func (s *RequestService) PendingQueue(ctx context.Context, approver string) ([]leave.Request, error) {
	return s.requestRepo.ListPendingForApprover(ctx, approver)
}

// DeleteRejected removes a rejected request. Only the applicant may do
// this, and only from the terminal rejected state.
func (s *RequestService) DeleteRejected(ctx context.Context, applicant, requestID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Applicant != applicant {
		return leave.ErrNotApplicant
	}
	if request.Status != leave.StatusRejected {
		return leave.ErrNotRejected
	}
	return s.requestRepo.Delete(ctx, requestID)
}

// authorizeStage checks the actor against the approver named for the
// request's current stage. The actor must still be on the active roster; a
// terminated employee's token stops working here even before it expires.
// Fails closed before any mutation.
func (s *RequestService) authorizeStage(ctx context.Context, request *leave.Request, actor string) error {
	if _, _, err := s.directory.ResolveScope(ctx, actor); err != nil {
		return leave.ErrNotApprover
	}
	switch request.Status {
	case leave.StatusAwaitingFirst:
		if request.FirstApprover != actor {
			return leave.ErrNotApprover
		}
	case leave.StatusAwaitingSecond:
		if request.SecondApprover != actor {
			return leave.ErrNotApprover
		}
	default:
		return leave.ErrInvalidTransition
	}
	return nil
}

func (s *RequestService) stampStage(request *leave.Request, now time.Time) {
	switch request.Status {
	case leave.StatusAwaitingFirst:
		request.FirstDecidedAt = &now
	case leave.StatusAwaitingSecond:
		request.SecondDecidedAt = &now
	}
}

func approverAllowed(name string, candidates []directory.Approver) bool {
	for _, c := range candidates {
		if c.Name == name {
			return true
		}
	}
	return false
}
