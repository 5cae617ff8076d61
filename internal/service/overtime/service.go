package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantops/attendance-backend-go/internal/domain/approval"
	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
	"github.com/plantops/attendance-backend-go/internal/pkg/validator"
)

// RequestService drives the overtime approval state machine. Every chain
// ends at the attendance admin's final gate; terminal approval either
// credits the exchange-ticket ledger or fills pay hours, never both.
type RequestService struct {
	txRunner     database.TxRunner
	requestRepo  overtime.Repository
	ticketRepo   ticket.Repository
	punchRepo    attendance.PunchRepository
	settingsRepo settings.Repository
	directory    directory.Service
	now          func() time.Time
}

func NewRequestService(
	txRunner database.TxRunner,
	requestRepo overtime.Repository,
	ticketRepo ticket.Repository,
	punchRepo attendance.PunchRepository,
	settingsRepo settings.Repository,
	directorySvc directory.Service,
) *RequestService {
	return &RequestService{
		txRunner:     txRunner,
		requestRepo:  requestRepo,
		ticketRepo:   ticketRepo,
		punchRepo:    punchRepo,
		settingsRepo: settingsRepo,
		directory:    directorySvc,
		now:          time.Now,
	}
}

func (s *RequestService) Register(ctx context.Context, applicant string, req *overtime.RegisterRequest) (overtime.Request, error) {
	if err := req.Validate(); err != nil {
		return overtime.Request{}, err
	}

	// department is back-filled from the roster
	_, department, err := s.directory.ResolveScope(ctx, applicant)
	if err != nil {
		return overtime.Request{}, err
	}

	candidates, err := s.directory.FirstApprovers(ctx, applicant)
	if err != nil {
		return overtime.Request{}, err
	}
	if !approverAllowed(req.FirstApprover, candidates) {
		return overtime.Request{}, validator.ValidationErrors{{
			Field:   "first_approver",
			Message: "first_approver is not an eligible approver for this applicant",
		}}
	}
	if req.NeedsSecondApproval {
		seconds, err := s.directory.SecondApprovers(ctx)
		if err != nil {
			return overtime.Request{}, err
		}
		if !approverAllowed(req.SecondApprover, seconds) {
			return overtime.Request{}, validator.ValidationErrors{{
				Field:   "second_approver",
				Message: "second_approver is not an eligible second-stage approver",
			}}
		}
	}

	date, start, end := req.Parsed()
	request := overtime.Request{
		ID:                  uuid.NewString(),
		Applicant:           applicant,
		Department:          department,
		Date:                date,
		StartTime:           start,
		EndTime:             end,
		FirstApprover:       req.FirstApprover,
		SecondApprover:      req.SecondApprover,
		NeedsSecondApproval: req.NeedsSecondApproval,
		WantsTicket:         req.WantsTicket,
		Status:              overtime.StatusAwaitingFirst,
		Hours:               overtime.ClaimHours(start, end),
		SubmittedAt:         s.now(),
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return overtime.Request{}, fmt.Errorf("create overtime request: %w", err)
	}
	return created, nil
}

func (s *RequestService) Approve(ctx context.Context, actor, requestID string) (overtime.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return overtime.Request{}, err
	}

	if err := s.authorizeStage(ctx, &request, actor); err != nil {
		return overtime.Request{}, err
	}

	next, err := overtime.NextStatus(request.Status, overtime.ActionApprove, request.NeedsSecondApproval)
	if err != nil {
		return overtime.Request{}, err
	}

	now := s.now()
	s.stampStage(&request, actor, now)
	request.Status = next

	if next == overtime.StatusApproved {
		if err := s.settle(ctx, &request, now); err != nil {
			return overtime.Request{}, err
		}
	} else if err := s.requestRepo.Update(ctx, request); err != nil {
		return overtime.Request{}, fmt.Errorf("update overtime request: %w", err)
	}

	metrics.ApprovalActions.WithLabelValues("overtime", "approve").Inc()
	return request, nil
}

// settle applies the terminal compensation rule. The wants-ticket flag is
// read here, at approval time, not from the submission snapshot: exactly
// one of pay hours and tickets ends up non-zero.
func (s *RequestService) settle(ctx context.Context, request *overtime.Request, now time.Time) error {
	if request.WantsTicket {
		request.Tickets = overtime.TicketCredit(request.Hours)
		request.PayHours = 0

		return s.txRunner.RunTx(ctx, func(ctx context.Context) error {
			if request.Tickets > 0 {
				entry := ticket.Entry{
					Employee:   request.Applicant,
					Quantity:   request.Tickets,
					AcquiredAt: request.Date,
				}
				if _, err := s.ticketRepo.Create(ctx, entry); err != nil {
					return fmt.Errorf("credit ticket ledger: %w", err)
				}
			}
			if err := s.requestRepo.Update(ctx, *request); err != nil {
				return fmt.Errorf("update overtime request: %w", err)
			}
			return nil
		})
	}

	request.PayHours = request.RawHours()
	request.Tickets = 0
	if err := s.requestRepo.Update(ctx, *request); err != nil {
		return fmt.Errorf("update overtime request: %w", err)
	}
	return nil
}

func (s *RequestService) Reject(ctx context.Context, actor, requestID, reason string) (overtime.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return overtime.Request{}, err
	}

	if err := s.authorizeStage(ctx, &request, actor); err != nil {
		return overtime.Request{}, err
	}

	next, err := overtime.NextStatus(request.Status, overtime.ActionReject, request.NeedsSecondApproval)
	if err != nil {
		return overtime.Request{}, err
	}

	s.stampStage(&request, actor, s.now())
	request.Status = next
	request.RejectReason = reason

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return overtime.Request{}, fmt.Errorf("update overtime request: %w", err)
	}

	metrics.ApprovalActions.WithLabelValues("overtime", "reject").Inc()
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

// ValidateBatch loads the named requests plus the punch records and
// neighbouring registrations they must be checked against, then runs the
// pure three-step validation.
func (s *RequestService) ValidateBatch(ctx context.Context, requestIDs []string) ([]overtime.ValidateResult, error) {
	items := make([]overtime.ValidateItem, 0, len(requestIDs))
	work := make(map[string][]overtime.Interval)
	existing := make([]overtime.Request, 0)
	seenApplicant := make(map[string]bool)

	for _, id := range requestIDs {
		request, err := s.requestRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		items = append(items, overtime.ValidateItem{
			ID:        request.ID,
			Applicant: request.Applicant,
			Date:      request.Date,
			StartTime: request.StartTime,
			EndTime:   request.EndTime,
		})

		key := workKey(request.Applicant, request.Date)
		if _, ok := work[key]; !ok {
			work[key] = s.punchWorkIntervals(ctx, request.Applicant, request.Date)
		}

		if !seenApplicant[request.Applicant] {
			seenApplicant[request.Applicant] = true
			others, err := s.requestRepo.ListByApplicantInRange(ctx, request.Applicant,
				request.Date.AddDate(0, -1, 0), request.Date.AddDate(0, 1, 0))
			if err != nil {
				return nil, fmt.Errorf("list existing overtime: %w", err)
			}
			existing = append(existing, others...)
		}
	}

	lookup := func(applicant string, date time.Time) []overtime.Interval {
		return work[workKey(applicant, date)]
	}
	return overtime.ValidateBatch(items, lookup, existing), nil
}

func (s *RequestService) punchWorkIntervals(ctx context.Context, applicant string, date time.Time) []overtime.Interval {
	record, err := s.punchRepo.GetByEmployeeAndDate(ctx, applicant, date)
	if err != nil {
		// no punches means nothing can contain the claim
		return nil
	}
	var intervals []overtime.Interval
	for _, pair := range record.WorkIntervals() {
		intervals = append(intervals, overtime.Interval{Start: pair[0], End: pair[1]})
	}
	return intervals
}

func workKey(applicant string, date time.Time) string {
	return applicant + "|" + date.Format("2006-01-02")
}

func (s *RequestService) MyRequests(ctx context.Context, applicant string, status *overtime.Status) ([]overtime.Request, error) {
	return s.requestRepo.ListByApplicant(ctx, applicant, status)
}

// PendingQueue lists requests awaiting the given approver. The attendance
// admin additionally sees the whole final-gate queue.
func (s *RequestService) PendingQueue(ctx context.Context, approver string) ([]overtime.Request, error) {
	pending, err := s.requestRepo.ListPendingForApprover(ctx, approver)
	if err != nil {
		return nil, err
	}

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if cfg.AttendanceAdmin != approver {
		return pending, nil
	}

	finals, err := s.requestRepo.ListPendingFinal(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(pending))
	for _, r := range pending {
		seen[r.ID] = true
	}
	for _, r := range finals {
		if !seen[r.ID] {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// DeleteRejected removes a rejected request. Only the applicant may do
// this, and only from the terminal rejected state.
func (s *RequestService) DeleteRejected(ctx context.Context, applicant, requestID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Applicant != applicant {
		return overtime.ErrNotApplicant
	}
	if request.Status != overtime.StatusRejected {
		return overtime.ErrNotRejected
	}
	return s.requestRepo.Delete(ctx, requestID)
}

// authorizeStage checks the actor against the current stage. The final
// stage is reserved for the attendance admin named in settings, regardless
// of department. The actor must still be on the active roster; a terminated
// employee's token stops working here even before it expires.
func (s *RequestService) authorizeStage(ctx context.Context, request *overtime.Request, actor string) error {
	if _, _, err := s.directory.ResolveScope(ctx, actor); err != nil {
		return overtime.ErrNotApprover
	}
	switch request.Status {
	case overtime.StatusAwaitingFirst:
		if request.FirstApprover != actor {
			return overtime.ErrNotApprover
		}
	case overtime.StatusAwaitingSecond:
		if request.SecondApprover != actor {
			return overtime.ErrNotApprover
		}
	case overtime.StatusAwaitingFinal:
		cfg, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if cfg.AttendanceAdmin != actor {
			return overtime.ErrNotAttendanceAdmin
		}
	default:
		return overtime.ErrInvalidTransition
	}
	return nil
}

func (s *RequestService) stampStage(request *overtime.Request, actor string, now time.Time) {
	switch request.Status {
	case overtime.StatusAwaitingFirst:
		request.FirstDecidedAt = &now
	case overtime.StatusAwaitingSecond:
		request.SecondDecidedAt = &now
	case overtime.StatusAwaitingFinal:
		request.FinalApprover = actor
		request.FinalDecidedAt = &now
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
