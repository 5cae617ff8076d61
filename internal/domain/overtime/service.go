package overtime

import (
	"context"

	"github.com/plantops/attendance-backend-go/internal/domain/approval"
)

// Service is the overtime state-machine contract.
type Service interface {
	Register(ctx context.Context, applicant string, req *RegisterRequest) (Request, error)
	Approve(ctx context.Context, actor, requestID string) (Request, error)
	Reject(ctx context.Context, actor, requestID, reason string) (Request, error)
	BatchApprove(ctx context.Context, actor string, requestIDs []string) approval.BatchResult
	// ValidateBatch runs the three ordered pre-approval checks over pending
	// requests without mutating anything.
	ValidateBatch(ctx context.Context, requestIDs []string) ([]ValidateResult, error)
	MyRequests(ctx context.Context, applicant string, status *Status) ([]Request, error)
	PendingQueue(ctx context.Context, approver string) ([]Request, error)
	DeleteRejected(ctx context.Context, applicant, requestID string) error
}
