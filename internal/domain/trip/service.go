package trip

import (
	"context"

	"github.com/plantops/attendance-backend-go/internal/domain/approval"
)

// Service is the business-trip state-machine contract.
type Service interface {
	Apply(ctx context.Context, applicant string, req *ApplyRequest) (Request, error)
	Approve(ctx context.Context, actor, requestID string) (Request, error)
	Reject(ctx context.Context, actor, requestID, reason string) (Request, error)
	BatchApprove(ctx context.Context, actor string, requestIDs []string) approval.BatchResult
	RegisterReturn(ctx context.Context, applicant string, req *RegisterReturnRequest) (Request, error)
	MyRequests(ctx context.Context, applicant string) ([]Request, error)
	PendingQueue(ctx context.Context, approver string) ([]Request, error)
	DeleteRejected(ctx context.Context, applicant, requestID string) error
}
