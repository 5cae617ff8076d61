package leave

import (
	"context"

	"github.com/plantops/attendance-backend-go/internal/domain/approval"
)

// Service is the leave state-machine contract.
type Service interface {
	Submit(ctx context.Context, applicant string, req *SubmitRequest) (Request, error)
	Approve(ctx context.Context, actor, requestID string) (Request, error)
	Reject(ctx context.Context, actor, requestID, reason string) (Request, error)
	BatchApprove(ctx context.Context, actor string, requestIDs []string) approval.BatchResult
	MyRequests(ctx context.Context, applicant string, status *Status) ([]Request, error)
	PendingQueue(ctx context.Context, approver string) ([]Request, error)
	DeleteRejected(ctx context.Context, applicant, requestID string) error
}
