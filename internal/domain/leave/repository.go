package leave

import (
	"context"
	"time"
)

// Repository - interface for the leave_requests table
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByApplicant(ctx context.Context, applicant string, status *Status) ([]Request, error)
	// ListPendingForApprover returns requests whose current stage names the
	// given approver.
	ListPendingForApprover(ctx context.Context, approver string) ([]Request, error)
	// ListByApplicantInRange returns requests whose interval intersects
	// [from, to], used by reconciliation.
	ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]Request, error)
	Update(ctx context.Context, request Request) error
	Delete(ctx context.Context, id string) error
}
