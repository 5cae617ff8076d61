package overtime

import (
	"context"
	"time"
)

// Repository - interface for the overtime_requests table
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByApplicant(ctx context.Context, applicant string, status *Status) ([]Request, error)
	// ListPendingForApprover returns requests whose current stage names the
	// given approver, including the final-gate queue for the attendance
	// admin.
	ListPendingForApprover(ctx context.Context, approver string) ([]Request, error)
	ListPendingFinal(ctx context.Context) ([]Request, error)
	// ListByApplicantInRange returns requests whose interval intersects
	// [from, to], used by reconciliation and duplicate detection.
	ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]Request, error)
	Update(ctx context.Context, request Request) error
	Delete(ctx context.Context, id string) error
}
