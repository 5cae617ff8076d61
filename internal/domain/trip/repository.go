package trip

import (
	"context"
	"time"
)

// Repository - interface for the business_trip_requests table
type Repository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByApplicant(ctx context.Context, applicant string) ([]Request, error)
	// ListPendingByDepartment returns not-yet-dual-approved requests for a
	// department, the queue both approver roles read.
	ListPendingByDepartment(ctx context.Context, department string) ([]Request, error)
	// ListByApplicantInRange returns requests whose trip window intersects
	// [from, to], used by reconciliation.
	ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]Request, error)
	Update(ctx context.Context, request Request) error
	Delete(ctx context.Context, id string) error
}
