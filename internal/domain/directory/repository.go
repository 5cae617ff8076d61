package directory

import (
	"context"
)

// Repository - interface for the employees roster table
type Repository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetActiveByName resolves a name on the active roster. Terminated
	// employees are invisible to every caller of this method.
	GetActiveByName(ctx context.Context, name string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	ListActiveByDepartment(ctx context.Context, department string) ([]Employee, error)
	Update(ctx context.Context, employee Employee) error
	UpdateStatus(ctx context.Context, id string, status EmploymentStatus) error
}
