package directory

import "context"

// Service is the roster and approval-routing contract.
type Service interface {
	// ResolveScope maps a name to level and department. Terminated or
	// unknown employees resolve to ErrEmployeeNotFound.
	ResolveScope(ctx context.Context, name string) (Level, string, error)
	// Approvers answers "who can approve for this applicant". An unknown
	// applicant yields empty candidate lists, never an error.
	Approvers(ctx context.Context, applicantName string) (ApproverSet, error)
	FirstApprovers(ctx context.Context, applicantName string) ([]Approver, error)
	SecondApprovers(ctx context.Context) ([]Approver, error)

	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	TerminateEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context) ([]Employee, error)
}
