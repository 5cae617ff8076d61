package directory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"golang.org/x/crypto/bcrypt"
)

// DirectoryService resolves roster scopes and routes approvals. Routing is
// a fixed decision table keyed on the applicant's classified level; all
// matching happens in memory over the active roster because levels are
// classified from free-text titles, not stored.
type DirectoryService struct {
	employeeRepo directory.Repository
}

func NewDirectoryService(employeeRepo directory.Repository) *DirectoryService {
	return &DirectoryService{employeeRepo: employeeRepo}
}

func (s *DirectoryService) ResolveScope(ctx context.Context, name string) (directory.Level, string, error) {
	emp, err := s.employeeRepo.GetActiveByName(ctx, name)
	if err != nil {
		return directory.LevelUnknown, "", err
	}
	return emp.Level(), emp.Department, nil
}

func (s *DirectoryService) Approvers(ctx context.Context, applicantName string) (directory.ApproverSet, error) {
	first, err := s.FirstApprovers(ctx, applicantName)
	if err != nil {
		return directory.ApproverSet{}, err
	}
	second, err := s.SecondApprovers(ctx)
	if err != nil {
		return directory.ApproverSet{}, err
	}
	return directory.ApproverSet{First: first, Second: second}, nil
}

// FirstApprovers applies the routing decision table. Absence of data is
// signaled with an empty list: an unknown applicant cannot submit, but the
// answer is still a successful (empty) one.
func (s *DirectoryService) FirstApprovers(ctx context.Context, applicantName string) ([]directory.Approver, error) {
	applicant, err := s.employeeRepo.GetActiveByName(ctx, applicantName)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return []directory.Approver{}, nil
		}
		return nil, fmt.Errorf("resolve applicant: %w", err)
	}

	roster, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}

	return routeFirstApprovers(applicant, roster), nil
}

func (s *DirectoryService) SecondApprovers(ctx context.Context) ([]directory.Approver, error) {
	roster, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return pick(roster, func(e directory.Employee) bool {
		return isDepartmentLeader(e.Level())
	}), nil
}

// routeFirstApprovers is the decision table from the approval rulebook.
func routeFirstApprovers(applicant directory.Employee, roster []directory.Employee) []directory.Approver {
	// department-office staff go straight to the department heads
	if applicant.Department == directory.DepartmentOffice {
		return pick(roster, func(e directory.Employee) bool {
			return e.Level() == directory.LevelDepartmentHead
		})
	}

	switch applicant.Level() {
	case directory.LevelStaff:
		return pick(roster, func(e directory.Employee) bool {
			return e.Department == applicant.Department && isRoomLevel(e.Level())
		})

	case directory.LevelTeamLead, directory.LevelResponsibleEngineer:
		return pick(roster, func(e directory.Employee) bool {
			return e.Department == applicant.Department && isRoomDirector(e.Level())
		})

	case directory.LevelRoomDirector, directory.LevelDeputyRoomDirector:
		return pick(roster, func(e directory.Employee) bool {
			if isDepartmentLeader(e.Level()) {
				return true
			}
			// same-department director peers, excluding the applicant
			return e.Department == applicant.Department &&
				isRoomDirector(e.Level()) &&
				e.Name != applicant.Name
		})

	default:
		// unrecognized title: department peers first, department leaders as
		// the last resort
		peers := pick(roster, func(e directory.Employee) bool {
			return e.Department == applicant.Department && isRoomLevel(e.Level())
		})
		if len(peers) > 0 {
			return peers
		}
		return pick(roster, func(e directory.Employee) bool {
			return isDepartmentLeader(e.Level())
		})
	}
}

// isRoomLevel covers the roles that can take a staff-level first approval.
func isRoomLevel(l directory.Level) bool {
	return l == directory.LevelTeamLead || isRoomDirector(l)
}

func isRoomDirector(l directory.Level) bool {
	return l == directory.LevelRoomDirector || l == directory.LevelDeputyRoomDirector
}

func isDepartmentLeader(l directory.Level) bool {
	return l == directory.LevelDepartmentHead || l == directory.LevelDeputyDepartmentHead
}

func pick(roster []directory.Employee, match func(directory.Employee) bool) []directory.Approver {
	approvers := []directory.Approver{}
	for _, e := range roster {
		if match(e) {
			approvers = append(approvers, e.AsApprover())
		}
	}
	return approvers
}

func (s *DirectoryService) CreateEmployee(ctx context.Context, req directory.CreateEmployeeRequest) (directory.Employee, error) {
	if err := req.Validate(); err != nil {
		return directory.Employee{}, err
	}

	if _, err := s.employeeRepo.GetActiveByName(ctx, req.Name); err == nil {
		return directory.Employee{}, directory.ErrNameTaken
	} else if !errors.Is(err, directory.ErrEmployeeNotFound) {
		return directory.Employee{}, fmt.Errorf("check name: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return directory.Employee{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	employee := directory.Employee{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Title:        req.Title,
		Department:   req.Department,
		Status:       directory.StatusActive,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		return directory.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return created, nil
}

func (s *DirectoryService) UpdateEmployee(ctx context.Context, req directory.UpdateEmployeeRequest) (directory.Employee, error) {
	if err := req.Validate(); err != nil {
		return directory.Employee{}, err
	}

	employee, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return directory.Employee{}, err
	}

	if req.Title != nil {
		employee.Title = *req.Title
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return directory.Employee{}, fmt.Errorf("hash password: %w", err)
		}
		employee.PasswordHash = string(hash)
	}
	employee.UpdatedAt = time.Now()

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return directory.Employee{}, fmt.Errorf("update employee: %w", err)
	}
	return employee, nil
}

// TerminateEmployee flips the status. The row stays for history; every
// active-roster query stops seeing it.
func (s *DirectoryService) TerminateEmployee(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.UpdateStatus(ctx, id, directory.StatusTerminated)
}

func (s *DirectoryService) ListEmployees(ctx context.Context) ([]directory.Employee, error) {
	return s.employeeRepo.ListActive(ctx)
}
