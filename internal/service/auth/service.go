package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/plantops/attendance-backend-go/internal/domain/auth"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/pkg/jwt"
)

type AuthService struct {
	employeeRepo directory.Repository
	jwtService   jwt.Service
}

func NewAuthService(employeeRepo directory.Repository, jwtService jwt.Service) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

// Login verifies the name/password pair against the active roster. Unknown
// names and bad passwords both come back as ErrInvalidCredentials so the
// response does not leak which one failed.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	employee, err := s.employeeRepo.GetActiveByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(employee.Name, employee.Department, employee.Title)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Name:        employee.Name,
		Department:  employee.Department,
		Title:       employee.Title,
	}, nil
}
