package response

import (
	"errors"
	"net/http"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/auth"
	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/domain/trip"
	"github.com/plantops/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Roster errors
	case errors.Is(err, directory.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, directory.ErrNameTaken):
		Conflict(w, "Employee name already on the active roster")

	// Leave errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Leave request is not in a state that permits this action")
	case errors.Is(err, leave.ErrNotApprover),
		errors.Is(err, leave.ErrNotApplicant):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrNotRejected):
		BadRequest(w, "Only rejected leave requests can be deleted", nil)

	// Overtime errors
	case errors.Is(err, overtime.ErrRequestNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrInvalidTransition):
		Conflict(w, "Overtime request is not in a state that permits this action")
	case errors.Is(err, overtime.ErrNotApprover),
		errors.Is(err, overtime.ErrNotAttendanceAdmin),
		errors.Is(err, overtime.ErrNotApplicant):
		Forbidden(w, err.Error())
	case errors.Is(err, overtime.ErrNotRejected):
		BadRequest(w, "Only rejected overtime requests can be deleted", nil)

	// Business trip errors
	case errors.Is(err, trip.ErrRequestNotFound):
		NotFound(w, "Business trip request not found")
	case errors.Is(err, trip.ErrInvalidTransition),
		errors.Is(err, trip.ErrRoomDirectorFirst):
		Conflict(w, err.Error())
	case errors.Is(err, trip.ErrNotApprover),
		errors.Is(err, trip.ErrNotApplicant):
		Forbidden(w, err.Error())
	case errors.Is(err, trip.ErrNotRejected):
		BadRequest(w, "Only rejected business trip requests can be deleted", nil)

	// Ticket ledger errors
	case errors.Is(err, ticket.ErrInsufficientTickets):
		BadRequest(w, "Insufficient exchange ticket balance", nil)
	case errors.Is(err, ticket.ErrEntryNotFound):
		NotFound(w, "Exchange ticket ledger entry not found")

	// Attendance errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Punch record not found")
	case errors.Is(err, attendance.ErrEmptySheet):
		BadRequest(w, "Uploaded sheet contains no punch rows", nil)
	case errors.Is(err, attendance.ErrExceptionsDenied),
		errors.Is(err, attendance.ErrUploadsAdminOnly):
		Forbidden(w, err.Error())

	// Settings errors
	case errors.Is(err, settings.ErrNotConfigured):
		NotFound(w, "Settings row is missing")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
