package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Terminate(w http.ResponseWriter, r *http.Request)
	MyApprovers(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	directoryService directory.Service
}

func NewEmployeeHandler(directoryService directory.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{directoryService: directoryService}
}

func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.directoryService.ListEmployees(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employees)
}

func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req directory.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	employee, err := h.directoryService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employee)
}

func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req directory.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	employee, err := h.directoryService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", employee)
}

func (h *EmployeeHandlerImpl) Terminate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	if err := h.directoryService.TerminateEmployee(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee terminated successfully", nil)
}

// MyApprovers answers "who can approve for me", the candidate lists a
// client offers when composing a request.
func (h *EmployeeHandlerImpl) MyApprovers(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	approvers, err := h.directoryService.Approvers(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, approvers)
}
