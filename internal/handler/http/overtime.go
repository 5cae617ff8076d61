package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type OvertimeHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BatchApprove(w http.ResponseWriter, r *http.Request)
	ValidateBatch(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	PendingQueue(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type OvertimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &OvertimeHandlerImpl{overtimeService: overtimeService}
}

func (h *OvertimeHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.overtimeService.Register(r.Context(), caller, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request registered successfully", request)
}

func (h *OvertimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.overtimeService.Approve(r.Context(), caller, req.RequestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request approved", request)
}

func (h *OvertimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.overtimeService.Reject(r.Context(), caller, req.RequestID, req.RejectReason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request rejected", request)
}

func (h *OvertimeHandlerImpl) BatchApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.BatchDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch approve overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result := h.overtimeService.BatchApprove(r.Context(), caller, req.RequestIDs)
	response.Success(w, result)
}

func (h *OvertimeHandlerImpl) ValidateBatch(w http.ResponseWriter, r *http.Request) {
	var req overtime.ValidateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Validate overtime batch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.overtimeService.ValidateBatch(r.Context(), req.RequestIDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *OvertimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var status *overtime.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "status must be numeric", nil)
			return
		}
		s := overtime.NormalizeStatus(value)
		status = &s
	}

	requests, err := h.overtimeService.MyRequests(r.Context(), caller, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *OvertimeHandlerImpl) PendingQueue(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.overtimeService.PendingQueue(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *OvertimeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req overtime.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Delete overtime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.overtimeService.DeleteRejected(r.Context(), caller, req.RequestID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request deleted", nil)
}
