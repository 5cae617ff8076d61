package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BatchApprove(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	PendingQueue(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.leaveService.Submit(r.Context(), caller, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", request)
}

func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.leaveService.Approve(r.Context(), caller, req.RequestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", request)
}

func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.leaveService.Reject(r.Context(), caller, req.RequestID, req.RejectReason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", request)
}

func (h *LeaveHandlerImpl) BatchApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.BatchDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch approve leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result := h.leaveService.BatchApprove(r.Context(), caller, req.RequestIDs)
	response.Success(w, result)
}

func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var status *leave.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "status must be numeric", nil)
			return
		}
		s := leave.Status(value)
		status = &s
	}

	requests, err := h.leaveService.MyRequests(r.Context(), caller, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *LeaveHandlerImpl) PendingQueue(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.leaveService.PendingQueue(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *LeaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Delete leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.DeleteRejected(r.Context(), caller, req.RequestID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted", nil)
}
