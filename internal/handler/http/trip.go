package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/plantops/attendance-backend-go/internal/domain/trip"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type TripHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	BatchApprove(w http.ResponseWriter, r *http.Request)
	RegisterReturn(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	PendingQueue(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type TripHandlerImpl struct {
	tripService trip.Service
}

func NewTripHandler(tripService trip.Service) TripHandler {
	return &TripHandlerImpl{tripService: tripService}
}

func (h *TripHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req trip.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply business trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.tripService.Apply(r.Context(), caller, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Business trip request submitted successfully", request)
}

func (h *TripHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req trip.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve business trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.tripService.Approve(r.Context(), caller, req.RequestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip request approved", request)
}

func (h *TripHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req trip.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject business trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.tripService.Reject(r.Context(), caller, req.RequestID, req.RejectReason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip request rejected", request)
}

func (h *TripHandlerImpl) BatchApprove(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req struct {
		RequestIDs []string `json:"request_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Batch approve business trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.RequestIDs) == 0 {
		response.BadRequest(w, "request_ids is required", nil)
		return
	}

	result := h.tripService.BatchApprove(r.Context(), caller, req.RequestIDs)
	response.Success(w, result)
}

func (h *TripHandlerImpl) RegisterReturn(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req trip.RegisterReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register trip return decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.tripService.RegisterReturn(r.Context(), caller, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Trip return registered", request)
}

func (h *TripHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.tripService.MyRequests(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *TripHandlerImpl) PendingQueue(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.tripService.PendingQueue(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

func (h *TripHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req trip.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Delete business trip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.tripService.DeleteRejected(r.Context(), caller, req.RequestID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Business trip request deleted", nil)
}
