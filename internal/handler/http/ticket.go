package http

import (
	"net/http"

	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type TicketHandler interface {
	MyBalance(w http.ResponseWriter, r *http.Request)
}

type TicketHandlerImpl struct {
	ticketService ticket.Service
}

func NewTicketHandler(ticketService ticket.Service) TicketHandler {
	return &TicketHandlerImpl{ticketService: ticketService}
}

func (h *TicketHandlerImpl) MyBalance(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.ticketService.Balance(r.Context(), caller)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
