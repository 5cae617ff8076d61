package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/holiday"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type HolidayHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type HolidayHandlerImpl struct {
	holidayRepo holiday.Repository
}

func NewHolidayHandler(holidayRepo holiday.Repository) HolidayHandler {
	return &HolidayHandlerImpl{holidayRepo: holidayRepo}
}

// List serves one year of the holiday calendar; the year query parameter
// defaults to the current year.
func (h *HolidayHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year", nil)
			return
		}
		year = parsed
	}

	holidays, err := h.holidayRepo.ListByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}
