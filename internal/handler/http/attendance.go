package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

// maxPunchSheetBytes caps punch workbook uploads.
const maxPunchSheetBytes = 16 << 20

type AttendanceHandler interface {
	UploadPunches(w http.ResponseWriter, r *http.Request)
	MySuggestions(w http.ResponseWriter, r *http.Request)
	Exceptions(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	ingestService     attendance.IngestService
	suggestionService attendance.SuggestionService
}

func NewAttendanceHandler(ingestService attendance.IngestService, suggestionService attendance.SuggestionService) AttendanceHandler {
	return &AttendanceHandlerImpl{
		ingestService:     ingestService,
		suggestionService: suggestionService,
	}
}

func (h *AttendanceHandlerImpl) UploadPunches(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxPunchSheetBytes); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	file, _, err := r.FormFile("sheet")
	if err != nil {
		response.BadRequest(w, "sheet file is required", nil)
		return
	}
	defer file.Close()

	summary, err := h.ingestService.IngestPunches(r.Context(), caller, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punch sheet ingested", summary)
}

func (h *AttendanceHandlerImpl) MySuggestions(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	suggestions, err := h.suggestionService.ListSuggestions(r.Context(), caller, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, suggestions)
}

func (h *AttendanceHandlerImpl) Exceptions(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, ok := yearMonthParams(w, r)
	if !ok {
		return
	}

	exceptions, err := h.suggestionService.Exceptions(r.Context(), caller, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, exceptions)
}

// yearMonthParams reads the year/month query pair, defaulting to the
// current month.
func yearMonthParams(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if raw := r.URL.Query().Get("year"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be numeric", nil)
			return 0, 0, false
		}
		year = value
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 1 || value > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return 0, 0, false
		}
		month = value
	}
	return year, month, true
}
