package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/handler/http/middleware"
	"github.com/plantops/attendance-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsRepo settings.Repository
}

func NewSettingsHandler(settingsRepo settings.Repository) SettingsHandler {
	return &SettingsHandlerImpl{settingsRepo: settingsRepo}
}

func (h *SettingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsRepo.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

// Update rewrites the operational settings row. Once an attendance admin is
// designated only they may change it; before that the row is open so the
// first admin can be bootstrapped.
func (h *SettingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := middleware.CallerName(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	current, err := h.settingsRepo.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if current.AttendanceAdmin != "" && current.AttendanceAdmin != caller {
		response.HandleError(w, attendance.ErrUploadsAdminOnly)
		return
	}

	var cfg settings.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		slog.Error("Update settings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.settingsRepo.Update(r.Context(), cfg); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", cfg)
}
