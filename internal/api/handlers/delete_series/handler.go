package delete_series

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	bookingService "github.com/m04kA/SMC-RoomScheduler/internal/service/bookings"
)

const (
	msgInvalidSeriesID = "некорректный ID серии"
	msgSeriesNotFound  = "серия не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/series/{seriesId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	seriesID := strings.TrimSpace(mux.Vars(r)["seriesId"])
	if seriesID == "" {
		handlers.RespondBadRequest(w, msgInvalidSeriesID)
		return
	}

	result, err := h.service.DeleteSeries(r.Context(), seriesID)
	if err != nil {
		switch {
		case errors.Is(err, bookingService.ErrSeriesNotFound):
			h.logger.Warn("DELETE /bookings/series/{seriesId} - Series not found: series_id=%s", seriesID)
			handlers.RespondNotFound(w, msgSeriesNotFound)
		case errors.Is(err, bookingService.ErrInvalidInput):
			h.logger.Warn("DELETE /bookings/series/{seriesId} - Invalid series ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSeriesID)
		default:
			h.logger.Error("DELETE /bookings/series/{seriesId} - Failed to delete series: series_id=%s, error=%v", seriesID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/series/{seriesId} - Series deleted: series_id=%s, deleted=%d", seriesID, result.Deleted)
	handlers.RespondJSON(w, http.StatusOK, result)
}
