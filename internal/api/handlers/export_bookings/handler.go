package export_bookings

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers/list_bookings"
	bookingService "github.com/m04kA/SMC-RoomScheduler/internal/service/bookings"
)

const (
	msgInvalidQuery = "некорректные параметры запроса: from и to (YYYY-MM-DD) задаются вместе, ID - положительные числа"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := list_bookings.ParseListRequest(r, h.location)
	if err != nil {
		h.logger.Warn("GET /bookings/export - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	// Буферизуем, чтобы при ошибке вернуть JSON, а не обрезанный CSV
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), req, &buf); err != nil {
		switch {
		case errors.Is(err, bookingService.ErrInvalidInput):
			h.logger.Warn("GET /bookings/export - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)
		default:
			h.logger.Error("GET /bookings/export - Failed to export bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().In(h.location).Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("GET /bookings/export - Failed to write response: %v", err)
		return
	}

	h.logger.Info("GET /bookings/export - Export sent")
}
