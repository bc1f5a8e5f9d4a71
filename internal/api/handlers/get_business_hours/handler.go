package get_business_hours

import (
	"net/http"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
)

const (
	msgInvalidLocationID = "некорректный ID локации"
	msgLocationNotFound  = "локация не найдена"
)

// Handler отдает часы работы; часы задаются в конфиге и через API не меняются
type Handler struct {
	references  ReferenceService
	calendars   engine.CalendarSet
	slotMinutes int
	logger      Logger
}

func NewHandler(references ReferenceService, calendars engine.CalendarSet, slotMinutes int, logger Logger) *Handler {
	return &Handler{
		references:  references,
		calendars:   calendars,
		slotMinutes: slotMinutes,
		logger:      logger,
	}
}

// Handle GET /api/v1/business-hours
// Query params: locationId (опционально, без него - часы по умолчанию)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.QueryInt64(r.URL.Query(), "locationId")
	if err != nil {
		h.logger.Warn("GET /business-hours - Invalid location ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	if locationID == nil {
		handlers.RespondJSON(w, http.StatusOK, FromCalendar(h.calendars.Default(), nil, false, h.slotMinutes))
		return
	}

	locations, err := h.references.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("GET /business-hours - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	found := false
	for _, location := range locations {
		if location.ID == *locationID {
			found = true
			break
		}
	}
	if !found {
		h.logger.Warn("GET /business-hours - Location not found: location_id=%d", *locationID)
		handlers.RespondNotFound(w, msgLocationNotFound)
		return
	}

	response := FromCalendar(
		h.calendars.ForLocation(*locationID),
		locationID,
		h.calendars.HasOverride(*locationID),
		h.slotMinutes,
	)
	handlers.RespondJSON(w, http.StatusOK, response)
}
