package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	getSchedule "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_schedule"
)

const (
	msgInvalidQuery     = "некорректные параметры запроса"
	msgInvalidInput     = "некорректные параметры сетки: days от 1 до 14, groupBy - room, staff или location"
	msgLocationNotFound = "локация не найдена"
	msgRoomNotFound     = "комната не найдена"
)

type Handler struct {
	useCase  GetScheduleUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetScheduleUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r, h.location, time.Now())
	if err != nil {
		h.logger.Warn("GET /schedule - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSchedule.ErrInvalidInput):
			h.logger.Warn("GET /schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, getSchedule.ErrLocationNotFound):
			h.logger.Warn("GET /schedule - Location not found: %v", err)
			handlers.RespondNotFound(w, msgLocationNotFound)
		case errors.Is(err, getSchedule.ErrRoomNotFound):
			h.logger.Warn("GET /schedule - Room not found: %v", err)
			handlers.RespondNotFound(w, msgRoomNotFound)
		default:
			h.logger.Error("GET /schedule - Failed to build schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /schedule - Built schedule: date=%s, days=%d, group_by=%s",
		req.Date.Format("2006-01-02"), len(result.Days), result.GroupBy)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
