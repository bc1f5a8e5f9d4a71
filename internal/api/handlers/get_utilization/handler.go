package get_utilization

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	getUtilization "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_utilization"
)

const (
	msgInvalidQuery = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidInput = "некорректный период: to не раньше from, не больше 366 дней"
	msgRoomNotFound = "комната не найдена"
)

type Handler struct {
	useCase  GetUtilizationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetUtilizationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/utilization
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r, h.location, time.Now())
	if err != nil {
		h.logger.Warn("GET /utilization - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getUtilization.ErrInvalidInput):
			h.logger.Warn("GET /utilization - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, getUtilization.ErrRoomNotFound):
			h.logger.Warn("GET /utilization - Room not found: %v", err)
			handlers.RespondNotFound(w, msgRoomNotFound)
		default:
			h.logger.Error("GET /utilization - Failed to calculate utilization: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /utilization - Calculated: rooms=%d, total=%d%%", len(result.Rooms), result.Total.Pct)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
