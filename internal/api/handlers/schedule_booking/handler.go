package schedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	scheduleBooking "github.com/m04kA/SMC-RoomScheduler/internal/usecase/schedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM или RFC3339"
	msgInvalidInput       = "некорректные параметры бронирования"
	msgInvalidRecurrence  = "некорректное повторение: укажите дату окончания не раньше первого вхождения"
	msgRoomNotFound       = "комната не найдена"
	msgStaffNotFound      = "терапевт не найден"
	msgStaffInactive      = "терапевт деактивирован"
	msgStoreError         = "ошибка хранилища, часть бронирований могла быть создана"
)

type Handler struct {
	useCase  ScheduleBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ScheduleBookingUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ScheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, scheduleBooking.ErrInvalidRecurrence):
			h.logger.Warn("POST /bookings - Invalid recurrence: room_id=%d, error=%v", req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, scheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: room_id=%d, error=%v", req.RoomID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, scheduleBooking.ErrStaffInactive):
			h.logger.Warn("POST /bookings - Staff inactive: staff_id=%d", req.StaffID)
			handlers.RespondBadRequest(w, msgStaffInactive)

		case errors.Is(err, scheduleBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, scheduleBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, scheduleBooking.ErrStore):
			created, skipped := 0, 0
			if result != nil {
				created, skipped = len(result.Created), result.Skipped
			}
			h.logger.Error("POST /bookings - Store failure: room_id=%d, created=%d, skipped=%d, error=%v",
				req.RoomID, created, skipped, err)
			handlers.RespondJSON(w, http.StatusInternalServerError, PartialFailureResponse{
				Error:        msgStoreError,
				CreatedCount: created,
				Skipped:      skipped,
			})

		default:
			h.logger.Error("POST /bookings - Failed to schedule booking: room_id=%d, staff_id=%d, error=%v",
				req.RoomID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result, h.location)

	h.logger.Info("POST /bookings - Scheduled: room_id=%d, staff_id=%d, created=%d, skipped=%d, replaced=%d",
		req.RoomID, req.StaffID, response.CreatedCount, response.Skipped, response.Replaced)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
