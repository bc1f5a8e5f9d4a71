package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 || req.DurationMinutes > 24*60 {
		return fmt.Errorf("%w: duration must be between 0 and %d minutes", ErrInvalidInput, 24*60)
	}

	return nil
}

// minutesOrDefault подставляет длительность слота, если длительность не задана
func minutesOrDefault(minutes, slotMinutes int) int {
	if minutes == 0 {
		if slotMinutes > 0 {
			return slotMinutes
		}
		return domain.DefaultSlotMinutes
	}
	return minutes
}
