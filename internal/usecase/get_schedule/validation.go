package get_schedule

import (
	"fmt"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// validateRequest проверяет запрос и подставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req == nil || req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Days == 0 {
		req.Days = domain.DefaultScheduleDays
	}
	if req.Days < 1 || req.Days > domain.MaxScheduleDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, domain.MaxScheduleDays)
	}

	if req.GroupBy == "" {
		req.GroupBy = domain.GroupByRoom
	}
	if !req.GroupBy.IsValid() {
		return fmt.Errorf("%w: unknown groupBy %q", ErrInvalidInput, req.GroupBy)
	}

	for name, id := range map[string]*int64{"locationId": req.LocationID, "roomId": req.RoomID, "staffId": req.StaffID} {
		if id != nil && *id <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
		}
	}

	return nil
}
