package get_utilization

import (
	"fmt"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// validateRequest проверяет период; сравниваются даты, а не время суток
func validateRequest(req *Request) error {
	if req == nil || req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	if days := int(req.To.Sub(req.From).Hours()/24) + 1; days > domain.MaxUtilizationDays {
		return fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, domain.MaxUtilizationDays)
	}
	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationId must be positive", ErrInvalidInput)
	}
	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomId must be positive", ErrInvalidInput)
	}
	return nil
}
