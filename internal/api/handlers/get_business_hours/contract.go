package get_business_hours

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

type ReferenceService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
