package delete_series

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
)

type BookingService interface {
	DeleteSeries(ctx context.Context, seriesID string) (*models.DeleteSeriesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
