package export_bookings

import (
	"context"
	"io"

	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
)

type BookingService interface {
	ExportCSV(ctx context.Context, req *models.ListRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
