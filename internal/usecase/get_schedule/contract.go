package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ReferenceService интерфейс справочников
type ReferenceService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
