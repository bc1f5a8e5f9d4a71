package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteBySeries(ctx context.Context, seriesID string) (int64, error)
}

// ReferenceService интерфейс справочников для подписей и фильтра по локации
type ReferenceService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error)
}

// EventPublisher интерфейс публикации событий после удаления
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
