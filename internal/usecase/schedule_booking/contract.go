package schedule_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	QueryByRoom(ctx context.Context, roomID int64, window *domain.Interval) ([]*domain.Booking, error)
	InsertBookings(ctx context.Context, bookings []*domain.Booking) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

// ReferenceService интерфейс справочников: комната и терапевт запроса
type ReferenceService interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс публикации событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// Metrics интерфейс счетчиков планировщика
type Metrics interface {
	RecordOccurrence(outcome string)
	RecordScheduling(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// IDGenerator выдает идентификатор серии
type IDGenerator func() string
