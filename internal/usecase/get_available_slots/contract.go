package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// BookingStore интерфейс хранилища бронирований
type BookingStore interface {
	// QueryByRoom получает бронирования комнаты, пересекающие окно
	QueryByRoom(ctx context.Context, roomID int64, window *domain.Interval) ([]*domain.Booking, error)
}

// ReferenceService интерфейс справочников
type ReferenceService interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
