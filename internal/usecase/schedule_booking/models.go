package schedule_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Request модель запроса на бронирование (одно или серия)
type Request struct {
	RoomID  int64
	StaffID int64
	Start   time.Time // Начало первого вхождения
	End     time.Time // Конец первого вхождения
	Notes   *string

	Cadence domain.Cadence        // Пусто - без повторения
	Until   *time.Time            // Последняя дата серии включительно
	Policy  domain.ConflictPolicy // Пусто - skip
}

// Response итог обработки запроса
// При ErrStore содержит вхождения, созданные до ошибки
type Response struct {
	Created  []*domain.Booking
	Skipped  int
	Replaced int // Сколько существующих бронирований удалено политикой replace
	SeriesID *string
}
