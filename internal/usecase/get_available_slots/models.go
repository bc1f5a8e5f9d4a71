package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Request модель запроса свободных слотов комнаты
type Request struct {
	RoomID          int64
	Date            time.Time // Дата (время суток игнорируется)
	DurationMinutes int       // Длительность будущего бронирования, 0 - один слот
}

// Response модель ответа со слотами дня
type Response struct {
	Date            time.Time
	RoomID          int64
	Open            bool // false - комната закрыта в этот день, Slots пуст
	DurationMinutes int
	Slots           []Slot
}

// Slot начало возможного бронирования
// Interval - сам слот сетки, Available - влезает ли бронирование длительностью DurationMinutes
type Slot struct {
	Interval  domain.Interval
	Available bool
}
