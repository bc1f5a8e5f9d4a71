package get_schedule

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Request модель запроса сетки расписания
type Request struct {
	Date       time.Time      // Первый день (время суток игнорируется)
	Days       int            // Количество дней, 0 - один день
	GroupBy    domain.GroupBy // Пусто - по комнатам
	LocationID *int64
	RoomID     *int64
	StaffID    *int64
}

// Response сетка расписания
type Response struct {
	GroupBy     domain.GroupBy
	SlotMinutes int
	Days        []Day

	// Справочники для подписей бронирований
	Locations map[int64]domain.Location
	Rooms     map[int64]domain.Room
	Staff     map[int64]domain.StaffMember
}

// Day один день сетки; у закрытого дня нет слотов
type Day struct {
	Date  time.Time
	Open  bool
	Slots []domain.Interval
	Rows  []Row
}

// Row строка сетки: сущность группировки и ее бронирования по слотам
// Cells[i] - бронирования, видимые в Slots[i]
type Row struct {
	EntityID int64
	Label    string
	Bookings []*domain.Booking
	Cells    [][]*domain.Booking
}
