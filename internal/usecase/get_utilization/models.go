package get_utilization

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
)

// Request модель запроса загрузки за период
type Request struct {
	From       time.Time // Первая дата включительно
	To         time.Time // Последняя дата включительно
	LocationID *int64
	RoomID     *int64
}

// Response загрузка в целом и в разрезе комнат и локаций
type Response struct {
	From      time.Time
	To        time.Time
	Total     engine.Utilization
	Rooms     []RoomUtilization
	Locations []LocationUtilization
}

// RoomUtilization загрузка одной комнаты
type RoomUtilization struct {
	Room        domain.Room
	Utilization engine.Utilization
}

// LocationUtilization загрузка локации; Name пуст, если локация не найдена в справочнике
type LocationUtilization struct {
	LocationID  int64
	Name        string
	Utilization engine.Utilization
}
