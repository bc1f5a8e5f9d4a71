package get_business_hours

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
)

// BusinessHoursResponse HTTP response model
type BusinessHoursResponse struct {
	LocationID  *int64        `json:"locationId,omitempty"`
	Override    bool          `json:"override"` // true - у локации свои часы
	Timezone    string        `json:"timezone"`
	SlotMinutes int           `json:"slotMinutes"`
	Days        []DayResponse `json:"days"`
}

// DayResponse часы одного дня недели; у выходного Open и Close отсутствуют
type DayResponse struct {
	Weekday string `json:"weekday"` // "monday"
	Closed  bool   `json:"closed"`
	Open    *int   `json:"open,omitempty"`
	Close   *int   `json:"close,omitempty"`
}

// weekOrder дни недели с понедельника
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// FromCalendar конвертирует календарь в HTTP response
func FromCalendar(cal engine.Calendar, locationID *int64, override bool, slotMinutes int) *BusinessHoursResponse {
	hours := cal.Hours()
	days := make([]DayResponse, 0, len(weekOrder))
	for _, weekday := range weekOrder {
		day := DayResponse{Weekday: strings.ToLower(weekday.String())}
		if h, ok := hours.For(weekday); ok {
			open, closeAt := h.Open, h.Close
			day.Open = &open
			day.Close = &closeAt
		} else {
			day.Closed = true
		}
		days = append(days, day)
	}

	return &BusinessHoursResponse{
		LocationID:  locationID,
		Override:    override,
		Timezone:    cal.Location().String(),
		SlotMinutes: slotMinutes,
		Days:        days,
	}
}
