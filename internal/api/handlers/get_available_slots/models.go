package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	RoomID          int64          `json:"roomId"`
	Open            bool           `json:"open"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse HTTP response model для слота
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response, loc *time.Location) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.Interval.Start.In(loc).Format(domain.TimeFormat),
			EndTime:   slot.Interval.End.In(loc).Format(domain.TimeFormat),
			Available: slot.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.In(loc).Format(domain.DateFormat),
		RoomID:          resp.RoomID,
		Open:            resp.Open,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
