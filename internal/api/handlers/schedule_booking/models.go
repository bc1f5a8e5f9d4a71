package schedule_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	scheduleBooking "github.com/m04kA/SMC-RoomScheduler/internal/usecase/schedule_booking"
)

// ScheduleBookingRequest HTTP request model
type ScheduleBookingRequest struct {
	RoomID     int64   `json:"roomId" validate:"required,gt=0"`
	StaffID    int64   `json:"staffId" validate:"required,gt=0"`
	Start      string  `json:"start" validate:"required"` // "2024-03-04T10:00" или RFC3339
	End        string  `json:"end" validate:"required"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Recurrence string  `json:"recurrence,omitempty" validate:"omitempty,oneof=none weekly biweekly"`
	Until      *string `json:"until,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OnConflict string  `json:"onConflict,omitempty" validate:"omitempty,oneof=skip replace"`
}

// CreatedBooking созданное вхождение
type CreatedBooking struct {
	ID       int64   `json:"id"`
	RoomID   int64   `json:"roomId"`
	StaffID  int64   `json:"staffId"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	SeriesID *string `json:"seriesId,omitempty"`
}

// ScheduleBookingResponse HTTP response model
type ScheduleBookingResponse struct {
	Created      []CreatedBooking `json:"created"`
	CreatedCount int              `json:"createdCount"`
	Skipped      int              `json:"skipped"`
	Replaced     int              `json:"replaced"`
	SeriesID     *string          `json:"seriesId,omitempty"`
}

// PartialFailureResponse ответ при ошибке хранилища посреди серии
type PartialFailureResponse struct {
	Error        string `json:"error"`
	CreatedCount int    `json:"createdCount"`
	Skipped      int    `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Время без зоны трактуется в часовом поясе расписания
func (r *ScheduleBookingRequest) ToUseCaseRequest(loc *time.Location) (*scheduleBooking.Request, error) {
	start, err := handlers.ParseDateTime(r.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := handlers.ParseDateTime(r.End, loc)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	req := &scheduleBooking.Request{
		RoomID:  r.RoomID,
		StaffID: r.StaffID,
		Start:   start,
		End:     end,
		Notes:   r.Notes,
		Cadence: domain.Cadence(r.Recurrence),
		Policy:  domain.ConflictPolicy(r.OnConflict),
	}

	if r.Until != nil && strings.TrimSpace(*r.Until) != "" {
		until, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(*r.Until), loc)
		if err != nil {
			return nil, fmt.Errorf("until: %w", err)
		}
		req.Until = &until
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *scheduleBooking.Response, loc *time.Location) *ScheduleBookingResponse {
	created := make([]CreatedBooking, 0, len(resp.Created))
	for _, b := range resp.Created {
		created = append(created, CreatedBooking{
			ID:       b.ID,
			RoomID:   b.RoomID,
			StaffID:  b.StaffID,
			Start:    b.Start.In(loc).Format(time.RFC3339),
			End:      b.End.In(loc).Format(time.RFC3339),
			SeriesID: b.SeriesID,
		})
	}

	return &ScheduleBookingResponse{
		Created:      created,
		CreatedCount: len(created),
		Skipped:      resp.Skipped,
		Replaced:     resp.Replaced,
		SeriesID:     resp.SeriesID,
	}
}
