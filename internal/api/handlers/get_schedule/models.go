package get_schedule

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
	getSchedule "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_schedule"
)

// ScheduleResponse HTTP response model
type ScheduleResponse struct {
	GroupBy     string        `json:"groupBy"`
	SlotMinutes int           `json:"slotMinutes"`
	Days        []DayResponse `json:"days"`
}

// DayResponse один день сетки
type DayResponse struct {
	Date  string         `json:"date"` // "2024-03-04"
	Open  bool           `json:"open"`
	Slots []SlotResponse `json:"slots"`
	Rows  []RowResponse  `json:"rows"`
}

// SlotResponse ячейка времени
type SlotResponse struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`
}

// RowResponse строка сетки; Cells[i] - ID бронирований в Slots[i]
type RowResponse struct {
	EntityID int64                    `json:"entityId"`
	Label    string                   `json:"label"`
	Bookings []models.BookingResponse `json:"bookings"`
	Cells    [][]int64                `json:"cells"`
}

// ParseRequest читает параметры сетки из query; без date берется сегодняшний день
func ParseRequest(r *http.Request, loc *time.Location, now time.Time) (*getSchedule.Request, error) {
	query := r.URL.Query()

	date, err := handlers.QueryDate(query, "date", loc)
	if err != nil {
		return nil, err
	}
	if date == nil {
		y, m, d := now.In(loc).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, loc)
		date = &today
	}

	req := &getSchedule.Request{
		Date:    *date,
		GroupBy: domain.GroupBy(strings.TrimSpace(query.Get("groupBy"))),
	}

	if raw := strings.TrimSpace(query.Get("days")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("days: expected integer, got %q", raw)
		}
		req.Days = days
	}

	if req.LocationID, err = handlers.QueryInt64(query, "locationId"); err != nil {
		return nil, err
	}
	if req.RoomID, err = handlers.QueryInt64(query, "roomId"); err != nil {
		return nil, err
	}
	if req.StaffID, err = handlers.QueryInt64(query, "staffId"); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует сетку use case в HTTP response
func FromUseCaseResponse(resp *getSchedule.Response, loc *time.Location) *ScheduleResponse {
	labels := models.Labels{
		Locations: resp.Locations,
		Rooms:     resp.Rooms,
		Staff:     resp.Staff,
	}

	days := make([]DayResponse, 0, len(resp.Days))
	for _, day := range resp.Days {
		slots := make([]SlotResponse, 0, len(day.Slots))
		for _, slot := range day.Slots {
			slots = append(slots, SlotResponse{
				Start: slot.Start.In(loc).Format(domain.TimeFormat),
				End:   slot.End.In(loc).Format(domain.TimeFormat),
			})
		}

		rows := make([]RowResponse, 0, len(day.Rows))
		for _, row := range day.Rows {
			bookings := make([]models.BookingResponse, 0, len(row.Bookings))
			for _, b := range row.Bookings {
				bookings = append(bookings, models.FromDomainBooking(b, labels, loc))
			}

			cells := make([][]int64, 0, len(row.Cells))
			for _, cell := range row.Cells {
				ids := make([]int64, 0, len(cell))
				for _, b := range cell {
					ids = append(ids, b.ID)
				}
				cells = append(cells, ids)
			}

			rows = append(rows, RowResponse{
				EntityID: row.EntityID,
				Label:    row.Label,
				Bookings: bookings,
				Cells:    cells,
			})
		}

		days = append(days, DayResponse{
			Date:  day.Date.In(loc).Format(domain.DateFormat),
			Open:  day.Open,
			Slots: slots,
			Rows:  rows,
		})
	}

	return &ScheduleResponse{
		GroupBy:     string(resp.GroupBy),
		SlotMinutes: resp.SlotMinutes,
		Days:        days,
	}
}
