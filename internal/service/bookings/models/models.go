package models

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Request модели

// ListRequest фильтр списка и выгрузки бронирований
// From и To - даты включительно, задаются вместе
type ListRequest struct {
	From       *time.Time
	To         *time.Time
	LocationID *int64
	RoomID     *int64
	StaffID    *int64
}

// Response модели

// BookingResponse бронирование с подписями справочников
type BookingResponse struct {
	ID              int64   `json:"id"`
	RoomID          int64   `json:"roomId"`
	RoomName        string  `json:"roomName"`
	LocationID      int64   `json:"locationId,omitempty"`
	LocationName    string  `json:"locationName,omitempty"`
	StaffID         int64   `json:"staffId"`
	StaffName       string  `json:"staffName"`
	StaffColor      *string `json:"staffColor,omitempty"`
	Start           string  `json:"start"` // RFC3339 в часовом поясе сервиса
	End             string  `json:"end"`
	DurationMinutes int     `json:"durationMinutes"`
	Notes           *string `json:"notes,omitempty"`
	SeriesID        *string `json:"seriesId,omitempty"`
	Recurrence      *string `json:"recurrence,omitempty"`
	RecurrenceUntil *string `json:"recurrenceUntil,omitempty"` // "2024-03-25"
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// DeleteSeriesResponse итог удаления серии
type DeleteSeriesResponse struct {
	SeriesID string `json:"seriesId"`
	Deleted  int64  `json:"deleted"`
}

// Labels справочники для подписей; отсутствующие ключи дают пустые подписи
type Labels struct {
	Locations map[int64]domain.Location
	Rooms     map[int64]domain.Room
	Staff     map[int64]domain.StaffMember
}

// FromDomainBooking конвертирует бронирование в ответ, время - в loc
func FromDomainBooking(b *domain.Booking, labels Labels, loc *time.Location) BookingResponse {
	resp := BookingResponse{
		ID:              b.ID,
		RoomID:          b.RoomID,
		StaffID:         b.StaffID,
		Start:           b.Start.In(loc).Format(time.RFC3339),
		End:             b.End.In(loc).Format(time.RFC3339),
		DurationMinutes: b.DurationMinutes(),
		Notes:           b.Notes,
		SeriesID:        b.SeriesID,
	}

	if room, ok := labels.Rooms[b.RoomID]; ok {
		resp.RoomName = room.Name
		resp.LocationID = room.LocationID
		if location, ok := labels.Locations[room.LocationID]; ok {
			resp.LocationName = location.Name
		}
	}
	if member, ok := labels.Staff[b.StaffID]; ok {
		resp.StaffName = member.DisplayName()
		resp.StaffColor = member.Color
	}

	if b.RecurrenceCadence != nil {
		cadence := string(*b.RecurrenceCadence)
		resp.Recurrence = &cadence
	}
	if b.RecurrenceUntil != nil {
		until := b.RecurrenceUntil.In(loc).Format(domain.DateFormat)
		resp.RecurrenceUntil = &until
	}

	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking, labels Labels, loc *time.Location) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b, labels, loc))
	}
	return &BookingListResponse{Bookings: result, Total: len(result)}
}
