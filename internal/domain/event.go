package domain

import "time"

// EventType identifies a booking change published to subscribers
type EventType string

const (
	EventBookingCreated EventType = "booking.created"
	EventBookingDeleted EventType = "booking.deleted"
	EventSeriesDeleted  EventType = "series.deleted"
)

// BookingEvent describes a committed change of the schedule
type BookingEvent struct {
	Type       EventType
	BookingIDs []int64
	SeriesID   *string
	RoomID     int64 // 0 when the change spans several rooms
	StaffID    int64
	OccurredAt time.Time
}
