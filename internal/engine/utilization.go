package engine

import (
	"math"
	"sort"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Utilization is booked time against open capacity for some scope
type Utilization struct {
	UsedMinutes int
	OpenMinutes int
	Pct         int
}

// NewUtilization builds the metric from raw durations.
// Pct is 0 when there is no open capacity.
func NewUtilization(used, open time.Duration) Utilization {
	u := Utilization{
		UsedMinutes: int(used / time.Minute),
		OpenMinutes: int(open / time.Minute),
	}
	if u.OpenMinutes > 0 {
		u.Pct = int(math.Round(float64(u.UsedMinutes) / float64(u.OpenMinutes) * 100))
	}
	return u
}

// Add sums two utilizations and recomputes the percentage
func (u Utilization) Add(other Utilization) Utilization {
	return NewUtilization(
		time.Duration(u.UsedMinutes+other.UsedMinutes)*time.Minute,
		time.Duration(u.OpenMinutes+other.OpenMinutes)*time.Minute,
	)
}

// Calculate aggregates utilization over all given rooms for the dates from..to (inclusive).
// Bookings of rooms outside the list are ignored.
func Calculate(cals CalendarSet, rooms []domain.Room, bookings []*domain.Booking, from, to time.Time) Utilization {
	total := Utilization{}
	for _, u := range CalculateByRoom(cals, rooms, bookings, from, to) {
		total = total.Add(u)
	}
	return total
}

// CalculateByLocation aggregates per-room utilization by the room's location
func CalculateByLocation(cals CalendarSet, rooms []domain.Room, bookings []*domain.Booking, from, to time.Time) map[int64]Utilization {
	byRoom := CalculateByRoom(cals, rooms, bookings, from, to)

	result := make(map[int64]Utilization)
	for _, room := range rooms {
		result[room.LocationID] = result[room.LocationID].Add(byRoom[room.ID])
	}
	return result
}

// CalculateByRoom returns utilization per room ID.
//
// Open capacity is every open day's span in the room's location calendar.
// Used time is each booking clipped to the open interval of every day it touches,
// so bookings outside opening hours never count. Overlapping bookings in the same
// room are not merged and both count.
func CalculateByRoom(cals CalendarSet, rooms []domain.Room, bookings []*domain.Booking, from, to time.Time) map[int64]Utilization {
	bookingsByRoom := make(map[int64][]*domain.Booking, len(rooms))
	for _, booking := range bookings {
		bookingsByRoom[booking.RoomID] = append(bookingsByRoom[booking.RoomID], booking)
	}

	result := make(map[int64]Utilization, len(rooms))
	for _, room := range rooms {
		cal := cals.ForLocation(room.LocationID)

		intervals := openIntervals(cal, from, to)

		var used, open time.Duration
		for _, interval := range intervals {
			open += interval.Duration()
		}
		for _, booking := range bookingsByRoom[room.ID] {
			used += usedWithin(intervals, booking.Interval())
		}

		result[room.ID] = NewUtilization(used, open)
	}

	return result
}

// openIntervals returns the open intervals of every open day in [from, to], ordered by start
func openIntervals(cal Calendar, from, to time.Time) []domain.Interval {
	intervals := make([]domain.Interval, 0)
	for _, day := range Days(from, to, cal.Location()) {
		if interval, ok := cal.OpenInterval(day); ok {
			intervals = append(intervals, interval)
		}
	}
	return intervals
}

// usedWithin sums the booking clipped to each open interval it touches.
// Intervals are ordered and disjoint, so only the touched run is visited.
func usedWithin(intervals []domain.Interval, booking domain.Interval) time.Duration {
	first := sort.Search(len(intervals), func(i int) bool {
		return intervals[i].End.After(booking.Start)
	})

	var used time.Duration
	for i := first; i < len(intervals) && intervals[i].Start.Before(booking.End); i++ {
		used += booking.Clip(intervals[i]).Duration()
	}
	return used
}
