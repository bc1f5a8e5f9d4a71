package engine

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// monday is 2024-03-04, a Monday
var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func span(day time.Time, startHour, startMinute, endHour, endMinute int) domain.Interval {
	return domain.Interval{Start: at(day, startHour, startMinute), End: at(day, endHour, endMinute)}
}

func booking(id, roomID, staffID int64, interval domain.Interval) *domain.Booking {
	return &domain.Booking{
		ID:      id,
		RoomID:  roomID,
		StaffID: staffID,
		Start:   interval.Start,
		End:     interval.End,
	}
}

func defaultCalendars() CalendarSet {
	return NewCalendarSet(NewCalendar(domain.DefaultBusinessHours(), time.UTC), nil)
}
