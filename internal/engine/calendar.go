// Package engine holds the pure scheduling rules: opening hours, overlap
// detection, recurrence expansion, the slot grid, utilization and grouping.
// Nothing here touches storage or blocks.
package engine

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Calendar answers opening-hours questions for one hours table in one wall-clock zone
type Calendar struct {
	hours domain.BusinessHours
	loc   *time.Location
}

// NewCalendar создает календарь; nil location означает UTC
func NewCalendar(hours domain.BusinessHours, loc *time.Location) Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{hours: hours, loc: loc}
}

// Location returns the wall-clock zone the calendar interprets dates in
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// Hours returns the weekly table the calendar was built from
func (c Calendar) Hours() domain.BusinessHours {
	return c.hours
}

// HoursFor returns the opening hours of the date's weekday, false when closed
func (c Calendar) HoursFor(date time.Time) (domain.OpeningHours, bool) {
	return c.hours.For(date.In(c.Location()).Weekday())
}

// IsOpen returns true if the date has opening hours
func (c Calendar) IsOpen(date time.Time) bool {
	_, ok := c.HoursFor(date)
	return ok
}

// OpenInterval returns the opening and closing instants of the date
func (c Calendar) OpenInterval(date time.Time) (domain.Interval, bool) {
	hours, ok := c.HoursFor(date)
	if !ok {
		return domain.Interval{}, false
	}
	day := StartOfDay(date, c.Location())
	return domain.Interval{
		Start: day.Add(time.Duration(hours.Open) * time.Hour),
		End:   day.Add(time.Duration(hours.Close) * time.Hour),
	}, true
}

// IsOpenAt returns true if the instant falls inside the day's open interval
func (c Calendar) IsOpenAt(t time.Time) bool {
	open, ok := c.OpenInterval(t)
	if !ok {
		return false
	}
	return !t.Before(open.Start) && t.Before(open.End)
}

// CalendarSet holds the default calendar and per-location overrides
type CalendarSet struct {
	def       Calendar
	overrides map[int64]Calendar
}

// NewCalendarSet создает набор календарей с переопределениями по локациям
func NewCalendarSet(def Calendar, overrides map[int64]Calendar) CalendarSet {
	return CalendarSet{def: def, overrides: overrides}
}

// Default returns the calendar used by locations without an override
func (s CalendarSet) Default() Calendar {
	return s.def
}

// ForLocation returns the calendar of the location
func (s CalendarSet) ForLocation(locationID int64) Calendar {
	if cal, ok := s.overrides[locationID]; ok {
		return cal
	}
	return s.def
}

// HasOverride reports whether the location has its own hours table
func (s CalendarSet) HasOverride(locationID int64) bool {
	_, ok := s.overrides[locationID]
	return ok
}

// StartOfDay returns midnight of the date in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Days returns every midnight from `from` to `to`, both dates inclusive
func Days(from, to time.Time, loc *time.Location) []time.Time {
	first := StartOfDay(from, loc)
	last := StartOfDay(to, loc)
	days := make([]time.Time, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}
