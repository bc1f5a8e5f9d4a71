package domain

import (
	"fmt"
	"time"
)

// OpeningHours is the open span of a single day in whole wall-clock hours
type OpeningHours struct {
	Open  int
	Close int
}

// Validate checks that the span is a non-empty range inside one day
func (h OpeningHours) Validate() error {
	if h.Open < 0 || h.Close > 24 || h.Open >= h.Close {
		return fmt.Errorf("opening hours %d-%d: open must be before close within 0-24", h.Open, h.Close)
	}
	return nil
}

// Minutes returns the length of the open span in minutes
func (h OpeningHours) Minutes() int {
	return (h.Close - h.Open) * 60
}

// BusinessHours maps day-of-week (index = time.Weekday, 0 = Sunday) to opening hours.
// A nil entry means the day is closed.
type BusinessHours [7]*OpeningHours

// For returns the opening hours of the given weekday
func (b BusinessHours) For(day time.Weekday) (OpeningHours, bool) {
	h := b[day]
	if h == nil {
		return OpeningHours{}, false
	}
	return *h, true
}

// Validate checks every open day
func (b BusinessHours) Validate() error {
	for day, h := range b {
		if h == nil {
			continue
		}
		if err := h.Validate(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(day), err)
		}
	}
	return nil
}

// DefaultBusinessHours returns Mon-Thu 9-20, Fri-Sat 9-16, Sunday closed
func DefaultBusinessHours() BusinessHours {
	weekday := OpeningHours{Open: 9, Close: 20}
	short := OpeningHours{Open: 9, Close: 16}
	return BusinessHours{
		time.Sunday:    nil,
		time.Monday:    &weekday,
		time.Tuesday:   &weekday,
		time.Wednesday: &weekday,
		time.Thursday:  &weekday,
		time.Friday:    &short,
		time.Saturday:  &short,
	}
}
