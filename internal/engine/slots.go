package engine

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// SlotsFor returns the contiguous display slots covering the date's opening hours.
// Closed days produce an empty slice. A slot that would end after closing is not emitted.
func SlotsFor(cal Calendar, date time.Time, slotMinutes int) []domain.Interval {
	if slotMinutes <= 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	open, ok := cal.OpenInterval(date)
	if !ok {
		return []domain.Interval{}
	}

	step := time.Duration(slotMinutes) * time.Minute
	slots := make([]domain.Interval, 0, int(open.Duration()/step))

	for current := open.Start; current.Before(open.End); current = current.Add(step) {
		slotEnd := current.Add(step)
		if slotEnd.After(open.End) {
			break
		}
		slots = append(slots, domain.Interval{Start: current, End: slotEnd})
	}

	return slots
}
