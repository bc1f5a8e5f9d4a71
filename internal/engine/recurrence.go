package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// ErrInvalidRecurrence indicates a recurring request cannot be expanded
var ErrInvalidRecurrence = errors.New("recurrence: invalid recurrence")

// Expand produces the ordered occurrences of a booking request.
//
// For CadenceNone the result is exactly the first interval. For weekly and
// biweekly cadences every occurrence is the first one shifted by k*step days,
// generated while its start falls on or before the until date (inclusive
// through the end of that day in the first occurrence's zone).
func Expand(first domain.Interval, cadence domain.Cadence, until *time.Time) ([]domain.Interval, error) {
	if first.IsEmpty() {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidRecurrence)
	}

	switch {
	case cadence == domain.CadenceNone || cadence == "":
		return []domain.Interval{first}, nil
	case !cadence.IsRecurring():
		return nil, fmt.Errorf("%w: unsupported cadence %q", ErrInvalidRecurrence, cadence)
	}

	if until == nil || until.IsZero() {
		return nil, fmt.Errorf("%w: until date is required for %s bookings", ErrInvalidRecurrence, cadence)
	}

	loc := first.Start.Location()
	y, m, d := until.Date()
	untilDay := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if untilDay.Before(StartOfDay(first.Start, loc)) {
		return nil, fmt.Errorf("%w: until %s is before the first occurrence", ErrInvalidRecurrence, untilDay.Format(domain.DateFormat))
	}
	// Граница не включается: полночь следующего за until дня
	boundary := untilDay.AddDate(0, 0, 1)

	step := cadence.StepDays()
	occurrences := make([]domain.Interval, 0)
	for k := 0; ; k++ {
		occurrence := first.Shift(k * step)
		if !occurrence.Start.Before(boundary) {
			break
		}
		if len(occurrences) == domain.MaxOccurrences {
			return nil, fmt.Errorf("%w: more than %d occurrences requested", ErrInvalidRecurrence, domain.MaxOccurrences)
		}
		occurrences = append(occurrences, occurrence)
	}

	return occurrences, nil
}
