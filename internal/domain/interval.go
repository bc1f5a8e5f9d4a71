package domain

import "time"

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsEmpty returns true if the interval does not cover any time
func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

// Duration returns the length of the interval, zero for empty intervals
func (i Interval) Duration() time.Duration {
	if i.IsEmpty() {
		return 0
	}
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Intervals that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Clip returns the part of the interval that falls inside bounds
func (i Interval) Clip(bounds Interval) Interval {
	start := i.Start
	if bounds.Start.After(start) {
		start = bounds.Start
	}
	end := i.End
	if bounds.End.Before(end) {
		end = bounds.End
	}
	if !end.After(start) {
		return Interval{Start: start, End: start}
	}
	return Interval{Start: start, End: end}
}

// Shift moves both ends of the interval by the given number of calendar days
func (i Interval) Shift(days int) Interval {
	return Interval{
		Start: i.Start.AddDate(0, 0, days),
		End:   i.End.AddDate(0, 0, days),
	}
}
