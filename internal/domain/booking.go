package domain

import "time"

// Cadence represents how a booking request repeats
type Cadence string

const (
	CadenceNone     Cadence = "none"
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
)

// StepDays returns the distance in days between two occurrences
func (c Cadence) StepDays() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	default:
		return 0
	}
}

// IsRecurring returns true if the cadence produces more than one occurrence
func (c Cadence) IsRecurring() bool {
	return c == CadenceWeekly || c == CadenceBiweekly
}

// IsValid returns true if the cadence is one of the supported values
func (c Cadence) IsValid() bool {
	return c == CadenceNone || c.IsRecurring()
}

// ConflictPolicy decides what happens to an occurrence that overlaps an existing booking
type ConflictPolicy string

const (
	PolicySkip    ConflictPolicy = "skip"
	PolicyReplace ConflictPolicy = "replace"
)

// IsValid returns true if the policy is one of the supported values
func (p ConflictPolicy) IsValid() bool {
	return p == PolicySkip || p == PolicyReplace
}

// Booking represents one concrete occurrence of a room booked by a staff member.
// Occurrences of a recurring request are independent rows linked only by SeriesID.
type Booking struct {
	ID       int64
	RoomID   int64
	StaffID  int64
	Start    time.Time
	End      time.Time
	Notes    *string
	SeriesID *string

	// Recorded for display/audit only, never used to compute anything
	RecurrenceCadence *Cadence
	RecurrenceUntil   *time.Time

	CreatedAt time.Time
}

// Interval returns the half-open time interval occupied by the booking
func (b *Booking) Interval() Interval {
	return Interval{Start: b.Start, End: b.End}
}

// IsPartOfSeries returns true if the booking was created by a recurring request
func (b *Booking) IsPartOfSeries() bool {
	return b.SeriesID != nil && *b.SeriesID != ""
}

// DurationMinutes returns the booked time in whole minutes
func (b *Booking) DurationMinutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	RoomIDs  []int64   // Пустой список - все комнаты
	StaffID  *int64    // Фильтр по терапевту (опционально)
	SeriesID *string   // Фильтр по серии (опционально)
	Window   *Interval // Бронирования, пересекающиеся с окном (опционально)
}
