package engine

import "github.com/m04kA/SMC-RoomScheduler/internal/domain"

// HasConflict reports whether candidate strictly overlaps any of the existing intervals.
// Callers pass only intervals of the candidate's room.
func HasConflict(existing []domain.Interval, candidate domain.Interval) bool {
	for _, interval := range existing {
		if overlaps(interval, candidate) {
			return true
		}
	}
	return false
}

// FindConflicts returns the existing intervals that overlap candidate, in input order
func FindConflicts(existing []domain.Interval, candidate domain.Interval) []domain.Interval {
	conflicts := make([]domain.Interval, 0)
	for _, interval := range existing {
		if overlaps(interval, candidate) {
			conflicts = append(conflicts, interval)
		}
	}
	return conflicts
}

// ConflictingBookings returns the bookings whose interval overlaps candidate
func ConflictingBookings(existing []*domain.Booking, candidate domain.Interval) []*domain.Booking {
	conflicts := make([]*domain.Booking, 0)
	for _, booking := range existing {
		if overlaps(booking.Interval(), candidate) {
			conflicts = append(conflicts, booking)
		}
	}
	return conflicts
}

// overlaps: [s1,e1) и [s2,e2) пересекаются только если s1 < e2 И s2 < e1.
// Бронирования, которые граничат (e1 == s2), НЕ конфликтуют.
func overlaps(a, b domain.Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
