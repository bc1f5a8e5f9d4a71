package domain

import "time"

// Location represents a physical site that owns rooms
type Location struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Room represents a bookable room; it is the unit of conflict
type Room struct {
	ID         int64
	Name       string
	LocationID int64
	CreatedAt  time.Time
}

// StaffMember represents a therapist who can be assigned to bookings
type StaffMember struct {
	ID        int64
	Name      string
	Email     *string
	Color     *string // Opaque to the engine, used by clients for display
	Active    bool
	CreatedAt time.Time
}

// DisplayName returns the name to show for the staff member, falling back to email
func (s *StaffMember) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Email != nil {
		return *s.Email
	}
	return "Therapist"
}

// GroupBy selects the entity a schedule projection is keyed by
type GroupBy string

const (
	GroupByRoom     GroupBy = "room"
	GroupByStaff    GroupBy = "staff"
	GroupByLocation GroupBy = "location"
)

// IsValid returns true if the grouping mode is supported
func (g GroupBy) IsValid() bool {
	return g == GroupByRoom || g == GroupByStaff || g == GroupByLocation
}
