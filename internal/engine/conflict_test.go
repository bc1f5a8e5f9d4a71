package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

func TestHasConflict_Boundaries(t *testing.T) {
	existing := []domain.Interval{span(monday, 10, 0, 11, 0)}

	tests := []struct {
		name      string
		candidate domain.Interval
		want      bool
	}{
		{"touching after", span(monday, 11, 0, 12, 0), false},
		{"touching before", span(monday, 9, 0, 10, 0), false},
		{"partial overlap", span(monday, 10, 30, 11, 30), true},
		{"identical", span(monday, 10, 0, 11, 0), true},
		{"contained", span(monday, 10, 15, 10, 45), true},
		{"containing", span(monday, 9, 0, 12, 0), true},
		{"disjoint", span(monday, 13, 0, 14, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(existing, tt.candidate))
		})
	}
}

func TestHasConflict_Symmetric(t *testing.T) {
	intervals := make([]domain.Interval, 0)
	for start := 8; start < 14; start++ {
		for length := 1; length <= 3; length++ {
			intervals = append(intervals, span(monday, start, 0, start+length, 0))
			intervals = append(intervals, span(monday, start, 30, start+length, 30))
		}
	}

	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t,
				HasConflict([]domain.Interval{a}, b),
				HasConflict([]domain.Interval{b}, a),
				"a=%v b=%v", a, b)
		}
	}
}

func TestHasConflict_EmptyExisting(t *testing.T) {
	assert.False(t, HasConflict(nil, span(monday, 10, 0, 11, 0)))
}

func TestFindConflicts(t *testing.T) {
	existing := []domain.Interval{
		span(monday, 9, 0, 10, 0),
		span(monday, 10, 0, 11, 0),
		span(monday, 11, 0, 12, 0),
		span(monday, 12, 0, 13, 0),
	}

	conflicts := FindConflicts(existing, span(monday, 10, 30, 12, 0))

	require.Len(t, conflicts, 2)
	assert.Equal(t, existing[1], conflicts[0])
	assert.Equal(t, existing[2], conflicts[1])
}

func TestConflictingBookings(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, 7, 1, span(monday, 14, 0, 15, 0)),
		booking(2, 7, 2, span(monday, 15, 0, 16, 0)),
	}

	conflicts := ConflictingBookings(existing, span(monday, 14, 0, 15, 0))

	require.Len(t, conflicts, 1)
	assert.Equal(t, int64(1), conflicts[0].ID)
}
