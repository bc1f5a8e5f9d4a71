package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

func TestExpand_None(t *testing.T) {
	first := span(monday, 10, 0, 11, 0)

	occurrences, err := Expand(first, domain.CadenceNone, nil)

	require.NoError(t, err)
	assert.Equal(t, []domain.Interval{first}, occurrences)
}

func TestExpand_WeeklyUntilThirdMonday(t *testing.T) {
	first := span(monday, 10, 0, 11, 0)
	until := monday.AddDate(0, 0, 21)

	occurrences, err := Expand(first, domain.CadenceWeekly, &until)

	require.NoError(t, err)
	require.Len(t, occurrences, 4)
	for k, occurrence := range occurrences {
		assert.Equal(t, first.Start.AddDate(0, 0, 7*k), occurrence.Start)
		assert.Equal(t, time.Hour, occurrence.Duration())
		assert.Equal(t, time.Monday, occurrence.Start.Weekday())
	}
}

func TestExpand_Biweekly(t *testing.T) {
	first := span(monday, 10, 0, 11, 0)
	until := monday.AddDate(0, 0, 30)

	occurrences, err := Expand(first, domain.CadenceBiweekly, &until)

	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, monday.AddDate(0, 0, 28).Add(10*time.Hour), occurrences[2].Start)
}

func TestExpand_UntilIsInclusiveThroughEndOfDay(t *testing.T) {
	first := span(monday, 18, 0, 19, 0)
	// until carries only a date; the evening occurrence on that date still counts
	until := monday.AddDate(0, 0, 7)

	occurrences, err := Expand(first, domain.CadenceWeekly, &until)

	require.NoError(t, err)
	assert.Len(t, occurrences, 2)
}

func TestExpand_UntilSameDayAsFirst(t *testing.T) {
	first := span(monday, 10, 0, 11, 0)
	until := monday

	occurrences, err := Expand(first, domain.CadenceWeekly, &until)

	require.NoError(t, err)
	assert.Len(t, occurrences, 1)
}

func TestExpand_Errors(t *testing.T) {
	first := span(monday, 10, 0, 11, 0)
	before := monday.AddDate(0, 0, -1)
	farAway := monday.AddDate(10, 0, 0)

	tests := []struct {
		name    string
		first   domain.Interval
		cadence domain.Cadence
		until   *time.Time
	}{
		{"until before first occurrence", first, domain.CadenceWeekly, &before},
		{"missing until", first, domain.CadenceBiweekly, nil},
		{"unknown cadence", first, domain.Cadence("monthly"), &farAway},
		{"empty interval", span(monday, 10, 0, 10, 0), domain.CadenceNone, nil},
		{"too many occurrences", first, domain.CadenceWeekly, &farAway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occurrences, err := Expand(tt.first, tt.cadence, tt.until)

			assert.ErrorIs(t, err, ErrInvalidRecurrence)
			assert.Nil(t, occurrences)
		})
	}
}

func TestExpand_StrictlyIncreasing(t *testing.T) {
	first := span(monday, 10, 0, 11, 30)
	until := monday.AddDate(0, 6, 0)

	occurrences, err := Expand(first, domain.CadenceWeekly, &until)

	require.NoError(t, err)
	for i := 1; i < len(occurrences); i++ {
		assert.True(t, occurrences[i-1].Start.Before(occurrences[i].Start))
		assert.Equal(t, first.Duration(), occurrences[i].Duration())
	}
}
