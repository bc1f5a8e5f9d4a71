package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
)

// 2024-03-04 - понедельник, 2024-03-10 - воскресенье
var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeStore struct {
	bookings []*domain.Booking
	window   *domain.Interval
}

func (s *fakeStore) QueryByRoom(_ context.Context, roomID int64, window *domain.Interval) ([]*domain.Booking, error) {
	s.window = window
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if b.RoomID == roomID && (window == nil || b.Interval().Overlaps(*window)) {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeReferences struct{}

func (fakeReferences) GetRoom(_ context.Context, id int64) (*domain.Room, error) {
	if id != 1 {
		return nil, referenceService.ErrRoomNotFound
	}
	return &domain.Room{ID: 1, Name: "Blue", LocationID: 1}, nil
}

func newUseCase(store *fakeStore, now time.Time) *UseCase {
	cal := engine.NewCalendar(domain.DefaultBusinessHours(), time.UTC)
	uc := NewUseCase(store, fakeReferences{}, engine.NewCalendarSet(cal, nil), 60, logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_MarksBusySlots(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		{ID: 1, RoomID: 1, Start: monday.Add(10 * time.Hour), End: monday.Add(11 * time.Hour)},
		{ID: 2, RoomID: 2, Start: monday.Add(12 * time.Hour), End: monday.Add(13 * time.Hour)},
	}}
	uc := newUseCase(store, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: monday.Add(15 * time.Hour), DurationMinutes: 90})
	require.NoError(t, err)

	assert.True(t, resp.Open)
	assert.True(t, resp.Date.Equal(monday))
	require.Len(t, resp.Slots, 11) // 9-20 по часу

	availability := make(map[int]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		availability[slot.Interval.Start.Hour()] = slot.Available
	}
	assert.False(t, availability[9], "9:00-10:30 overlaps the 10-11 booking")
	assert.False(t, availability[10])
	assert.True(t, availability[11], "touching the end of a booking is fine")
	assert.True(t, availability[12], "other rooms do not matter")
	assert.True(t, availability[18])
	assert.False(t, availability[19], "19:00-20:30 runs past closing")

	require.NotNil(t, store.window)
	assert.True(t, store.window.Start.Equal(monday.Add(9*time.Hour)))
}

func TestExecute_PastSlotsUnavailable(t *testing.T) {
	uc := newUseCase(&fakeStore{}, monday.Add(12*time.Hour+10*time.Minute))

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	for _, slot := range resp.Slots {
		assert.Equal(t, slot.Interval.Start.Hour() >= 13, slot.Available, slot.Interval.Start.String())
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newUseCase(&fakeStore{}, monday)

	resp, err := uc.Execute(context.Background(), &Request{RoomID: 1, Date: monday.AddDate(0, 0, 6)})
	require.NoError(t, err)
	assert.False(t, resp.Open)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	uc := newUseCase(&fakeStore{}, monday)

	_, err := uc.Execute(context.Background(), &Request{RoomID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = uc.Execute(context.Background(), &Request{RoomID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{RoomID: 1, Date: monday, DurationMinutes: -5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
