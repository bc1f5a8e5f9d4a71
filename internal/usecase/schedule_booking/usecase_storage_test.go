package schedule_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/cache"
	bookingRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/booking"
	referenceRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/reference"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/storagetest"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
	"github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"
)

// sqliteHarness собирает use case поверх настоящих репозиториев и транзакций
type sqliteHarness struct {
	uc        *UseCase
	bookings  *bookingRepo.Repository
	roomID    int64
	otherRoom int64
	staffID   int64
}

func newSQLiteHarness(t *testing.T) sqliteHarness {
	t.Helper()
	ctx := context.Background()
	db := storagetest.OpenSQLite(t)

	refs := referenceRepo.NewRepository(db, psqlbuilder.DriverSQLite)
	location, err := refs.CreateLocation(ctx, "Main")
	require.NoError(t, err)
	room, err := refs.CreateRoom(ctx, "R", location.ID)
	require.NoError(t, err)
	otherRoom, err := refs.CreateRoom(ctx, "S", location.ID)
	require.NoError(t, err)
	staff, err := refs.UpsertStaff(ctx, domain.StaffMember{Name: "Anna", Active: true})
	require.NoError(t, err)

	bookings := bookingRepo.NewRepository(db, psqlbuilder.DriverSQLite)
	uc := NewUseCase(
		bookings,
		referenceService.NewService(refs, cache.Noop{}, logger.Nop()),
		txmanager.NewTransactionManager(db, false),
		&recordingPublisher{},
		&countingMetrics{occurrences: map[string]int{}, results: map[string]int{}},
		logger.Nop(),
	)

	return sqliteHarness{
		uc:        uc,
		bookings:  bookings,
		roomID:    room.ID,
		otherRoom: otherRoom.ID,
		staffID:   staff.ID,
	}
}

func (h sqliteHarness) seed(t *testing.T, roomID int64, interval domain.Interval) *domain.Booking {
	t.Helper()
	b := &domain.Booking{RoomID: roomID, StaffID: h.staffID, Start: interval.Start, End: interval.End}
	require.NoError(t, h.bookings.InsertBookings(context.Background(), []*domain.Booking{b}))
	return b
}

// threeWeeksAtTwo еженедельная бронь [14:00,15:00) на три понедельника
func (h sqliteHarness) threeWeeksAtTwo(policy domain.ConflictPolicy) *Request {
	return &Request{
		RoomID:  h.roomID,
		StaffID: h.staffID,
		Start:   at(monday, 14, 0),
		End:     at(monday, 15, 0),
		Cadence: domain.CadenceWeekly,
		Until:   ptr.Ptr(monday.AddDate(0, 0, 14)),
		Policy:  policy,
	}
}

func TestExecute_SQLite_SkipPolicy(t *testing.T) {
	ctx := context.Background()
	h := newSQLiteHarness(t)
	secondMonday := monday.AddDate(0, 0, 7)

	existing := h.seed(t, h.roomID, domain.Interval{Start: at(secondMonday, 14, 0), End: at(secondMonday, 15, 0)})
	// Касание границы и другая комната конфликтом не считаются
	h.seed(t, h.roomID, domain.Interval{Start: at(monday, 13, 0), End: at(monday, 14, 0)})
	h.seed(t, h.otherRoom, domain.Interval{Start: at(monday.AddDate(0, 0, 14), 14, 0), End: at(monday.AddDate(0, 0, 14), 15, 0)})

	resp, err := h.uc.Execute(ctx, h.threeWeeksAtTwo(domain.PolicySkip))

	require.NoError(t, err)
	require.Len(t, resp.Created, 2)
	assert.Equal(t, 1, resp.Skipped)
	assert.Zero(t, resp.Replaced)
	assert.True(t, resp.Created[0].Start.Equal(at(monday, 14, 0)))
	assert.True(t, resp.Created[1].Start.Equal(at(monday.AddDate(0, 0, 14), 14, 0)))

	stored, err := h.bookings.QueryByRoom(ctx, h.roomID, nil)
	require.NoError(t, err)
	assert.Len(t, stored, 4)

	kept, err := h.bookings.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.SeriesID)
}

func TestExecute_SQLite_ReplacePolicy(t *testing.T) {
	ctx := context.Background()
	h := newSQLiteHarness(t)
	secondMonday := monday.AddDate(0, 0, 7)

	existing := h.seed(t, h.roomID, domain.Interval{Start: at(secondMonday, 14, 0), End: at(secondMonday, 15, 0)})
	otherRoom := h.seed(t, h.otherRoom, domain.Interval{Start: at(secondMonday, 14, 0), End: at(secondMonday, 15, 0)})

	resp, err := h.uc.Execute(ctx, h.threeWeeksAtTwo(domain.PolicyReplace))

	require.NoError(t, err)
	assert.Len(t, resp.Created, 3)
	assert.Zero(t, resp.Skipped)
	assert.Equal(t, 1, resp.Replaced)

	_, err = h.bookings.GetByID(ctx, existing.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	_, err = h.bookings.GetByID(ctx, otherRoom.ID)
	require.NoError(t, err, "replace never touches other rooms")

	stored, err := h.bookings.QueryByRoom(ctx, h.roomID, nil)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, b := range stored {
		require.NotNil(t, b.SeriesID)
		assert.Equal(t, *resp.SeriesID, *b.SeriesID)
	}
}
