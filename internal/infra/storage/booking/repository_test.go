package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/reference"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
	"github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"
)

var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo   *Repository
	tx     *txmanager.Manager
	roomA  int64
	roomB  int64
	staff  int64
	staff2 int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := storagetest.OpenSQLite(t)

	refs := reference.NewRepository(db, psqlbuilder.DriverSQLite)
	location, err := refs.CreateLocation(ctx, "Main")
	require.NoError(t, err)
	roomA, err := refs.CreateRoom(ctx, "A", location.ID)
	require.NoError(t, err)
	roomB, err := refs.CreateRoom(ctx, "B", location.ID)
	require.NoError(t, err)
	staff, err := refs.UpsertStaff(ctx, domain.StaffMember{Name: "Anna", Active: true})
	require.NoError(t, err)
	staff2, err := refs.UpsertStaff(ctx, domain.StaffMember{Name: "Boris", Active: true})
	require.NoError(t, err)

	return fixture{
		repo:   NewRepository(db, psqlbuilder.DriverSQLite),
		tx:     txmanager.NewTransactionManager(db, false),
		roomA:  roomA.ID,
		roomB:  roomB.ID,
		staff:  staff.ID,
		staff2: staff2.ID,
	}
}

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (f fixture) booking(roomID, staffID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{RoomID: roomID, StaffID: staffID, Start: start, End: end}
}

func TestRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	cadence := domain.CadenceWeekly
	until := monday.AddDate(0, 0, 21)
	b := f.booking(f.roomA, f.staff, at(monday, 10, 0), at(monday, 11, 0))
	b.Notes = ptr.Ptr("first visit")
	b.SeriesID = ptr.Ptr("series-1")
	b.RecurrenceCadence = &cadence
	b.RecurrenceUntil = &until

	require.NoError(t, f.repo.InsertBookings(ctx, []*domain.Booking{b}))
	require.NotZero(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())

	got, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(b.Start))
	assert.True(t, got.End.Equal(b.End))
	assert.Equal(t, "first visit", ptr.Value(got.Notes))
	assert.Equal(t, "series-1", ptr.Value(got.SeriesID))
	require.NotNil(t, got.RecurrenceCadence)
	assert.Equal(t, domain.CadenceWeekly, *got.RecurrenceCadence)
	require.NotNil(t, got.RecurrenceUntil)
	assert.True(t, got.RecurrenceUntil.Equal(until))

	_, err = f.repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_QueryByRoomUsesHalfOpenWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.repo.InsertBookings(ctx, []*domain.Booking{
		f.booking(f.roomA, f.staff, at(monday, 9, 0), at(monday, 10, 0)),
		f.booking(f.roomA, f.staff, at(monday, 10, 30), at(monday, 11, 30)),
		f.booking(f.roomB, f.staff2, at(monday, 10, 0), at(monday, 11, 0)),
	}))

	window := domain.Interval{Start: at(monday, 10, 0), End: at(monday, 11, 0)}
	got, err := f.repo.QueryByRoom(ctx, f.roomA, &window)
	require.NoError(t, err)
	require.Len(t, got, 1, "the 9-10 booking only touches the window")
	assert.True(t, got[0].Start.Equal(at(monday, 10, 30)))

	all, err := f.repo.QueryByRoom(ctx, f.roomA, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	series := "series-x"
	first := f.booking(f.roomA, f.staff, at(monday, 9, 0), at(monday, 10, 0))
	first.SeriesID = &series
	second := f.booking(f.roomA, f.staff, at(monday.AddDate(0, 0, 7), 9, 0), at(monday.AddDate(0, 0, 7), 10, 0))
	second.SeriesID = &series
	other := f.booking(f.roomB, f.staff2, at(monday, 12, 0), at(monday, 13, 0))
	require.NoError(t, f.repo.InsertBookings(ctx, []*domain.Booking{second, other, first}))

	all, err := f.repo.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID, "ordered by start")

	byStaff, err := f.repo.List(ctx, domain.BookingsFilter{StaffID: &f.staff2})
	require.NoError(t, err)
	require.Len(t, byStaff, 1)
	assert.Equal(t, other.ID, byStaff[0].ID)

	bySeries, err := f.repo.List(ctx, domain.BookingsFilter{SeriesID: &series})
	require.NoError(t, err)
	assert.Len(t, bySeries, 2)

	week := domain.Interval{Start: monday, End: monday.AddDate(0, 0, 7)}
	thisWeek, err := f.repo.List(ctx, domain.BookingsFilter{RoomIDs: []int64{f.roomA, f.roomB}, Window: &week})
	require.NoError(t, err)
	assert.Len(t, thisWeek, 2)
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	series := "series-y"
	a := f.booking(f.roomA, f.staff, at(monday, 9, 0), at(monday, 10, 0))
	a.SeriesID = &series
	b := f.booking(f.roomA, f.staff, at(monday, 11, 0), at(monday, 12, 0))
	b.SeriesID = &series
	c := f.booking(f.roomB, f.staff, at(monday, 9, 0), at(monday, 10, 0))
	d := f.booking(f.roomB, f.staff, at(monday, 11, 0), at(monday, 12, 0))
	require.NoError(t, f.repo.InsertBookings(ctx, []*domain.Booking{a, b, c, d}))

	deleted, err := f.repo.DeleteBySeries(ctx, series)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	require.NoError(t, f.repo.DeleteByID(ctx, c.ID))
	assert.ErrorIs(t, f.repo.DeleteByID(ctx, c.ID), ErrBookingNotFound)

	deleted, err = f.repo.DeleteByIDs(ctx, []int64{d.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = f.repo.DeleteByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRepository_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	boom := assert.AnError
	err := f.tx.Do(ctx, func(ctx context.Context) error {
		if err := f.repo.InsertBookings(ctx, []*domain.Booking{
			f.booking(f.roomA, f.staff, at(monday, 9, 0), at(monday, 10, 0)),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := f.repo.List(ctx, domain.BookingsFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
