package get_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
)

var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeBookings struct {
	bookings []*domain.Booking
	filters  []domain.BookingsFilter
}

func (f *fakeBookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filters = append(f.filters, filter)
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		if filter.Window != nil && !b.Interval().Overlaps(*filter.Window) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeReferences struct{}

func (fakeReferences) ListLocations(context.Context) ([]domain.Location, error) {
	return []domain.Location{{ID: 1, Name: "North"}, {ID: 2, Name: "South"}}, nil
}

func (fakeReferences) ListRooms(_ context.Context, locationID *int64) ([]domain.Room, error) {
	all := []domain.Room{
		{ID: 10, Name: "A", LocationID: 1},
		{ID: 11, Name: "B", LocationID: 1},
		{ID: 20, Name: "C", LocationID: 2},
	}
	rooms := make([]domain.Room, 0)
	for _, room := range all {
		if locationID == nil || room.LocationID == *locationID {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

func (fakeReferences) ListStaff(context.Context, bool) ([]domain.StaffMember, error) {
	return []domain.StaffMember{
		{ID: 100, Name: "Anna", Active: true},
		{ID: 101, Name: "Boris", Active: false},
		{ID: 102, Name: "Clara", Active: false},
	}, nil
}

func booking(id, roomID, staffID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{ID: id, RoomID: roomID, StaffID: staffID, Start: start, End: end}
}

func newUseCase(bookings ...*domain.Booking) (*UseCase, *fakeBookings) {
	repo := &fakeBookings{bookings: bookings}
	cal := engine.NewCalendar(domain.DefaultBusinessHours(), time.UTC)
	calendars := engine.NewCalendarSet(cal, nil)
	return NewUseCase(repo, fakeReferences{}, calendars, 30, logger.Nop()), repo
}

func TestExecute_RoomGridForOneDay(t *testing.T) {
	uc, repo := newUseCase(
		booking(1, 10, 100, at(monday, 9, 0), at(monday, 10, 0)),
		booking(2, 20, 100, at(monday, 9, 15), at(monday, 9, 45)),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: at(monday, 15, 0)})

	require.NoError(t, err)
	assert.Equal(t, domain.GroupByRoom, resp.GroupBy)
	require.Len(t, resp.Days, 1)
	day := resp.Days[0]
	assert.True(t, day.Date.Equal(monday))
	assert.True(t, day.Open)
	assert.Len(t, day.Slots, 22)

	require.Len(t, day.Rows, 3, "every room in scope gets a row")
	assert.Equal(t, "A", day.Rows[0].Label)
	assert.Len(t, day.Rows[0].Cells[0], 1)
	assert.Len(t, day.Rows[0].Cells[1], 1)
	assert.Empty(t, day.Rows[0].Cells[2])
	assert.Empty(t, day.Rows[1].Bookings)
	assert.Len(t, day.Rows[2].Cells[0], 1)

	require.Len(t, repo.filters, 1)
	assert.ElementsMatch(t, []int64{10, 11, 20}, repo.filters[0].RoomIDs)
	assert.True(t, repo.filters[0].Window.End.Equal(monday.AddDate(0, 0, 1)))
}

func TestExecute_ClosedSundayHasNoSlots(t *testing.T) {
	uc, _ := newUseCase()
	sunday := monday.AddDate(0, 0, 6)

	resp, err := uc.Execute(context.Background(), &Request{Date: sunday})

	require.NoError(t, err)
	day := resp.Days[0]
	assert.False(t, day.Open)
	assert.Empty(t, day.Slots)
	for _, row := range day.Rows {
		assert.Empty(t, row.Cells)
	}
}

func TestExecute_SeveralDays(t *testing.T) {
	tuesday := monday.AddDate(0, 0, 1)
	uc, _ := newUseCase(
		booking(1, 10, 100, at(monday, 9, 0), at(monday, 10, 0)),
		booking(2, 10, 100, at(tuesday, 9, 0), at(tuesday, 10, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, Days: 14, RoomID: ptr.Ptr(int64(10))})

	require.NoError(t, err)
	require.Len(t, resp.Days, 14)
	require.Len(t, resp.Days[0].Rows, 1)
	assert.Equal(t, int64(1), resp.Days[0].Rows[0].Bookings[0].ID)
	assert.Equal(t, int64(2), resp.Days[1].Rows[0].Bookings[0].ID)
	assert.Empty(t, resp.Days[2].Rows[0].Bookings)
}

func TestExecute_StaffRowsSkipIdleInactiveMembers(t *testing.T) {
	uc, _ := newUseCase(
		booking(1, 10, 101, at(monday, 9, 0), at(monday, 10, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, GroupBy: domain.GroupByStaff})

	require.NoError(t, err)
	rows := resp.Days[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Anna", rows[0].Label)
	assert.Equal(t, "Boris", rows[1].Label, "inactive staff with bookings keep their row")
	assert.Len(t, rows[1].Bookings, 1)
}

func TestExecute_LocationGrouping(t *testing.T) {
	uc, _ := newUseCase(
		booking(1, 10, 100, at(monday, 9, 0), at(monday, 10, 0)),
		booking(2, 11, 100, at(monday, 9, 0), at(monday, 10, 0)),
		booking(3, 99, 100, at(monday, 9, 0), at(monday, 10, 0)),
	)

	resp, err := uc.Execute(context.Background(), &Request{Date: monday, GroupBy: domain.GroupByLocation})

	require.NoError(t, err)
	rows := resp.Days[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].Label)
	assert.Len(t, rows[0].Bookings, 2)
	assert.Empty(t, rows[1].Bookings, "booking of an unknown room is dropped")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"missing date", &Request{}, ErrInvalidInput},
		{"too many days", &Request{Date: monday, Days: domain.MaxScheduleDays + 1}, ErrInvalidInput},
		{"negative days", &Request{Date: monday, Days: -1}, ErrInvalidInput},
		{"bad groupBy", &Request{Date: monday, GroupBy: "floor"}, ErrInvalidInput},
		{"unknown location", &Request{Date: monday, LocationID: ptr.Ptr(int64(9))}, ErrLocationNotFound},
		{"room outside location", &Request{Date: monday, LocationID: ptr.Ptr(int64(2)), RoomID: ptr.Ptr(int64(10))}, ErrRoomNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase()
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
