package bookings

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
)

var monday = time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeRepo struct {
	bookings []*domain.Booking
	filters  []domain.BookingsFilter
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if len(filter.RoomIDs) > 0 && !containsID(filter.RoomIDs, b.RoomID) {
			continue
		}
		if filter.Window != nil && !b.Interval().Overlaps(*filter.Window) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeRepo) DeleteByID(_ context.Context, id int64) error {
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) DeleteBySeries(_ context.Context, seriesID string) (int64, error) {
	kept := make([]*domain.Booking, 0)
	var deleted int64
	for _, b := range r.bookings {
		if b.SeriesID != nil && *b.SeriesID == seriesID {
			deleted++
			continue
		}
		kept = append(kept, b)
	}
	r.bookings = kept
	return deleted, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeReferences struct{}

func (fakeReferences) ListLocations(context.Context) ([]domain.Location, error) {
	return []domain.Location{{ID: 1, Name: "North"}, {ID: 2, Name: "South"}}, nil
}

func (fakeReferences) ListRooms(context.Context, *int64) ([]domain.Room, error) {
	return []domain.Room{{ID: 10, Name: "Room A", LocationID: 1}, {ID: 20, Name: "Room C", LocationID: 2}}, nil
}

func (fakeReferences) ListStaff(context.Context, bool) ([]domain.StaffMember, error) {
	return []domain.StaffMember{{ID: 100, Name: "Anna", Active: true}, {ID: 101, Email: ptr.Ptr("b@example.com")}}, nil
}

type recordingPublisher struct{ events []domain.BookingEvent }

func (p *recordingPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.events = append(p.events, event)
	return nil
}

func fixture() (*Service, *fakeRepo, *recordingPublisher) {
	series := "series-1"
	repo := &fakeRepo{bookings: []*domain.Booking{
		{ID: 1, RoomID: 10, StaffID: 100, Start: at(monday, 9, 0), End: at(monday, 10, 0), SeriesID: &series,
			Notes: ptr.Ptr("line one\nline two")},
		{ID: 2, RoomID: 10, StaffID: 100, Start: at(monday.AddDate(0, 0, 7), 9, 0), End: at(monday.AddDate(0, 0, 7), 10, 0), SeriesID: &series},
		{ID: 3, RoomID: 20, StaffID: 101, Start: at(monday, 12, 0), End: at(monday, 12, 45)},
	}}
	publisher := &recordingPublisher{}
	return NewService(repo, fakeReferences{}, publisher, time.UTC, logger.Nop()), repo, publisher
}

func TestService_DeleteByIDKeepsRestOfSeries(t *testing.T) {
	svc, repo, publisher := fixture()

	require.NoError(t, svc.DeleteByID(context.Background(), 1))
	assert.Len(t, repo.bookings, 2)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventBookingDeleted, publisher.events[0].Type)
	assert.Equal(t, int64(10), publisher.events[0].RoomID)

	assert.ErrorIs(t, svc.DeleteByID(context.Background(), 1), ErrBookingNotFound)
}

func TestService_DeleteSeries(t *testing.T) {
	svc, repo, publisher := fixture()

	resp, err := svc.DeleteSeries(context.Background(), "series-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Deleted)
	assert.Len(t, repo.bookings, 1)
	assert.Equal(t, domain.EventSeriesDeleted, publisher.events[0].Type)

	_, err = svc.DeleteSeries(context.Background(), "series-1")
	assert.ErrorIs(t, err, ErrSeriesNotFound)

	_, err = svc.DeleteSeries(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListWithLabelsAndFilters(t *testing.T) {
	svc, repo, _ := fixture()

	resp, err := svc.List(context.Background(), &models.ListRequest{From: &monday, To: &monday})
	require.NoError(t, err)
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "Room A", resp.Bookings[0].RoomName)
	assert.Equal(t, "North", resp.Bookings[0].LocationName)
	assert.Equal(t, "Anna", resp.Bookings[0].StaffName)
	assert.Equal(t, "b@example.com", resp.Bookings[1].StaffName)
	assert.Equal(t, "2024-03-04T09:00:00Z", resp.Bookings[0].Start)

	resp, err = svc.List(context.Background(), &models.ListRequest{LocationID: ptr.Ptr(int64(2))})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(3), resp.Bookings[0].ID)
	assert.Equal(t, []int64{20}, repo.filters[len(repo.filters)-1].RoomIDs)

	_, err = svc.List(context.Background(), &models.ListRequest{From: &monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ExportCSV(t *testing.T) {
	svc, _, _ := fixture()
	var buf bytes.Buffer

	require.NoError(t, svc.ExportCSV(context.Background(), &models.ListRequest{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"1", "series-1", "Anna", "Room A", "North", "2024-03-04 09:00", "2024-03-04 10:00", "60", "line one line two"}, records[1])
	assert.Equal(t, "45", records[3][7])
	assert.Equal(t, "", records[3][1])
}

func TestService_GetByID(t *testing.T) {
	svc, _, _ := fixture()

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Room A", resp.RoomName)
	require.NotNil(t, resp.SeriesID)
	assert.Equal(t, "series-1", *resp.SeriesID)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
