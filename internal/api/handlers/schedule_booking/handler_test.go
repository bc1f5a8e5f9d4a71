package schedule_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	scheduleBooking "github.com/m04kA/SMC-RoomScheduler/internal/usecase/schedule_booking"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
)

type fakeUseCase struct {
	got  *scheduleBooking.Request
	resp *scheduleBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *scheduleBooking.Request) (*scheduleBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

func newServer(t *testing.T, uc *fakeUseCase) *httpexpect.Expect {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings", NewHandler(uc, time.UTC, logger.Nop()).Handle).Methods(http.MethodPost)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return httpexpect.Default(t, server.URL)
}

func TestHandle_CreatesSeries(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &scheduleBooking.Response{
		Created: []*domain.Booking{
			{ID: 1, RoomID: 1, StaffID: 2, Start: start, End: start.Add(time.Hour), SeriesID: ptr.Ptr("s-1")},
			{ID: 2, RoomID: 1, StaffID: 2, Start: start.AddDate(0, 0, 14), End: start.AddDate(0, 0, 14).Add(time.Hour), SeriesID: ptr.Ptr("s-1")},
		},
		Skipped:  1,
		SeriesID: ptr.Ptr("s-1"),
	}}
	e := newServer(t, uc)

	obj := e.POST("/api/v1/bookings").
		WithJSON(map[string]any{
			"roomId":     1,
			"staffId":    2,
			"start":      "2024-03-04T10:00",
			"end":        "2024-03-04T11:00",
			"recurrence": "weekly",
			"until":      "2024-03-18",
		}).
		Expect().
		Status(http.StatusCreated).JSON().Object()

	obj.Value("createdCount").IsEqual(2)
	obj.Value("skipped").IsEqual(1)
	obj.Value("seriesId").IsEqual("s-1")
	obj.Value("created").Array().Value(0).Object().Value("start").IsEqual("2024-03-04T10:00:00Z")

	require.NotNil(t, uc.got)
	assert.Equal(t, domain.CadenceWeekly, uc.got.Cadence)
	assert.True(t, uc.got.Start.Equal(start))
	require.NotNil(t, uc.got.Until)
	assert.True(t, uc.got.Until.Equal(time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)))
}

func TestHandle_RequestValidation(t *testing.T) {
	uc := &fakeUseCase{}
	e := newServer(t, uc)

	e.POST("/api/v1/bookings").
		WithJSON(map[string]any{"roomId": 1, "start": "2024-03-04T10:00", "end": "2024-03-04T11:00"}).
		Expect().
		Status(http.StatusBadRequest).JSON().Object().Value("error").String().Contains("StaffID")

	e.POST("/api/v1/bookings").
		WithJSON(map[string]any{"roomId": 1, "staffId": 2, "start": "2024-03-04T10:00", "end": "2024-03-04T11:00", "recurrence": "daily"}).
		Expect().
		Status(http.StatusBadRequest)

	e.POST("/api/v1/bookings").
		WithJSON(map[string]any{"roomId": 1, "staffId": 2, "start": "tomorrow", "end": "2024-03-04T11:00"}).
		Expect().
		Status(http.StatusBadRequest)

	assert.Nil(t, uc.got)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := map[string]any{"roomId": 1, "staffId": 2, "start": "2024-03-04T10:00", "end": "2024-03-04T11:00"}

	cases := []struct {
		err    error
		status int
	}{
		{scheduleBooking.ErrInvalidInput, http.StatusBadRequest},
		{scheduleBooking.ErrInvalidRecurrence, http.StatusBadRequest},
		{scheduleBooking.ErrStaffInactive, http.StatusBadRequest},
		{scheduleBooking.ErrRoomNotFound, http.StatusNotFound},
		{scheduleBooking.ErrStaffNotFound, http.StatusNotFound},
		{scheduleBooking.ErrInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			e := newServer(t, &fakeUseCase{err: fmt.Errorf("%w: wrapped", tc.err)})
			e.POST("/api/v1/bookings").WithJSON(body).Expect().Status(tc.status)
		})
	}
}

func TestHandle_PartialStoreFailure(t *testing.T) {
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{
		resp: &scheduleBooking.Response{
			Created: []*domain.Booking{{ID: 1, RoomID: 1, StaffID: 2, Start: start, End: start.Add(time.Hour)}},
			Skipped: 1,
		},
		err: fmt.Errorf("%w: insert: connection reset", scheduleBooking.ErrStore),
	}
	e := newServer(t, uc)

	obj := e.POST("/api/v1/bookings").
		WithJSON(map[string]any{"roomId": 1, "staffId": 2, "start": "2024-03-04T10:00", "end": "2024-03-04T11:00"}).
		Expect().
		Status(http.StatusInternalServerError).JSON().Object()

	obj.Value("createdCount").IsEqual(1)
	obj.Value("skipped").IsEqual(1)
	obj.Value("error").String().NotEmpty()
}
