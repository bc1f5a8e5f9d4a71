package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomScheduler/pkg/logger"
)

type fakeService struct {
	got *models.ListRequest
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	f.got = req
	return &models.BookingListResponse{
		Bookings: []models.BookingResponse{{ID: 1, RoomID: 3, RoomName: "Blue", StaffID: 2, StaffName: "Ann"}},
		Total:    1,
	}, nil
}

func newServer(t *testing.T, svc *fakeService) *httpexpect.Expect {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/bookings", NewHandler(svc, time.UTC, logger.Nop()).Handle).Methods(http.MethodGet)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return httpexpect.Default(t, server.URL)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	e := newServer(t, svc)

	obj := e.GET("/api/v1/bookings").
		WithQuery("from", "2024-03-04").
		WithQuery("to", "2024-03-10").
		WithQuery("locationId", 5).
		Expect().
		Status(http.StatusOK).JSON().Object()

	obj.Value("total").IsEqual(1)
	obj.Value("bookings").Array().Value(0).Object().Value("roomName").IsEqual("Blue")

	require.NotNil(t, svc.got)
	require.NotNil(t, svc.got.From)
	assert.True(t, svc.got.From.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(5), *svc.got.LocationID)
	assert.Nil(t, svc.got.RoomID)
}

func TestHandle_InvalidQuery(t *testing.T) {
	svc := &fakeService{}
	e := newServer(t, svc)

	e.GET("/api/v1/bookings").WithQuery("from", "2024-03-04").Expect().Status(http.StatusBadRequest)
	e.GET("/api/v1/bookings").WithQuery("roomId", "x").Expect().Status(http.StatusBadRequest)
	e.GET("/api/v1/bookings").WithQuery("from", "04.03.2024").WithQuery("to", "2024-03-10").Expect().Status(http.StatusBadRequest)

	assert.Nil(t, svc.got)
}
