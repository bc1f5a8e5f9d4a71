package list_bookings

import (
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
)

// ParseListRequest читает фильтр из query: from, to, locationId, roomId, staffId
func ParseListRequest(r *http.Request, loc *time.Location) (*models.ListRequest, error) {
	query := r.URL.Query()
	req := &models.ListRequest{}

	var err error
	if req.From, err = handlers.QueryDate(query, "from", loc); err != nil {
		return nil, err
	}
	if req.To, err = handlers.QueryDate(query, "to", loc); err != nil {
		return nil, err
	}
	if (req.From == nil) != (req.To == nil) {
		return nil, fmt.Errorf("from and to must be given together")
	}
	if req.LocationID, err = handlers.QueryInt64(query, "locationId"); err != nil {
		return nil, err
	}
	if req.RoomID, err = handlers.QueryInt64(query, "roomId"); err != nil {
		return nil, err
	}
	if req.StaffID, err = handlers.QueryInt64(query, "staffId"); err != nil {
		return nil, err
	}

	return req, nil
}
