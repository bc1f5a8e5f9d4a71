package get_utilization

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	getUtilization "github.com/m04kA/SMC-RoomScheduler/internal/usecase/get_utilization"
)

// defaultPeriodDays длина периода, если to не указан
const defaultPeriodDays = 7

// UtilizationDTO загрузка в минутах и процентах
type UtilizationDTO struct {
	UsedMinutes int `json:"usedMinutes"`
	OpenMinutes int `json:"openMinutes"`
	Percent     int `json:"percent"`
}

// RoomUtilizationResponse загрузка комнаты
type RoomUtilizationResponse struct {
	RoomID     int64  `json:"roomId"`
	RoomName   string `json:"roomName"`
	LocationID int64  `json:"locationId"`
	UtilizationDTO
}

// LocationUtilizationResponse загрузка локации
type LocationUtilizationResponse struct {
	LocationID   int64  `json:"locationId"`
	LocationName string `json:"locationName"`
	UtilizationDTO
}

// UtilizationResponse HTTP response model
type UtilizationResponse struct {
	From      string                        `json:"from"`
	To        string                        `json:"to"`
	Total     UtilizationDTO                `json:"total"`
	Rooms     []RoomUtilizationResponse     `json:"rooms"`
	Locations []LocationUtilizationResponse `json:"locations"`
}

// ParseRequest читает период и фильтры; по умолчанию неделя, начиная с сегодняшнего дня
func ParseRequest(r *http.Request, loc *time.Location, now time.Time) (*getUtilization.Request, error) {
	query := r.URL.Query()

	from, err := handlers.QueryDate(query, "from", loc)
	if err != nil {
		return nil, err
	}
	if from == nil {
		y, m, d := now.In(loc).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, loc)
		from = &today
	}

	to, err := handlers.QueryDate(query, "to", loc)
	if err != nil {
		return nil, err
	}
	if to == nil {
		end := from.AddDate(0, 0, defaultPeriodDays-1)
		to = &end
	}

	req := &getUtilization.Request{From: *from, To: *to}
	if req.LocationID, err = handlers.QueryInt64(query, "locationId"); err != nil {
		return nil, err
	}
	if req.RoomID, err = handlers.QueryInt64(query, "roomId"); err != nil {
		return nil, err
	}

	return req, nil
}

func toDTO(u engine.Utilization) UtilizationDTO {
	return UtilizationDTO{
		UsedMinutes: u.UsedMinutes,
		OpenMinutes: u.OpenMinutes,
		Percent:     u.Pct,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getUtilization.Response, loc *time.Location) *UtilizationResponse {
	rooms := make([]RoomUtilizationResponse, 0, len(resp.Rooms))
	for _, item := range resp.Rooms {
		rooms = append(rooms, RoomUtilizationResponse{
			RoomID:         item.Room.ID,
			RoomName:       item.Room.Name,
			LocationID:     item.Room.LocationID,
			UtilizationDTO: toDTO(item.Utilization),
		})
	}

	locations := make([]LocationUtilizationResponse, 0, len(resp.Locations))
	for _, item := range resp.Locations {
		locations = append(locations, LocationUtilizationResponse{
			LocationID:     item.LocationID,
			LocationName:   item.Name,
			UtilizationDTO: toDTO(item.Utilization),
		})
	}

	return &UtilizationResponse{
		From:      resp.From.In(loc).Format(domain.DateFormat),
		To:        resp.To.In(loc).Format(domain.DateFormat),
		Total:     toDTO(resp.Total),
		Rooms:     rooms,
		Locations: locations,
	}
}
