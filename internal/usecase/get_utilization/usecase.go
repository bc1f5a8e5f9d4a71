package get_utilization

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
)

// UseCase use case расчета загрузки комнат
type UseCase struct {
	bookingRepo BookingRepository
	references  ReferenceService
	calendars   engine.CalendarSet
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	references ReferenceService,
	calendars engine.CalendarSet,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		references:  references,
		calendars:   calendars,
		logger:      logger,
	}
}

// Execute считает загрузку комнат области запроса за даты From..To включительно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetUtilization: validation failed: %v", err)
		return nil, err
	}

	loc := uc.calendars.Default().Location()
	from := engine.StartOfDay(req.From, loc)
	to := engine.StartOfDay(req.To, loc)

	uc.logger.Info("GetUtilization: from=%s, to=%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 2. Комнаты в области запроса
	rooms, err := uc.references.ListRooms(ctx, req.LocationID)
	if err != nil {
		uc.logger.Error("GetUtilization: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}
	if req.RoomID != nil {
		filtered := make([]domain.Room, 0, 1)
		for _, room := range rooms {
			if room.ID == *req.RoomID {
				filtered = append(filtered, room)
			}
		}
		if len(filtered) == 0 {
			uc.logger.Warn("GetUtilization: room id=%d not found in scope", *req.RoomID)
			return nil, ErrRoomNotFound
		}
		rooms = filtered
	}

	response := &Response{
		From:      from,
		To:        to,
		Rooms:     make([]RoomUtilization, 0, len(rooms)),
		Locations: make([]LocationUtilization, 0),
	}
	if len(rooms) == 0 {
		return response, nil
	}

	// 3. Бронирования периода
	roomIDs := make([]int64, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}
	window := domain.Interval{Start: from, End: to.AddDate(0, 0, 1)}
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{RoomIDs: roomIDs, Window: &window})
	if err != nil {
		uc.logger.Error("GetUtilization: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 4. Расчет
	byRoom := engine.CalculateByRoom(uc.calendars, rooms, bookings, from, to)
	for _, room := range rooms {
		u := byRoom[room.ID]
		response.Rooms = append(response.Rooms, RoomUtilization{Room: room, Utilization: u})
		response.Total = response.Total.Add(u)
	}

	locations, err := uc.references.ListLocations(ctx)
	if err != nil {
		uc.logger.Error("GetUtilization: failed to list locations: %v", err)
		return nil, fmt.Errorf("%w: failed to list locations: %v", ErrInternal, err)
	}
	names := make(map[int64]string, len(locations))
	for _, location := range locations {
		names[location.ID] = location.Name
	}

	byLocation := engine.CalculateByLocation(uc.calendars, rooms, bookings, from, to)
	seen := make(map[int64]bool, len(byLocation))
	for _, room := range rooms {
		if seen[room.LocationID] {
			continue
		}
		seen[room.LocationID] = true
		response.Locations = append(response.Locations, LocationUtilization{
			LocationID:  room.LocationID,
			Name:        names[room.LocationID],
			Utilization: byLocation[room.LocationID],
		})
	}

	uc.logger.Info("GetUtilization: used=%d, open=%d, pct=%d",
		response.Total.UsedMinutes, response.Total.OpenMinutes, response.Total.Pct)

	return response, nil
}
