package get_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
)

// UseCase use case построения сетки расписания
type UseCase struct {
	bookingRepo BookingRepository
	references  ReferenceService
	calendars   engine.CalendarSet
	slotMinutes int
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	references ReferenceService,
	calendars engine.CalendarSet,
	slotMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		references:  references,
		calendars:   calendars,
		slotMinutes: slotMinutes,
		logger:      logger,
	}
}

// Execute строит сетку на req.Days дней начиная с req.Date
//
// Слоты берутся из календаря локации фильтра (или календаря по умолчанию).
// Строки - все сущности выбранной группировки в области запроса, в том числе
// без бронирований; бронирования ссылающиеся на неизвестные комнаты отбрасываются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSchedule: validation failed: %v", err)
		return nil, err
	}

	cal := uc.calendars.Default()
	if req.LocationID != nil {
		cal = uc.calendars.ForLocation(*req.LocationID)
	}
	loc := cal.Location()
	firstDay := engine.StartOfDay(req.Date, loc)
	lastDay := firstDay.AddDate(0, 0, req.Days-1)

	uc.logger.Info("GetSchedule: from=%s, days=%d, groupBy=%s",
		firstDay.Format(domain.DateFormat), req.Days, req.GroupBy)

	// 2. Справочники в области запроса
	locations, rooms, staff, err := uc.loadReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Бронирования в окне
	bookings := make([]*domain.Booking, 0)
	if len(rooms) > 0 {
		roomIDs := make([]int64, len(rooms))
		for i, room := range rooms {
			roomIDs[i] = room.ID
		}
		window := domain.Interval{Start: firstDay, End: lastDay.AddDate(0, 0, 1)}

		bookings, err = uc.bookingRepo.List(ctx, domain.BookingsFilter{
			RoomIDs: roomIDs,
			StaffID: req.StaffID,
			Window:  &window,
		})
		if err != nil {
			uc.logger.Error("GetSchedule: failed to list bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
	}

	response := &Response{
		GroupBy:     req.GroupBy,
		SlotMinutes: uc.slotMinutes,
		Days:        make([]Day, 0, req.Days),
		Locations:   indexLocations(locations),
		Rooms:       indexRooms(rooms),
		Staff:       indexStaff(staff),
	}

	// 4. Группировка и раскладка по слотам
	groups := engine.Project(bookings, req.GroupBy, rooms)
	entities := uc.rowEntities(req, locations, rooms, staff, groups)

	for _, date := range engine.Days(firstDay, lastDay, loc) {
		slots := engine.SlotsFor(cal, date, uc.slotMinutes)
		day := Day{
			Date:  date,
			Open:  cal.IsOpen(date),
			Slots: slots,
			Rows:  make([]Row, 0, len(entities)),
		}

		for _, entity := range entities {
			dayBookings := bookingsStartingOn(groups[entity.id], date)
			day.Rows = append(day.Rows, Row{
				EntityID: entity.id,
				Label:    entity.label,
				Bookings: dayBookings,
				Cells:    engine.Cells(dayBookings, date, slots),
			})
		}

		response.Days = append(response.Days, day)
	}

	return response, nil
}

func (uc *UseCase) loadReferences(ctx context.Context, req *Request) ([]domain.Location, []domain.Room, []domain.StaffMember, error) {
	locations, err := uc.references.ListLocations(ctx)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list locations: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: failed to list locations: %v", ErrInternal, err)
	}
	if req.LocationID != nil {
		filtered := make([]domain.Location, 0, 1)
		for _, location := range locations {
			if location.ID == *req.LocationID {
				filtered = append(filtered, location)
			}
		}
		if len(filtered) == 0 {
			uc.logger.Warn("GetSchedule: location id=%d not found", *req.LocationID)
			return nil, nil, nil, ErrLocationNotFound
		}
		locations = filtered
	}

	rooms, err := uc.references.ListRooms(ctx, req.LocationID)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list rooms: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}
	if req.RoomID != nil {
		filtered := make([]domain.Room, 0, 1)
		for _, room := range rooms {
			if room.ID == *req.RoomID {
				filtered = append(filtered, room)
			}
		}
		if len(filtered) == 0 {
			uc.logger.Warn("GetSchedule: room id=%d not found in scope", *req.RoomID)
			return nil, nil, nil, ErrRoomNotFound
		}
		rooms = filtered
	}

	// Неактивные нужны для подписей исторических бронирований
	staff, err := uc.references.ListStaff(ctx, true)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list staff: %v", err)
		return nil, nil, nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	return locations, rooms, staff, nil
}

type rowEntity struct {
	id    int64
	label string
}

// rowEntities возвращает строки сетки в порядке справочника
// Терапевты: активные плюс неактивные, у которых есть бронирования в окне
func (uc *UseCase) rowEntities(
	req *Request,
	locations []domain.Location,
	rooms []domain.Room,
	staff []domain.StaffMember,
	groups map[int64][]*domain.Booking,
) []rowEntity {
	entities := make([]rowEntity, 0)

	switch req.GroupBy {
	case domain.GroupByRoom:
		for _, room := range rooms {
			entities = append(entities, rowEntity{id: room.ID, label: room.Name})
		}
	case domain.GroupByLocation:
		withRooms := make(map[int64]bool, len(rooms))
		for _, room := range rooms {
			withRooms[room.LocationID] = true
		}
		for _, location := range locations {
			if withRooms[location.ID] || req.RoomID == nil {
				entities = append(entities, rowEntity{id: location.ID, label: location.Name})
			}
		}
	case domain.GroupByStaff:
		for _, member := range staff {
			if req.StaffID != nil && member.ID != *req.StaffID {
				continue
			}
			if !member.Active && len(groups[member.ID]) == 0 {
				continue
			}
			entities = append(entities, rowEntity{id: member.ID, label: member.DisplayName()})
		}
	}

	return entities
}

// bookingsStartingOn оставляет бронирования, начинающиеся в день day
func bookingsStartingOn(bookings []*domain.Booking, day time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, booking := range bookings {
		if engine.StartOfDay(booking.Start, day.Location()).Equal(day) {
			result = append(result, booking)
		}
	}
	return result
}

func indexLocations(locations []domain.Location) map[int64]domain.Location {
	index := make(map[int64]domain.Location, len(locations))
	for _, location := range locations {
		index[location.ID] = location
	}
	return index
}

func indexRooms(rooms []domain.Room) map[int64]domain.Room {
	index := make(map[int64]domain.Room, len(rooms))
	for _, room := range rooms {
		index[room.ID] = room
	}
	return index
}

func indexStaff(staff []domain.StaffMember) map[int64]domain.StaffMember {
	index := make(map[int64]domain.StaffMember, len(staff))
	for _, member := range staff {
		index[member.ID] = member
	}
	return index
}
