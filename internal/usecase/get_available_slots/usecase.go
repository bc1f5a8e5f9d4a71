package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
)

// UseCase use case для получения свободных слотов комнаты на день
type UseCase struct {
	store        BookingStore
	references   ReferenceService
	calendars    engine.CalendarSet
	slotMinutes  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store BookingStore,
	references ReferenceService,
	calendars engine.CalendarSet,
	slotMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		references:   references,
		calendars:    calendars,
		slotMinutes:  slotMinutes,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
// Слот доступен, если бронирование заданной длительности с его начала не выходит
// за закрытие, не пересекается с бронированиями комнаты и начинается не в прошлом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем комнату и календарь ее локации
	room, err := uc.references.GetRoom(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, referenceService.ErrRoomNotFound) {
			uc.logger.Warn("GetAvailableSlots: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}
	cal := uc.calendars.ForLocation(room.LocationID)

	date := engine.StartOfDay(req.Date, cal.Location())
	duration := minutesOrDefault(req.DurationMinutes, uc.slotMinutes)

	resp := &Response{
		Date:            date,
		RoomID:          room.ID,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// 3. Закрытый день - пустой ответ
	open, ok := cal.OpenInterval(date)
	if !ok {
		uc.logger.Info("GetAvailableSlots: room id=%d is closed on %s", room.ID, date.Format(domain.DateFormat))
		return resp, nil
	}
	resp.Open = true

	// 4. Бронирования комнаты в часы работы
	bookings, err := uc.store.QueryByRoom(ctx, room.ID, &open)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for room id=%d: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	busy := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, b.Interval())
	}

	// 5. Отмечаем доступность каждого слота
	now := uc.timeProvider.Now()
	length := time.Duration(duration) * time.Minute
	for _, slot := range engine.SlotsFor(cal, date, uc.slotMinutes) {
		candidate := domain.Interval{Start: slot.Start, End: slot.Start.Add(length)}
		available := !candidate.End.After(open.End) &&
			!slot.Start.Before(now) &&
			!engine.HasConflict(busy, candidate)
		resp.Slots = append(resp.Slots, Slot{Interval: slot, Available: available})
	}

	uc.logger.Info("GetAvailableSlots: room=%d, date=%s, slots=%d, busy=%d",
		room.ID, date.Format(domain.DateFormat), len(resp.Slots), len(busy))

	return resp, nil
}
