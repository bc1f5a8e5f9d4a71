package schedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/engine"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
	"github.com/m04kA/SMC-RoomScheduler/pkg/metrics"
)

// Итоги запроса для метрик
const (
	resultOK         = "ok"
	resultRejected   = "rejected"
	resultStoreError = "store_error"
)

// UseCase use case планирования бронирований комнат
type UseCase struct {
	store       BookingStore
	references  ReferenceService
	txManager   TransactionManager
	publisher   EventPublisher
	metrics     Metrics
	logger      Logger
	newSeriesID IDGenerator
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store BookingStore,
	references ReferenceService,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:       store,
		references:  references,
		txManager:   txManager,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
		newSeriesID: uuid.NewString,
	}
}

// Execute разворачивает запрос во вхождения и сохраняет их по одному
//
// Каждое вхождение проверяется и пишется в своей транзакции, строго по порядку,
// поэтому вхождение k+1 видит вхождение k. Конфликт с политикой skip увеличивает
// Skipped, с политикой replace удаляет конфликтующие бронирования этой комнаты.
// Ошибка хранилища прерывает обработку: возвращаются уже созданные вхождения и
// ошибка ErrStore, ничего не откатывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ScheduleBooking: validation failed: %v", err)
		uc.metrics.RecordScheduling(resultRejected)
		return nil, err
	}

	uc.logger.Info("ScheduleBooking: room=%d, staff=%d, start=%s, end=%s, cadence=%s, policy=%s",
		req.RoomID, req.StaffID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), req.Cadence, req.Policy)

	// 2. Разворачиваем повторение до любых записей
	occurrences, err := engine.Expand(domain.Interval{Start: req.Start, End: req.End}, req.Cadence, req.Until)
	if err != nil {
		uc.logger.Warn("ScheduleBooking: recurrence rejected: %v", err)
		uc.metrics.RecordScheduling(resultRejected)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
	}

	// 3. Проверяем справочники
	if err := uc.checkReferences(ctx, req); err != nil {
		uc.metrics.RecordScheduling(resultRejected)
		return nil, err
	}

	// 4. Атрибуты серии
	response := &Response{Created: make([]*domain.Booking, 0, len(occurrences))}
	var (
		cadence *domain.Cadence
		until   *time.Time
	)
	if req.Cadence.IsRecurring() {
		seriesID := uc.newSeriesID()
		response.SeriesID = &seriesID
		cadence = &req.Cadence
		lastEnd := occurrences[len(occurrences)-1].End
		lastDay := engine.StartOfDay(lastEnd, lastEnd.Location())
		until = &lastDay
	}

	// 5. Обрабатываем вхождения по порядку
	for i, occurrence := range occurrences {
		outcome, replaced, booking, err := uc.scheduleOccurrence(ctx, req, occurrence, response.SeriesID, cadence, until)
		if err != nil {
			uc.logger.Error("ScheduleBooking: occurrence %d/%d at %s failed: %v",
				i+1, len(occurrences), occurrence.Start.Format(time.RFC3339), err)
			uc.metrics.RecordScheduling(resultStoreError)
			uc.publishCreated(ctx, req, response)
			return response, fmt.Errorf("%w: occurrence %d of %d: %w", ErrStore, i+1, len(occurrences), err)
		}

		uc.metrics.RecordOccurrence(outcome)
		switch outcome {
		case metrics.OutcomeSkipped:
			response.Skipped++
			uc.logger.Info("ScheduleBooking: occurrence %s skipped, room %d is busy",
				occurrence.Start.Format(time.RFC3339), req.RoomID)
		case metrics.OutcomeReplaced:
			response.Replaced += replaced
			response.Created = append(response.Created, booking)
		default:
			response.Created = append(response.Created, booking)
		}
	}

	uc.metrics.RecordScheduling(resultOK)
	uc.publishCreated(ctx, req, response)

	uc.logger.Info("ScheduleBooking: created=%d, skipped=%d, replaced=%d",
		len(response.Created), response.Skipped, response.Replaced)

	return response, nil
}

// scheduleOccurrence проверяет и записывает одно вхождение в отдельной транзакции
func (uc *UseCase) scheduleOccurrence(
	ctx context.Context,
	req *Request,
	occurrence domain.Interval,
	seriesID *string,
	cadence *domain.Cadence,
	until *time.Time,
) (string, int, *domain.Booking, error) {
	var (
		outcome  string
		replaced int
		booking  *domain.Booking
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		outcome, replaced, booking = "", 0, nil

		existing, err := uc.store.QueryByRoom(txCtx, req.RoomID, &occurrence)
		if err != nil {
			return fmt.Errorf("query room bookings: %w", err)
		}

		conflicts := engine.ConflictingBookings(existing, occurrence)
		if len(conflicts) > 0 {
			if req.Policy == domain.PolicySkip {
				outcome = metrics.OutcomeSkipped
				return nil
			}

			ids := make([]int64, len(conflicts))
			for i, conflict := range conflicts {
				ids[i] = conflict.ID
			}
			deleted, err := uc.store.DeleteByIDs(txCtx, ids)
			if err != nil {
				return fmt.Errorf("delete conflicting bookings %v: %w", ids, err)
			}
			replaced = int(deleted)
			outcome = metrics.OutcomeReplaced
		} else {
			outcome = metrics.OutcomeCreated
		}

		booking = &domain.Booking{
			RoomID:            req.RoomID,
			StaffID:           req.StaffID,
			Start:             occurrence.Start,
			End:               occurrence.End,
			Notes:             req.Notes,
			SeriesID:          seriesID,
			RecurrenceCadence: cadence,
			RecurrenceUntil:   until,
		}
		if err := uc.store.InsertBookings(txCtx, []*domain.Booking{booking}); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})

	return outcome, replaced, booking, err
}

func (uc *UseCase) checkReferences(ctx context.Context, req *Request) error {
	if _, err := uc.references.GetRoom(ctx, req.RoomID); err != nil {
		if errors.Is(err, referenceService.ErrRoomNotFound) {
			uc.logger.Warn("ScheduleBooking: room id=%d not found", req.RoomID)
			return ErrRoomNotFound
		}
		uc.logger.Error("ScheduleBooking: failed to get room id=%d: %v", req.RoomID, err)
		return fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	staff, err := uc.references.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, referenceService.ErrStaffNotFound) {
			uc.logger.Warn("ScheduleBooking: staff id=%d not found", req.StaffID)
			return ErrStaffNotFound
		}
		uc.logger.Error("ScheduleBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.Active {
		uc.logger.Warn("ScheduleBooking: staff id=%d is inactive", req.StaffID)
		return ErrStaffInactive
	}

	return nil
}

// publishCreated отправляет событие о созданных бронированиях; ошибка только логируется
func (uc *UseCase) publishCreated(ctx context.Context, req *Request, response *Response) {
	if len(response.Created) == 0 {
		return
	}

	ids := make([]int64, len(response.Created))
	for i, booking := range response.Created {
		ids[i] = booking.ID
	}

	event := domain.BookingEvent{
		Type:       domain.EventBookingCreated,
		BookingIDs: ids,
		SeriesID:   response.SeriesID,
		RoomID:     req.RoomID,
		StaffID:    req.StaffID,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("ScheduleBooking: failed to publish %s: %v", event.Type, err)
	}
}
