package bookings

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomScheduler/internal/service/bookings/models"
)

// CSVHeader колонки выгрузки
var CSVHeader = []string{"Booking ID", "Series ID", "Therapist", "Room", "Location", "Start", "End", "Minutes", "Notes"}

const csvTimeFormat = "2006-01-02 15:04"

// Service сервис для работы с сохраненными бронированиями
type Service struct {
	bookingRepo BookingRepository
	references  ReferenceService
	publisher   EventPublisher
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
// loc - часовой пояс, в котором интерпретируются даты фильтра и форматируется время
func NewService(
	bookingRepo BookingRepository,
	references ReferenceService,
	publisher EventPublisher,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo: bookingRepo,
		references:  references,
		publisher:   publisher,
		loc:         loc,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID с подписями справочников
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	labels, _, err := s.labels(ctx)
	if err != nil {
		return nil, err
	}

	response := models.FromDomainBooking(booking, labels, s.loc)
	return &response, nil
}

// DeleteByID удаляет одно вхождение; остальные вхождения серии не трогаются
func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	s.logger.Info("DeleteByID: deleting booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeleteByID: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("DeleteByID: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteByID - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeleteByID: booking id=%d deleted concurrently", id)
			return ErrBookingNotFound
		}
		s.logger.Error("DeleteByID: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteByID - repository error: %v", ErrInternal, err)
	}

	s.publish(ctx, domain.BookingEvent{
		Type:       domain.EventBookingDeleted,
		BookingIDs: []int64{id},
		SeriesID:   booking.SeriesID,
		RoomID:     booking.RoomID,
		StaffID:    booking.StaffID,
	})

	s.logger.Info("DeleteByID: successfully deleted booking id=%d", id)
	return nil
}

// DeleteSeries удаляет все вхождения серии
func (s *Service) DeleteSeries(ctx context.Context, seriesID string) (*models.DeleteSeriesResponse, error) {
	seriesID = strings.TrimSpace(seriesID)
	if seriesID == "" {
		return nil, fmt.Errorf("%w: seriesId is required", ErrInvalidInput)
	}

	s.logger.Info("DeleteSeries: deleting series=%s", seriesID)

	deleted, err := s.bookingRepo.DeleteBySeries(ctx, seriesID)
	if err != nil {
		s.logger.Error("DeleteSeries: repository error for series=%s: %v", seriesID, err)
		return nil, fmt.Errorf("%w: DeleteSeries - repository error: %v", ErrInternal, err)
	}
	if deleted == 0 {
		s.logger.Warn("DeleteSeries: series=%s not found", seriesID)
		return nil, ErrSeriesNotFound
	}

	s.publish(ctx, domain.BookingEvent{Type: domain.EventSeriesDeleted, SeriesID: &seriesID})

	s.logger.Info("DeleteSeries: successfully deleted %d bookings of series=%s", deleted, seriesID)
	return &models.DeleteSeriesResponse{SeriesID: seriesID, Deleted: deleted}, nil
}

// List возвращает бронирования по фильтру с подписями
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.BookingListResponse, error) {
	bookings, labels, err := s.load(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, labels, s.loc), nil
}

// ExportCSV пишет бронирования по фильтру в w
// Переводы строк в заметках заменяются пробелами, чтобы одна запись была одной строкой
func (s *Service) ExportCSV(ctx context.Context, req *models.ListRequest, w io.Writer) error {
	bookings, labels, err := s.load(ctx, req)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("%w: ExportCSV - write header: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		row := models.FromDomainBooking(b, labels, s.loc)
		record := []string{
			strconv.FormatInt(b.ID, 10),
			valueOrEmpty(b.SeriesID),
			row.StaffName,
			row.RoomName,
			row.LocationName,
			b.Start.In(s.loc).Format(csvTimeFormat),
			b.End.In(s.loc).Format(csvTimeFormat),
			strconv.Itoa(b.DurationMinutes()),
			flattenNotes(b.Notes),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("%w: ExportCSV - write row: %v", ErrInternal, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: ExportCSV - flush: %v", ErrInternal, err)
	}

	s.logger.Info("ExportCSV: exported %d bookings", len(bookings))
	return nil
}

// load применяет фильтр и собирает справочники для подписей
func (s *Service) load(ctx context.Context, req *models.ListRequest) ([]*domain.Booking, models.Labels, error) {
	filter, err := s.toFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, models.Labels{}, err
	}

	labels, rooms, err := s.labels(ctx)
	if err != nil {
		return nil, labels, err
	}

	// Фильтр по локации превращается в список ее комнат
	if req.LocationID != nil && req.RoomID == nil {
		for _, room := range rooms {
			if room.LocationID == *req.LocationID {
				filter.RoomIDs = append(filter.RoomIDs, room.ID)
			}
		}
		if len(filter.RoomIDs) == 0 {
			return []*domain.Booking{}, labels, nil
		}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, labels, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return bookings, labels, nil
}

// labels собирает справочники; терапевты - включая неактивных, у них остаются старые бронирования
func (s *Service) labels(ctx context.Context) (models.Labels, []domain.Room, error) {
	var labels models.Labels

	locations, err := s.references.ListLocations(ctx)
	if err != nil {
		s.logger.Error("labels: failed to list locations: %v", err)
		return labels, nil, fmt.Errorf("%w: list locations: %v", ErrInternal, err)
	}
	rooms, err := s.references.ListRooms(ctx, nil)
	if err != nil {
		s.logger.Error("labels: failed to list rooms: %v", err)
		return labels, nil, fmt.Errorf("%w: list rooms: %v", ErrInternal, err)
	}
	staff, err := s.references.ListStaff(ctx, true)
	if err != nil {
		s.logger.Error("labels: failed to list staff: %v", err)
		return labels, nil, fmt.Errorf("%w: list staff: %v", ErrInternal, err)
	}

	labels = models.Labels{
		Locations: make(map[int64]domain.Location, len(locations)),
		Rooms:     make(map[int64]domain.Room, len(rooms)),
		Staff:     make(map[int64]domain.StaffMember, len(staff)),
	}
	for _, location := range locations {
		labels.Locations[location.ID] = location
	}
	for _, room := range rooms {
		labels.Rooms[room.ID] = room
	}
	for _, member := range staff {
		labels.Staff[member.ID] = member
	}

	return labels, rooms, nil
}

func (s *Service) toFilter(req *models.ListRequest) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter
	if req == nil {
		return filter, nil
	}

	if (req.From == nil) != (req.To == nil) {
		return filter, fmt.Errorf("%w: from and to must be given together", ErrInvalidInput)
	}
	if req.From != nil {
		y, m, d := req.From.Date()
		from := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		y, m, d = req.To.Date()
		to := time.Date(y, m, d, 0, 0, 0, 0, s.loc)
		if to.Before(from) {
			return filter, fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
		}
		filter.Window = &domain.Interval{Start: from, End: to.AddDate(0, 0, 1)}
	}

	if req.RoomID != nil {
		filter.RoomIDs = []int64{*req.RoomID}
	}
	filter.StaffID = req.StaffID

	return filter, nil
}

func (s *Service) publish(ctx context.Context, event domain.BookingEvent) {
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s: %v", event.Type, err)
	}
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func flattenNotes(notes *string) string {
	if notes == nil {
		return ""
	}
	return strings.Join(strings.Fields(*notes), " ")
}
