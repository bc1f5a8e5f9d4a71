package reference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	referenceRepo "github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/reference"
)

const (
	keyLocations   = "locations"
	keyRoomsAll    = "rooms:all"
	keyStaffActive = "staff:active"
	keyStaffAll    = "staff:all"
)

func keyRoomsByLocation(locationID int64) string { return fmt.Sprintf("rooms:location:%d", locationID) }
func keyRoom(id int64) string                    { return fmt.Sprintf("room:%d", id) }
func keyStaff(id int64) string                   { return fmt.Sprintf("staff:%d", id) }

// Service сервис справочников с read-through кэшем
// Ошибки кэша не ломают запрос: читаем из базы и пишем предупреждение в лог
type Service struct {
	repo   Repository
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(repo Repository, cache Cache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// ListLocations возвращает все локации
func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	if s.fromCache(ctx, keyLocations, &locations) {
		return locations, nil
	}

	locations, err := s.repo.ListLocations(ctx)
	if err != nil {
		s.logger.Error("ListLocations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListLocations - repository error: %v", ErrInternal, err)
	}

	s.toCache(ctx, keyLocations, locations)
	return locations, nil
}

// CreateLocation создает локацию
func (s *Service) CreateLocation(ctx context.Context, name string) (*domain.Location, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	location, err := s.repo.CreateLocation(ctx, name)
	if err != nil {
		if errors.Is(err, referenceRepo.ErrAlreadyExists) {
			s.logger.Warn("CreateLocation: location %q already exists", name)
			return nil, fmt.Errorf("%w: location %q", ErrAlreadyExists, name)
		}
		s.logger.Error("CreateLocation: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateLocation - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, keyLocations)
	s.logger.Info("CreateLocation: created location id=%d name=%q", location.ID, location.Name)
	return location, nil
}

// ListRooms возвращает комнаты; locationID ограничивает одной локацией
func (s *Service) ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error) {
	key := keyRoomsAll
	if locationID != nil {
		key = keyRoomsByLocation(*locationID)
	}

	var rooms []domain.Room
	if s.fromCache(ctx, key, &rooms) {
		return rooms, nil
	}

	rooms, err := s.repo.ListRooms(ctx, locationID)
	if err != nil {
		s.logger.Error("ListRooms: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRooms - repository error: %v", ErrInternal, err)
	}

	s.toCache(ctx, key, rooms)
	return rooms, nil
}

// GetRoom получает комнату по ID
func (s *Service) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if s.fromCache(ctx, keyRoom(id), &room) {
		return &room, nil
	}

	found, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		if errors.Is(err, referenceRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("GetRoom: repository error for room id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetRoom - repository error: %v", ErrInternal, err)
	}

	s.toCache(ctx, keyRoom(id), found)
	return found, nil
}

// CreateRoom создает комнату в существующей локации
func (s *Service) CreateRoom(ctx context.Context, name string, locationID int64) (*domain.Room, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if locationID <= 0 {
		return nil, fmt.Errorf("%w: locationId is required", ErrInvalidInput)
	}

	if _, err := s.repo.GetLocation(ctx, locationID); err != nil {
		if errors.Is(err, referenceRepo.ErrLocationNotFound) {
			s.logger.Warn("CreateRoom: location id=%d not found", locationID)
			return nil, ErrLocationNotFound
		}
		s.logger.Error("CreateRoom: failed to get location id=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: CreateRoom - get location: %v", ErrInternal, err)
	}

	room, err := s.repo.CreateRoom(ctx, name, locationID)
	if err != nil {
		switch {
		case errors.Is(err, referenceRepo.ErrAlreadyExists):
			s.logger.Warn("CreateRoom: room %q already exists in location id=%d", name, locationID)
			return nil, fmt.Errorf("%w: room %q", ErrAlreadyExists, name)
		case errors.Is(err, referenceRepo.ErrLocationNotFound):
			return nil, ErrLocationNotFound
		}
		s.logger.Error("CreateRoom: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateRoom - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, keyRoomsAll, keyRoomsByLocation(locationID))
	s.logger.Info("CreateRoom: created room id=%d name=%q location=%d", room.ID, room.Name, room.LocationID)
	return room, nil
}

// ListStaff возвращает терапевтов; неактивные только при includeInactive
func (s *Service) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error) {
	key := keyStaffActive
	if includeInactive {
		key = keyStaffAll
	}

	var staff []domain.StaffMember
	if s.fromCache(ctx, key, &staff) {
		return staff, nil
	}

	staff, err := s.repo.ListStaff(ctx, includeInactive)
	if err != nil {
		s.logger.Error("ListStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListStaff - repository error: %v", ErrInternal, err)
	}

	s.toCache(ctx, key, staff)
	return staff, nil
}

// GetStaff получает терапевта по ID, включая неактивных
func (s *Service) GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error) {
	var member domain.StaffMember
	if s.fromCache(ctx, keyStaff(id), &member) {
		return &member, nil
	}

	found, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		if errors.Is(err, referenceRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaff: repository error for staff id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetStaff - repository error: %v", ErrInternal, err)
	}

	s.toCache(ctx, keyStaff(id), found)
	return found, nil
}

// UpsertStaff создает терапевта или обновляет существующего по email
func (s *Service) UpsertStaff(ctx context.Context, member domain.StaffMember) (*domain.StaffMember, error) {
	name, err := normalizeName(member.Name)
	if err != nil {
		return nil, err
	}
	member.Name = name
	member.Email = normalizeOptional(member.Email)
	member.Color = normalizeOptional(member.Color)
	if member.Email != nil {
		lowered := strings.ToLower(*member.Email)
		member.Email = &lowered
	}

	saved, err := s.repo.UpsertStaff(ctx, member)
	if err != nil {
		s.logger.Error("UpsertStaff: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertStaff - repository error: %v", ErrInternal, err)
	}

	s.invalidate(ctx, keyStaffActive, keyStaffAll, keyStaff(saved.ID))
	s.logger.Info("UpsertStaff: saved staff id=%d name=%q active=%t", saved.ID, saved.Name, saved.Active)
	return saved, nil
}

func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("reference cache: get %s: %v", key, err)
		return false
	}
	return found
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.Warn("reference cache: set %s: %v", key, err)
	}
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("reference cache: delete %v: %v", keys, err)
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return name, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
