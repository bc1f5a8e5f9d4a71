package reference

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Repository интерфейс репозитория справочников
type Repository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	GetLocation(ctx context.Context, id int64) (*domain.Location, error)
	CreateLocation(ctx context.Context, name string) (*domain.Location, error)
	ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error)
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
	CreateRoom(ctx context.Context, name string, locationID int64) (*domain.Room, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error)
	GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error)
	UpsertStaff(ctx context.Context, member domain.StaffMember) (*domain.StaffMember, error)
}

// Cache интерфейс кэша справочников
// Get возвращает false, если ключа нет
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
