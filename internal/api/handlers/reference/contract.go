package reference

import (
	"context"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

type ReferenceService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, name string) (*domain.Location, error)
	ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error)
	CreateRoom(ctx context.Context, name string, locationID int64) (*domain.Room, error)
	ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error)
	UpsertStaff(ctx context.Context, member domain.StaffMember) (*domain.StaffMember, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
