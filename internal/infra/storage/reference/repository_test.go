package reference

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/ptr"
)

func newTestRepository(t *testing.T) *Repository {
	return NewRepository(storagetest.OpenSQLite(t), psqlbuilder.DriverSQLite)
}

func TestRepository_LocationsAndRooms(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	north, err := repo.CreateLocation(ctx, "North")
	require.NoError(t, err)
	south, err := repo.CreateLocation(ctx, "South")
	require.NoError(t, err)

	_, err = repo.CreateLocation(ctx, "North")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	locations, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "North", locations[0].Name)

	got, err := repo.GetLocation(ctx, south.ID)
	require.NoError(t, err)
	assert.Equal(t, "South", got.Name)

	_, err = repo.GetLocation(ctx, 999)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	roomA, err := repo.CreateRoom(ctx, "Room A", north.ID)
	require.NoError(t, err)
	_, err = repo.CreateRoom(ctx, "Room B", south.ID)
	require.NoError(t, err)

	_, err = repo.CreateRoom(ctx, "Room A", north.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = repo.CreateRoom(ctx, "Room C", 999)
	assert.ErrorIs(t, err, ErrLocationNotFound)

	all, err := repo.ListRooms(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	northRooms, err := repo.ListRooms(ctx, &north.ID)
	require.NoError(t, err)
	require.Len(t, northRooms, 1)
	assert.Equal(t, roomA.ID, northRooms[0].ID)

	room, err := repo.GetRoom(ctx, roomA.ID)
	require.NoError(t, err)
	assert.Equal(t, north.ID, room.LocationID)

	_, err = repo.GetRoom(ctx, 999)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_UpsertStaffByEmail(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	created, err := repo.UpsertStaff(ctx, domain.StaffMember{
		Name:   "Anna",
		Email:  ptr.Ptr("anna@example.com"),
		Color:  ptr.Ptr("#ff0000"),
		Active: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := repo.UpsertStaff(ctx, domain.StaffMember{
		Name:   "Anna K.",
		Email:  ptr.Ptr("anna@example.com"),
		Color:  ptr.Ptr("#00ff00"),
		Active: false,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Anna K.", updated.Name)
	assert.Equal(t, "#00ff00", ptr.Value(updated.Color))
	assert.False(t, updated.Active)

	_, err = repo.UpsertStaff(ctx, domain.StaffMember{Name: "Boris", Active: true})
	require.NoError(t, err)

	active, err := repo.ListActiveStaff(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Boris", active[0].Name)
	assert.Nil(t, active[0].Email)

	everyone, err := repo.ListStaff(ctx, true)
	require.NoError(t, err)
	assert.Len(t, everyone, 2)

	_, err = repo.GetStaff(ctx, 999)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
