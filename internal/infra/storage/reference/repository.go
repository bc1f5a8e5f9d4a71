package reference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/sqlerr"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"
)

// Repository репозиторий справочников: локации, комнаты, терапевты
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{db: db, builder: psqlbuilder.New(driver)}
}

// ListLocations возвращает все локации по имени
func (r *Repository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select("id", "name", "created_at").
		From("locations").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var location domain.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan location: %v", ErrScanRow, err)
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows iteration: %v", ErrScanRow, err)
	}

	return locations, nil
}

// GetLocation получает локацию по ID
func (r *Repository) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select("id", "name", "created_at").
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - build select query: %v", ErrBuildQuery, err)
	}

	var location domain.Location
	err = executor.QueryRowContext(ctx, query, args...).Scan(&location.ID, &location.Name, &location.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLocation - scan location: %v", ErrScanRow, err)
	}

	return &location, nil
}

// CreateLocation создает локацию
func (r *Repository) CreateLocation(ctx context.Context, name string) (*domain.Location, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	location := domain.Location{Name: name, CreatedAt: now()}

	query, args, err := r.builder.Insert("locations").
		Columns("name", "created_at").
		Values(location.Name, location.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLocation - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&location.ID); err != nil {
		if sqlerr.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: location %q", ErrAlreadyExists, name)
		}
		return nil, fmt.Errorf("%w: CreateLocation - execute insert: %v", ErrExecQuery, err)
	}

	return &location, nil
}

// ListRooms возвращает комнаты, опционально только одной локации
func (r *Repository) ListRooms(ctx context.Context, locationID *int64) ([]domain.Room, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select("id", "name", "location_id", "created_at").
		From("rooms").
		OrderBy("location_id ASC", "name ASC")
	if locationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *locationID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.LocationID, &room.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan room: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows iteration: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// GetRoom получает комнату по ID
func (r *Repository) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select("id", "name", "location_id", "created_at").
		From("rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %v", ErrBuildQuery, err)
	}

	var room domain.Room
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.Name, &room.LocationID, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %v", ErrScanRow, err)
	}

	return &room, nil
}

// CreateRoom создает комнату в локации
func (r *Repository) CreateRoom(ctx context.Context, name string, locationID int64) (*domain.Room, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	room := domain.Room{Name: name, LocationID: locationID, CreatedAt: now()}

	query, args, err := r.builder.Insert("rooms").
		Columns("name", "location_id", "created_at").
		Values(room.Name, room.LocationID, room.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRoom - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&room.ID); err != nil {
		switch {
		case sqlerr.IsUniqueViolation(err):
			return nil, fmt.Errorf("%w: room %q", ErrAlreadyExists, name)
		case sqlerr.IsForeignKeyViolation(err):
			return nil, ErrLocationNotFound
		}
		return nil, fmt.Errorf("%w: CreateRoom - execute insert: %v", ErrExecQuery, err)
	}

	return &room, nil
}

var staffColumns = []string{"id", "name", "email", "color", "active", "created_at"}

// ListStaff возвращает терапевтов по имени; includeInactive=false - только активных
func (r *Repository) ListStaff(ctx context.Context, includeInactive bool) ([]domain.StaffMember, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(staffColumns...).
		From("staff").
		OrderBy("name ASC", "id ASC")
	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]domain.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListStaff - scan staff: %v", ErrScanRow, err)
		}
		staff = append(staff, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaff - rows iteration: %v", ErrScanRow, err)
	}

	return staff, nil
}

// ListActiveStaff возвращает только активных терапевтов
func (r *Repository) ListActiveStaff(ctx context.Context) ([]domain.StaffMember, error) {
	return r.ListStaff(ctx, false)
}

// GetStaff получает терапевта по ID, в том числе неактивного
func (r *Repository) GetStaff(ctx context.Context, id int64) (*domain.StaffMember, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(staffColumns...).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	member, err := scanStaff(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %v", ErrScanRow, err)
	}

	return member, nil
}

// UpsertStaff создает терапевта или обновляет существующего с тем же email
// Без email всегда создается новая запись
func (r *Repository) UpsertStaff(ctx context.Context, member domain.StaffMember) (*domain.StaffMember, error) {
	executor := txmanager.GetExecutor(ctx, r.db)
	member.CreatedAt = now()

	insertBuilder := r.builder.Insert("staff").
		Columns("name", "email", "color", "active", "created_at").
		Values(member.Name, member.Email, member.Color, member.Active, member.CreatedAt)
	if member.Email != nil {
		insertBuilder = insertBuilder.Suffix(
			"ON CONFLICT (email) DO UPDATE SET name = excluded.name, color = excluded.color, active = excluded.active " +
				"RETURNING id")
	} else {
		insertBuilder = insertBuilder.Suffix("RETURNING id")
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertStaff - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("%w: UpsertStaff - execute upsert: %v", ErrExecQuery, err)
	}

	// При обновлении created_at остается от первой записи
	return r.GetStaff(ctx, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStaff(row rowScanner) (*domain.StaffMember, error) {
	var member domain.StaffMember
	if err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.Color,
		&member.Active,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &member, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
