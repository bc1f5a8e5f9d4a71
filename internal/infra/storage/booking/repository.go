package booking

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

var bookingColumns = []string{
	"id",
	"room_id",
	"staff_id",
	"start_at",
	"end_at",
	"notes",
	"series_id",
	"recurrence_cadence",
	"recurrence_until",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
// Все времена пишутся и сравниваются в UTC, чтобы порядок строк совпадал
// с порядком времени и в sqlite, где timestamp хранится текстом
type Repository struct {
	db      DBExecutor
	builder psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, driver string) *Repository {
	return &Repository{db: db, builder: psqlbuilder.New(driver)}
}

// InsertBookings сохраняет бронирования и проставляет им ID и CreatedAt
// Если в контексте передана активная транзакция, использует её
func (r *Repository) InsertBookings(ctx context.Context, bookings []*domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	for _, booking := range bookings {
		createdAt := time.Now().UTC().Truncate(time.Second)

		query, args, err := r.builder.Insert("bookings").
			Columns(
				"room_id",
				"staff_id",
				"start_at",
				"end_at",
				"notes",
				"series_id",
				"recurrence_cadence",
				"recurrence_until",
				"created_at",
			).
			Values(
				booking.RoomID,
				booking.StaffID,
				booking.Start.UTC(),
				booking.End.UTC(),
				booking.Notes,
				booking.SeriesID,
				cadenceValue(booking.RecurrenceCadence),
				utcValue(booking.RecurrenceUntil),
				createdAt,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: InsertBookings - build insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID); err != nil {
			if sqlerr.IsExclusionViolation(err) {
				return fmt.Errorf("%w: room %d at %s", ErrOverlap, booking.RoomID, booking.Start.Format(time.RFC3339))
			}
			return fmt.Errorf("%w: InsertBookings - execute insert: %v", ErrExecQuery, err)
		}
		booking.CreatedAt = createdAt
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// QueryByRoom возвращает бронирования комнаты, пересекающиеся с окном
// window == nil - все бронирования комнаты
func (r *Repository) QueryByRoom(ctx context.Context, roomID int64, window *domain.Interval) ([]*domain.Booking, error) {
	return r.List(ctx, domain.BookingsFilter{RoomIDs: []int64{roomID}, Window: window})
}

// List получает бронирования с гибкой фильтрацией, отсортированные по началу
//
// Примеры:
//
//	// Неделя одной комнаты
//	filter := domain.BookingsFilter{RoomIDs: []int64{3}, Window: &week}
//
//	// Вся серия
//	filter := domain.BookingsFilter{SeriesID: &seriesID}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := r.builder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_at ASC", "id ASC")

	if len(filter.RoomIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": filter.RoomIDs})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.SeriesID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"series_id": *filter.SeriesID})
	}
	// Полуоткрытые интервалы: касание границ окна не считается пересечением
	if filter.Window != nil {
		selectBuilder = selectBuilder.Where(squirrel.And{
			squirrel.Lt{"start_at": filter.Window.End.UTC()},
			squirrel.Gt{"end_at": filter.Window.Start.UTC()},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// DeleteByIDs удаляет бронирования по списку ID и возвращает число удаленных строк
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return r.delete(ctx, "DeleteByIDs", squirrel.Eq{"id": ids})
}

// DeleteByID удаляет одно бронирование
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	deleted, err := r.delete(ctx, "DeleteByID", squirrel.Eq{"id": id})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// DeleteBySeries удаляет все бронирования серии
func (r *Repository) DeleteBySeries(ctx context.Context, seriesID string) (int64, error) {
	return r.delete(ctx, "DeleteBySeries", squirrel.Eq{"series_id": seriesID})
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := r.builder.Delete("bookings").Where(where).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		cadence sql.NullString
		until   sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.StaffID,
		&booking.Start,
		&booking.End,
		&booking.Notes,
		&booking.SeriesID,
		&cadence,
		&until,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Start = booking.Start.UTC()
	booking.End = booking.End.UTC()
	if cadence.Valid {
		c := domain.Cadence(cadence.String)
		booking.RecurrenceCadence = &c
	}
	if until.Valid {
		u := until.Time.UTC()
		booking.RecurrenceUntil = &u
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func cadenceValue(c *domain.Cadence) interface{} {
	if c == nil {
		return nil
	}
	return string(*c)
}

func utcValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}
