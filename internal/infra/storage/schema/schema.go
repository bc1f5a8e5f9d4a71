// Package schema creates the tables used by the storage repositories.
package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RoomScheduler/pkg/txmanager"
)

// ErrMigrate возвращается, если создание схемы завершилось ошибкой
var ErrMigrate = errors.New("schema: migration failed")

var postgresStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS locations (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id          BIGSERIAL PRIMARY KEY,
		name        TEXT NOT NULL,
		location_id BIGINT NOT NULL REFERENCES locations(id),
		created_at  TIMESTAMPTZ NOT NULL,
		UNIQUE (location_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT UNIQUE,
		color      TEXT,
		active     BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                 BIGSERIAL PRIMARY KEY,
		room_id            BIGINT NOT NULL REFERENCES rooms(id),
		staff_id           BIGINT NOT NULL REFERENCES staff(id),
		start_at           TIMESTAMPTZ NOT NULL,
		end_at             TIMESTAMPTZ NOT NULL,
		notes              TEXT,
		series_id          TEXT,
		recurrence_cadence TEXT,
		recurrence_until   TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL,
		CHECK (end_at > start_at),
		CONSTRAINT bookings_no_overlap EXCLUDE USING gist (
			room_id WITH =,
			tstzrange(start_at, end_at) WITH &&
		)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_room_start_idx ON bookings (room_id, start_at)`,
	`CREATE INDEX IF NOT EXISTS bookings_series_idx ON bookings (series_id)`,
	`CREATE INDEX IF NOT EXISTS bookings_staff_start_idx ON bookings (staff_id, start_at)`,
}

// В sqlite нет exclusion constraint: пересечения отсекает только планировщик
var sqliteStatements = []string{
	`CREATE TABLE IF NOT EXISTS locations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		location_id INTEGER NOT NULL REFERENCES locations(id),
		created_at  TIMESTAMP NOT NULL,
		UNIQUE (location_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS staff (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		email      TEXT UNIQUE,
		color      TEXT,
		active     BOOLEAN NOT NULL DEFAULT 1,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id            INTEGER NOT NULL REFERENCES rooms(id),
		staff_id           INTEGER NOT NULL REFERENCES staff(id),
		start_at           TIMESTAMP NOT NULL,
		end_at             TIMESTAMP NOT NULL,
		notes              TEXT,
		series_id          TEXT,
		recurrence_cadence TEXT,
		recurrence_until   TIMESTAMP,
		created_at         TIMESTAMP NOT NULL,
		CHECK (end_at > start_at)
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_room_start_idx ON bookings (room_id, start_at)`,
	`CREATE INDEX IF NOT EXISTS bookings_series_idx ON bookings (series_id)`,
	`CREATE INDEX IF NOT EXISTS bookings_staff_start_idx ON bookings (staff_id, start_at)`,
}

// Statements возвращает DDL для драйвера
func Statements(driver string) ([]string, error) {
	switch driver {
	case psqlbuilder.DriverPostgres:
		return postgresStatements, nil
	case psqlbuilder.DriverSQLite:
		return sqliteStatements, nil
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrMigrate, driver)
	}
}

// Migrate создает таблицы, если их еще нет. Повторный вызов безопасен
func Migrate(ctx context.Context, db txmanager.DBExecutor, driver string) error {
	statements, err := Statements(driver)
	if err != nil {
		return err
	}

	executor := txmanager.GetExecutor(ctx, db)
	for i, statement := range statements {
		if _, err := executor.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("%w: statement %d: %v", ErrMigrate, i, err)
		}
	}
	return nil
}
