// Package storagetest opens throwaway sqlite databases with the production
// schema for repository tests.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-RoomScheduler/internal/infra/storage/schema"
	"github.com/m04kA/SMC-RoomScheduler/pkg/psqlbuilder"
)

// OpenSQLite создает файл базы во временной директории теста и накатывает схему
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		filepath.Join(t.TempDir(), "test.db"))
	db, err := sql.Open(psqlbuilder.DriverSQLite, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, schema.Migrate(context.Background(), db, psqlbuilder.DriverSQLite))
	return db
}
