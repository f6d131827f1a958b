// Package testdb opens throwaway SQLite databases for tests and installs
// them as the global database handle.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"propsite_backend/pkg/database"
)

// Open returns a fresh in-memory database with models migrated. The
// previous global handle is restored when the test ends.
func Open(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn))
	require.NoError(t, err)

	previous := database.GetDB()
	database.SetDB(db)

	require.NoError(t, database.MigrateDatabase(models...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		database.SetDB(previous)
	})
	return db
}
