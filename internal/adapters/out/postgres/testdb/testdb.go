// Package testdb provides throwaway databases carrying the warehouse schema
// for tests outside the postgres integration suite.
package testdb

import (
	"testing"

	postgres_adapter "warehouse/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLite opens a private in-memory database with every table migrated.
// The pool is pinned to one connection: each new connection to ":memory:"
// would see an empty database.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	database, err := postgres_adapter.NewDatabase(db, postgres_adapter.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(t.Context()))

	return db
}
