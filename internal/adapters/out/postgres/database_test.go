package postgres_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	postgres_adapter "warehouse/internal/adapters/out/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T, monitorPings bool) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestNewDatabase(t *testing.T) {
	t.Run("pings the server", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t, true)
		defer mockDB.Close()

		mock.ExpectPing()

		db, err := postgres_adapter.NewDatabase(gormDB, postgres_adapter.PoolConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 10 * time.Minute,
		})
		require.NoError(t, err)
		assert.Same(t, gormDB, db.DB)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies the open connection limit", func(t *testing.T) {
		gormDB, _, mockDB := newMockGorm(t, false)
		defer mockDB.Close()

		_, err := postgres_adapter.NewDatabase(gormDB, postgres_adapter.PoolConfig{MaxOpenConns: 7})
		require.NoError(t, err)

		assert.Equal(t, 7, mockDB.Stats().MaxOpenConnections)
	})

	t.Run("fails when ping fails", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGorm(t, true)
		defer mockDB.Close()

		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		db, err := postgres_adapter.NewDatabase(gormDB, postgres_adapter.PoolConfig{})
		require.Error(t, err)
		assert.Nil(t, db)
		assert.Contains(t, err.Error(), "failed to ping database")
	})
}

func TestDatabase_Ping(t *testing.T) {
	gormDB, mock, mockDB := newMockGorm(t, true)
	defer mockDB.Close()

	mock.ExpectPing()
	db, err := postgres_adapter.NewDatabase(gormDB, postgres_adapter.PoolConfig{})
	require.NoError(t, err)

	mock.ExpectPing()
	require.NoError(t, db.Ping(t.Context()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	gormDB, mock, _ := newMockGorm(t, false)

	db, err := postgres_adapter.NewDatabase(gormDB, postgres_adapter.PoolConfig{})
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestModels_CoverEveryTable(t *testing.T) {
	gormDB, _, mockDB := newMockGorm(t, false)
	defer mockDB.Close()

	tables := make([]string, 0)
	for _, model := range postgres_adapter.Models() {
		stmt := &gorm.Statement{DB: gormDB}
		require.NoError(t, stmt.Parse(model))
		tables = append(tables, stmt.Schema.Table)
	}

	assert.ElementsMatch(t, []string{
		"vendors", "vendors_markers", "vendors_zones",
		"zones", "zones_markers",
		"markers",
		"deliveries", "deliveries_markers",
		"entries",
		"change_log",
	}, tables)
}
