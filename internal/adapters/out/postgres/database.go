package postgres

import (
	"context"
	"fmt"
	"time"

	"warehouse/internal/adapters/out/postgres/changelogrepo"
	"warehouse/internal/adapters/out/postgres/deliveryrepo"
	"warehouse/internal/adapters/out/postgres/entryrepo"
	"warehouse/internal/adapters/out/postgres/markerrepo"
	"warehouse/internal/adapters/out/postgres/vendorrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// PoolConfig holds connection pool limits.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Database owns the gorm handle the unit of work factory and the query side share.
type Database struct {
	DB *gorm.DB
}

// Open connects to postgres, applies the pool limits and pings the server.
func Open(dsn string, pool PoolConfig, log gormlogger.Interface) (*Database, error) {
	if log == nil {
		log = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 log,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewDatabase(db, pool)
}

// NewDatabase wraps an already opened gorm handle.
func NewDatabase(db *gorm.DB, pool PoolConfig) (*Database, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Models lists every table the warehouse core owns, association rows included.
func Models() []any {
	return []any{
		&vendorrepo.VendorDTO{},
		&vendorrepo.VendorMarkerDTO{},
		&vendorrepo.VendorZoneDTO{},
		&zonerepo.ZoneDTO{},
		&zonerepo.ZoneMarkerDTO{},
		&markerrepo.MarkerDTO{},
		&deliveryrepo.DeliveryDTO{},
		&deliveryrepo.DeliveryMarkerDTO{},
		&entryrepo.EntryDTO{},
		&changelogrepo.ChangeDTO{},
	}
}

// Migrate creates or alters the schema to match Models.
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.DB.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
