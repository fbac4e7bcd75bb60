// Package postgres provides the GORM implementation of the Unit of Work and
// the database plumbing behind it.
//
// A unit of work owns at most one transaction. Repositories handed out after
// Begin run inside it; every entity they write is tracked so CommitWithLog can
// append the entity's recorded changes to the change log in that same
// transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	d, err := uow.DeliveryRepository().Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if err := d.Approve(actorID, now); err != nil {
//	    return err
//	}
//	if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.CommitWithLog(ctx)
//
// Each UnitOfWork instance is meant for a single goroutine.
package postgres

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/changelogrepo"
	"warehouse/internal/adapters/out/postgres/deliveryrepo"
	"warehouse/internal/adapters/out/postgres/entryrepo"
	"warehouse/internal/adapters/out/postgres/markerrepo"
	"warehouse/internal/adapters/out/postgres/vendorrepo"
	"warehouse/internal/adapters/out/postgres/zonerepo"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Option configures a GormUnitOfWorkFactory.
type Option func(*GormUnitOfWorkFactory)

// WithClock replaces time.Now for deletion stamps written by repositories.
func WithClock(now func() time.Time) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(f *GormUnitOfWorkFactory) {
		f.log = log
	}
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
	log *zap.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, opts ...Option) *GormUnitOfWorkFactory {
	f := &GormUnitOfWorkFactory{
		db:  db,
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		now:               f.now,
		log:               f.log,
		trackedAggregates: make([]any, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the entities written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	now               func() time.Time
	log               *zap.Logger
	trackedAggregates []any
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction without writing change records.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CommitWithLog appends the pending changes of every tracked entity under a
// fresh change-set id, then commits. A failed append rolls everything back.
func (uow *GormUnitOfWork) CommitWithLog(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	changeSetID := kernel.NewUUID()
	changes := make([]kernel.Change, 0)
	for _, aggregate := range uow.trackedAggregates {
		recorder, ok := aggregate.(kernel.ChangeRecorder)
		if !ok {
			continue
		}
		for _, c := range recorder.PullChanges() {
			c.ChangeSetID = changeSetID
			changes = append(changes, c)
		}
	}

	if err := changelogrepo.NewGormChangeLogRepository(uow.tx).Append(ctx, changes); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	uow.log.Debug("unit of work committed",
		zap.String("changeSetId", changeSetID.String()),
		zap.Int("changes", len(changes)))
	return nil
}

// Rollback discards the transaction and forgets tracked entities.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow, uow.now)
}

func (uow *GormUnitOfWork) EntryRepository() ports.EntryRepository {
	return entryrepo.NewGormEntryRepository(uow.conn(), uow, uow.now)
}

func (uow *GormUnitOfWork) VendorRepository() ports.VendorRepository {
	return vendorrepo.NewGormVendorRepository(uow.conn(), uow, uow.now)
}

func (uow *GormUnitOfWork) ZoneRepository() ports.ZoneRepository {
	return zonerepo.NewGormZoneRepository(uow.conn(), uow, uow.now)
}

func (uow *GormUnitOfWork) MarkerRepository() ports.MarkerRepository {
	return markerrepo.NewGormMarkerRepository(uow.conn(), uow, uow.now)
}

func (uow *GormUnitOfWork) ChangeLogRepository() ports.ChangeLogRepository {
	return changelogrepo.NewGormChangeLogRepository(uow.conn())
}

// TrackAggregate registers an entity written in this unit of work.
// Repositories call it; the same entity may be tracked more than once.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

// conn returns the transaction if one is open, the plain connection otherwise.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
