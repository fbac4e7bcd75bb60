package softdelete

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"gorm.io/gorm"
)

// Record is the pointer constraint every persisted DTO satisfies.
type Record[R any] interface {
	*R
	Columns() *AuditColumns
}

// Scope composes a query, in the gorm.DB.Scopes sense.
type Scope = func(*gorm.DB) *gorm.DB

// Tracker is told about every entity written through a repository.
type Tracker interface {
	TrackAggregate(aggregate any)
}

// Mapping converts between an entity and its record. The hooks maintain
// association rows that live outside the record's own table.
type Mapping[E kernel.SoftDeletable, R any] struct {
	Name     string
	ToRecord func(E) R
	ToDomain func(R) (E, error)

	// AfterWrite runs inside the same db handle after Add and Update.
	AfterWrite func(ctx context.Context, db *gorm.DB, entity E) error

	// AfterRead fills non-column fields of freshly loaded records.
	AfterRead func(ctx context.Context, db *gorm.DB, records []R) error
}

// Repository is the generic soft-delete repository over one gorm model.
type Repository[E kernel.SoftDeletable, R any, P Record[R]] struct {
	db      *gorm.DB
	tracker Tracker
	now     func() time.Time
	mapping Mapping[E, R]
}

func NewRepository[E kernel.SoftDeletable, R any, P Record[R]](
	db *gorm.DB,
	tracker Tracker,
	now func() time.Time,
	mapping Mapping[E, R],
) *Repository[E, R, P] {
	return &Repository[E, R, P]{
		db:      db,
		tracker: tracker,
		now:     now,
		mapping: mapping,
	}
}

// All is a composable query over every row, deleted or not.
func (r *Repository[E, R, P]) All(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(P(new(R)))
}

// Live is a composable query over live rows only.
func (r *Repository[E, R, P]) Live(ctx context.Context) *gorm.DB {
	return r.All(ctx).Where("is_deleted = ?", false)
}

// Deleted is a composable query over soft-deleted rows only.
func (r *Repository[E, R, P]) Deleted(ctx context.Context) *gorm.DB {
	return r.All(ctx).Where("is_deleted = ?", true)
}

func (r *Repository[E, R, P]) Get(ctx context.Context, id int64) (E, error) {
	return r.first(ctx, r.Live(ctx), id)
}

func (r *Repository[E, R, P]) GetWithDeleted(ctx context.Context, id int64) (E, error) {
	return r.first(ctx, r.All(ctx), id)
}

func (r *Repository[E, R, P]) List(ctx context.Context) ([]E, error) {
	return r.Find(ctx, r.Live(ctx))
}

func (r *Repository[E, R, P]) ListWithDeleted(ctx context.Context) ([]E, error) {
	return r.Find(ctx, r.All(ctx))
}

func (r *Repository[E, R, P]) ListDeleted(ctx context.Context) ([]E, error) {
	return r.Find(ctx, r.Deleted(ctx))
}

// Find loads the rows selected by query, applying scopes, ordered by id.
func (r *Repository[E, R, P]) Find(ctx context.Context, query *gorm.DB, scopes ...Scope) ([]E, error) {
	var records []R
	if err := query.Scopes(scopes...).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.toDomain(ctx, records)
}

// Count counts the rows selected by query after applying scopes.
func (r *Repository[E, R, P]) Count(query *gorm.DB, scopes ...Scope) (int64, error) {
	var n int64
	err := query.Scopes(scopes...).Count(&n).Error
	return n, err
}

func (r *Repository[E, R, P]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.Count(r.Live(ctx).Where("id = ?", id))
	return n > 0, err
}

func (r *Repository[E, R, P]) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	ids, err := kernel.NormalizeIDs(r.mapping.Name+"Ids", ids)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []int64{}, nil
	}

	var found []int64
	if err := r.Live(ctx).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}

	present := make(map[int64]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	missing := make([]int64, 0)
	for _, id := range ids {
		if _, ok := present[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (r *Repository[E, R, P]) Add(ctx context.Context, entity E) error {
	if entity.ID() != 0 {
		return errs.NewValueIsInvalidErrorWithCause(r.mapping.Name, errors.New("entity is already stored"))
	}

	record := r.mapping.ToRecord(entity)
	cols := P(&record).Columns()
	if cols.CreatedByUserID == "" || cols.CreatedAt.IsZero() {
		return errs.NewValueIsRequiredError("createdBy")
	}

	db := r.db.WithContext(ctx)
	if err := db.Create(P(&record)).Error; err != nil {
		return err
	}
	if err := entity.AssignID(cols.ID); err != nil {
		return err
	}
	if r.mapping.AfterWrite != nil {
		if err := r.mapping.AfterWrite(ctx, db, entity); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(entity)
	return nil
}

// Update writes every column except the creation stamp, guarded by the version the entity was read at.
func (r *Repository[E, R, P]) Update(ctx context.Context, entity E) error {
	record := r.mapping.ToRecord(entity)
	cols := P(&record).Columns()
	cols.Version = entity.Version() + 1

	db := r.db.WithContext(ctx)
	result := db.Model(P(new(R))).
		Where("id = ? AND version = ?", entity.ID(), entity.Version()).
		Select("*").
		Omit("id", "created_at", "created_by_user_id").
		Updates(P(&record))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.Count(r.All(ctx).Where("id = ?", entity.ID()))
		if err != nil {
			return err
		}
		if exists == 0 {
			return errs.NewObjectNotFoundError(r.mapping.Name, entity.ID())
		}
		return errs.ErrConcurrencyConflict
	}
	entity.AdvanceVersion()

	if r.mapping.AfterWrite != nil {
		if err := r.mapping.AfterWrite(ctx, db, entity); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(entity)
	return nil
}

func (r *Repository[E, R, P]) SoftDelete(ctx context.Context, entity E, actorID string) error {
	if entity.IsDeleted() {
		return errs.NewObjectNotFoundError(r.mapping.Name, entity.ID())
	}
	if err := entity.MarkDeleted(actorID, r.now()); err != nil {
		return err
	}
	return r.Update(ctx, entity)
}

func (r *Repository[E, R, P]) SoftDeleteByID(ctx context.Context, id int64, actorID string) error {
	entity, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	return r.SoftDelete(ctx, entity, actorID)
}

func (r *Repository[E, R, P]) Undelete(ctx context.Context, entity E, actorID string) error {
	if err := entity.Undelete(actorID, r.now()); err != nil {
		return err
	}
	return r.Update(ctx, entity)
}

func (r *Repository[E, R, P]) first(ctx context.Context, query *gorm.DB, id int64) (E, error) {
	var zero E
	var record R
	if err := query.Where("id = ?", id).Take(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, errs.NewObjectNotFoundError(r.mapping.Name, id)
		}
		return zero, err
	}
	entities, err := r.toDomain(ctx, []R{record})
	if err != nil {
		return zero, err
	}
	return entities[0], nil
}

func (r *Repository[E, R, P]) toDomain(ctx context.Context, records []R) ([]E, error) {
	if r.mapping.AfterRead != nil && len(records) > 0 {
		if err := r.mapping.AfterRead(ctx, r.db.WithContext(ctx), records); err != nil {
			return nil, err
		}
	}
	entities := make([]E, 0, len(records))
	for _, record := range records {
		entity, err := r.mapping.ToDomain(record)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
