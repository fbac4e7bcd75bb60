package entryrepo

import (
	"context"
	"strings"
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/ports"

	"gorm.io/gorm"
)

// GormEntryRepository implements ports.EntryRepository using GORM.
type GormEntryRepository struct {
	*softdelete.Repository[*entry.Entry, EntryDTO, *EntryDTO]
}

func NewGormEntryRepository(db *gorm.DB, tracker softdelete.Tracker, now func() time.Time) *GormEntryRepository {
	return &GormEntryRepository{
		Repository: softdelete.NewRepository[*entry.Entry, EntryDTO, *EntryDTO](db, tracker, now,
			softdelete.Mapping[*entry.Entry, EntryDTO]{
				Name:     entry.EntityType,
				ToRecord: fromDomain,
				ToDomain: toDomain,
			}),
	}
}

func (r *GormEntryRepository) Find(ctx context.Context, filter ports.EntryFilter) ([]*entry.Entry, error) {
	query := r.Live(ctx)
	if filter.WithDeleted {
		query = r.All(ctx)
	}
	return r.Repository.Find(ctx, query, Matching(filter))
}

func (r *GormEntryRepository) CountLive(ctx context.Context, filter ports.EntryFilter) (int64, error) {
	return r.Count(r.Live(ctx), Matching(filter))
}

// Matching translates a filter into a scope. Status is derived from the processing timestamps.
func Matching(filter ports.EntryFilter) softdelete.Scope {
	return func(db *gorm.DB) *gorm.DB {
		if filter.DeliveryID != nil {
			db = db.Where("delivery_id = ?", *filter.DeliveryID)
		}
		if filter.ZoneID != nil {
			db = db.Where("zone_id = ?", *filter.ZoneID)
		}
		if len(filter.Statuses) == 0 {
			return db
		}
		parts := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			parts = append(parts, "("+statusClause(status)+")")
		}
		return db.Where("(" + strings.Join(parts, " OR ") + ")")
	}
}

func statusClause(s entry.Status) string {
	switch s {
	case entry.Waiting:
		return "started_processing IS NULL"
	case entry.Processing:
		return "started_processing IS NOT NULL AND finished_processing IS NULL"
	case entry.Finished:
		return "finished_processing IS NOT NULL"
	default:
		return "1 = 0"
	}
}
