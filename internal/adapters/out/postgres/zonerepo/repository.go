package zonerepo

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/zone"

	"gorm.io/gorm"
)

// GormZoneRepository implements ports.ZoneRepository using GORM.
type GormZoneRepository struct {
	*softdelete.Repository[*zone.Zone, ZoneDTO, *ZoneDTO]
}

func NewGormZoneRepository(db *gorm.DB, tracker softdelete.Tracker, now func() time.Time) *GormZoneRepository {
	return &GormZoneRepository{
		Repository: softdelete.NewRepository[*zone.Zone, ZoneDTO, *ZoneDTO](db, tracker, now,
			softdelete.Mapping[*zone.Zone, ZoneDTO]{
				Name:     zone.EntityType,
				ToRecord: fromDomain,
				ToDomain: toDomain,
				AfterWrite: func(ctx context.Context, db *gorm.DB, z *zone.Zone) error {
					links := make([]ZoneMarkerDTO, 0)
					for _, id := range z.MarkerIDs() {
						links = append(links, ZoneMarkerDTO{ZoneID: z.ID(), MarkerID: id})
					}
					return softdelete.ReplaceLinks(ctx, db, "zone_id", z.ID(), links)
				},
				AfterRead: loadMarkerIDs,
			}),
	}
}

// ExistsByName compares names case-insensitively among live zones.
func (r *GormZoneRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	n, err := r.Count(r.Live(ctx).Where("LOWER(name) = LOWER(?) AND id <> ?", name, excludeID))
	return n > 0, err
}

func loadMarkerIDs(ctx context.Context, db *gorm.DB, records []ZoneDTO) error {
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	links, err := softdelete.LoadLinks[ZoneMarkerDTO](ctx, db, "zone_id", "marker_id", ids)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].MarkerIDs = links[records[i].ID]
	}
	return nil
}
