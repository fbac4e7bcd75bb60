package markerrepo

import (
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/marker"

	"gorm.io/gorm"
)

// GormMarkerRepository implements ports.MarkerRepository using GORM.
type GormMarkerRepository struct {
	*softdelete.Repository[*marker.Marker, MarkerDTO, *MarkerDTO]
}

func NewGormMarkerRepository(db *gorm.DB, tracker softdelete.Tracker, now func() time.Time) *GormMarkerRepository {
	return &GormMarkerRepository{
		Repository: softdelete.NewRepository[*marker.Marker, MarkerDTO, *MarkerDTO](db, tracker, now,
			softdelete.Mapping[*marker.Marker, MarkerDTO]{
				Name:     marker.EntityType,
				ToRecord: fromDomain,
				ToDomain: toDomain,
			}),
	}
}
