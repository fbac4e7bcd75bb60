package deliveryrepo

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	*softdelete.Repository[*delivery.Delivery, DeliveryDTO, *DeliveryDTO]
}

// NewGormDeliveryRepository creates a delivery repository bound to db.
func NewGormDeliveryRepository(db *gorm.DB, tracker softdelete.Tracker, now func() time.Time) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		Repository: softdelete.NewRepository[*delivery.Delivery, DeliveryDTO, *DeliveryDTO](db, tracker, now,
			softdelete.Mapping[*delivery.Delivery, DeliveryDTO]{
				Name:     delivery.EntityType,
				ToRecord: fromDomain,
				ToDomain: toDomain,
				AfterWrite: func(ctx context.Context, db *gorm.DB, d *delivery.Delivery) error {
					return softdelete.ReplaceLinks(ctx, db, "delivery_id", d.ID(), markerLinks(d))
				},
				AfterRead: loadMarkerIDs,
			}),
	}
}

// ListByVendor returns the live deliveries of a vendor.
func (r *GormDeliveryRepository) ListByVendor(ctx context.Context, vendorID int64) ([]*delivery.Delivery, error) {
	return r.Find(ctx, r.Live(ctx).Where("vendor_id = ?", vendorID))
}

func loadMarkerIDs(ctx context.Context, db *gorm.DB, records []DeliveryDTO) error {
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	links, err := softdelete.LoadLinks[DeliveryMarkerDTO](ctx, db, "delivery_id", "marker_id", ids)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].MarkerIDs = links[records[i].ID]
	}
	return nil
}
