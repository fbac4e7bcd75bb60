package vendorrepo

import (
	"context"
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/vendor"

	"gorm.io/gorm"
)

// GormVendorRepository implements ports.VendorRepository using GORM.
type GormVendorRepository struct {
	*softdelete.Repository[*vendor.Vendor, VendorDTO, *VendorDTO]
}

func NewGormVendorRepository(db *gorm.DB, tracker softdelete.Tracker, now func() time.Time) *GormVendorRepository {
	return &GormVendorRepository{
		Repository: softdelete.NewRepository[*vendor.Vendor, VendorDTO, *VendorDTO](db, tracker, now,
			softdelete.Mapping[*vendor.Vendor, VendorDTO]{
				Name:       vendor.EntityType,
				ToRecord:   fromDomain,
				ToDomain:   toDomain,
				AfterWrite: writeLinks,
				AfterRead:  readLinks,
			}),
	}
}

func writeLinks(ctx context.Context, db *gorm.DB, v *vendor.Vendor) error {
	markers := make([]VendorMarkerDTO, 0)
	for _, id := range v.MarkerIDs() {
		markers = append(markers, VendorMarkerDTO{VendorID: v.ID(), MarkerID: id})
	}
	if err := softdelete.ReplaceLinks(ctx, db, "vendor_id", v.ID(), markers); err != nil {
		return err
	}

	zones := make([]VendorZoneDTO, 0)
	for _, id := range v.ZoneIDs() {
		zones = append(zones, VendorZoneDTO{VendorID: v.ID(), ZoneID: id})
	}
	return softdelete.ReplaceLinks(ctx, db, "vendor_id", v.ID(), zones)
}

func readLinks(ctx context.Context, db *gorm.DB, records []VendorDTO) error {
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	markers, err := softdelete.LoadLinks[VendorMarkerDTO](ctx, db, "vendor_id", "marker_id", ids)
	if err != nil {
		return err
	}
	zones, err := softdelete.LoadLinks[VendorZoneDTO](ctx, db, "vendor_id", "zone_id", ids)
	if err != nil {
		return err
	}
	for i := range records {
		records[i].MarkerIDs = markers[records[i].ID]
		records[i].ZoneIDs = zones[records[i].ID]
	}
	return nil
}
