// Package vendorrepo persists Vendor entities with their marker and zone associations.
package vendorrepo

import (
	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/vendor"
)

type VendorDTO struct {
	softdelete.AuditColumns

	Name         string `gorm:"size:255;not null"`
	SystemNumber string `gorm:"size:255"`

	MarkerIDs []int64 `gorm:"-"`
	ZoneIDs   []int64 `gorm:"-"`
}

func (VendorDTO) TableName() string {
	return "vendors"
}

func (v *VendorDTO) Columns() *softdelete.AuditColumns {
	return &v.AuditColumns
}

type VendorMarkerDTO struct {
	VendorID int64 `gorm:"primaryKey;autoIncrement:false"`
	MarkerID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (VendorMarkerDTO) TableName() string {
	return "vendors_markers"
}

func (l VendorMarkerDTO) OwnerID() int64  { return l.VendorID }
func (l VendorMarkerDTO) TargetID() int64 { return l.MarkerID }

type VendorZoneDTO struct {
	VendorID int64 `gorm:"primaryKey;autoIncrement:false"`
	ZoneID   int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (VendorZoneDTO) TableName() string {
	return "vendors_zones"
}

func (l VendorZoneDTO) OwnerID() int64  { return l.VendorID }
func (l VendorZoneDTO) TargetID() int64 { return l.ZoneID }

func fromDomain(v *vendor.Vendor) VendorDTO {
	return VendorDTO{
		AuditColumns: softdelete.ColumnsFromAudit(v.Snapshot()),
		Name:         v.Name(),
		SystemNumber: v.SystemNumber(),
		MarkerIDs:    v.MarkerIDs(),
		ZoneIDs:      v.ZoneIDs(),
	}
}

func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	audit, err := dto.AuditColumns.Audit()
	if err != nil {
		return nil, err
	}
	return vendor.RestoreVendor(audit, vendor.Details{
		Name:         dto.Name,
		SystemNumber: dto.SystemNumber,
		MarkerIDs:    dto.MarkerIDs,
		ZoneIDs:      dto.ZoneIDs,
	})
}
