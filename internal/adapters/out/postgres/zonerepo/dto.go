// Package zonerepo persists Zone entities and their marker associations.
package zonerepo

import (
	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/zone"
)

type ZoneDTO struct {
	softdelete.AuditColumns

	Name    string `gorm:"size:255;not null;index"`
	IsFinal bool   `gorm:"not null"`

	MarkerIDs []int64 `gorm:"-"`
}

func (ZoneDTO) TableName() string {
	return "zones"
}

func (z *ZoneDTO) Columns() *softdelete.AuditColumns {
	return &z.AuditColumns
}

type ZoneMarkerDTO struct {
	ZoneID   int64 `gorm:"primaryKey;autoIncrement:false"`
	MarkerID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (ZoneMarkerDTO) TableName() string {
	return "zones_markers"
}

func (l ZoneMarkerDTO) OwnerID() int64  { return l.ZoneID }
func (l ZoneMarkerDTO) TargetID() int64 { return l.MarkerID }

func fromDomain(z *zone.Zone) ZoneDTO {
	return ZoneDTO{
		AuditColumns: softdelete.ColumnsFromAudit(z.Snapshot()),
		Name:         z.Name(),
		IsFinal:      z.IsFinal(),
		MarkerIDs:    z.MarkerIDs(),
	}
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	audit, err := dto.AuditColumns.Audit()
	if err != nil {
		return nil, err
	}
	return zone.RestoreZone(audit, dto.Name, dto.IsFinal, dto.MarkerIDs)
}
