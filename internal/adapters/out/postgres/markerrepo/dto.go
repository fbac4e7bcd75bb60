// Package markerrepo persists Marker entities.
package markerrepo

import (
	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/marker"
)

type MarkerDTO struct {
	softdelete.AuditColumns

	Name string `gorm:"size:255;not null"`
}

func (MarkerDTO) TableName() string {
	return "markers"
}

func (m *MarkerDTO) Columns() *softdelete.AuditColumns {
	return &m.AuditColumns
}

func fromDomain(m *marker.Marker) MarkerDTO {
	return MarkerDTO{
		AuditColumns: softdelete.ColumnsFromAudit(m.Snapshot()),
		Name:         m.Name(),
	}
}

func toDomain(dto MarkerDTO) (*marker.Marker, error) {
	audit, err := dto.AuditColumns.Audit()
	if err != nil {
		return nil, err
	}
	return marker.RestoreMarker(audit, dto.Name)
}
