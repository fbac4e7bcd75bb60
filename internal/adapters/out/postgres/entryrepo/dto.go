// Package entryrepo persists Entry entities.
package entryrepo

import (
	"time"

	"warehouse/internal/adapters/out/postgres/softdelete"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
)

// EntryDTO represents the entries table.
type EntryDTO struct {
	softdelete.AuditColumns

	DeliveryID         int64 `gorm:"not null;index"`
	ZoneID             int64 `gorm:"not null;index"`
	Pallets            int
	Packages           int
	Pieces             int
	StartedProcessing  *time.Time
	FinishedProcessing *time.Time
}

func (EntryDTO) TableName() string {
	return "entries"
}

func (e *EntryDTO) Columns() *softdelete.AuditColumns {
	return &e.AuditColumns
}

func fromDomain(e *entry.Entry) EntryDTO {
	q := e.Quantities()
	return EntryDTO{
		AuditColumns:       softdelete.ColumnsFromAudit(e.Snapshot()),
		DeliveryID:         e.DeliveryID(),
		ZoneID:             e.ZoneID(),
		Pallets:            q.Pallets(),
		Packages:           q.Packages(),
		Pieces:             q.Pieces(),
		StartedProcessing:  e.StartedProcessing(),
		FinishedProcessing: e.FinishedProcessing(),
	}
}

func toDomain(dto EntryDTO) (*entry.Entry, error) {
	audit, err := dto.AuditColumns.Audit()
	if err != nil {
		return nil, err
	}
	q, err := kernel.NewQuantities(dto.Pallets, dto.Packages, dto.Pieces)
	if err != nil {
		return nil, err
	}
	return entry.RestoreEntry(audit, dto.DeliveryID, dto.ZoneID, q, dto.StartedProcessing, dto.FinishedProcessing)
}
