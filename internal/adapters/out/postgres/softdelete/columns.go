// Package softdelete implements the generic gorm repository every warehouse
// entity is persisted through.
//
// Records embed AuditColumns. Live reads filter on is_deleted; updates are
// optimistic on the version column. Association rows are never soft-deleted:
// they are hard-deleted and recreated as a set by ReplaceLinks.
package softdelete

import (
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// AuditColumns is the persisted form of kernel.Audit.
type AuditColumns struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt            time.Time `gorm:"not null"`
	CreatedByUserID      string    `gorm:"size:255;not null"`
	LastModifiedAt       *time.Time
	LastModifiedByUserID *string `gorm:"size:255"`
	IsDeleted            bool    `gorm:"not null;index"`
	DeletedAt            *time.Time
	DeletedByUserID      *string `gorm:"size:255"`
	Version              int     `gorm:"not null"`
}

func ColumnsFromAudit(s kernel.AuditSnapshot) AuditColumns {
	return AuditColumns{
		ID:                   s.ID,
		CreatedAt:            s.CreatedAt,
		CreatedByUserID:      s.CreatedByUserID,
		LastModifiedAt:       s.LastModifiedAt,
		LastModifiedByUserID: s.LastModifiedByUserID,
		IsDeleted:            s.IsDeleted,
		DeletedAt:            s.DeletedAt,
		DeletedByUserID:      s.DeletedByUserID,
		Version:              s.Version,
	}
}

// Audit rebuilds the domain envelope, enforcing its invariants.
func (c AuditColumns) Audit() (kernel.Audit, error) {
	return kernel.RestoreAudit(kernel.AuditSnapshot{
		ID:                   c.ID,
		CreatedAt:            c.CreatedAt,
		CreatedByUserID:      c.CreatedByUserID,
		LastModifiedAt:       c.LastModifiedAt,
		LastModifiedByUserID: c.LastModifiedByUserID,
		IsDeleted:            c.IsDeleted,
		DeletedAt:            c.DeletedAt,
		DeletedByUserID:      c.DeletedByUserID,
		Version:              c.Version,
	})
}
