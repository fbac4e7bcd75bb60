package softdelete

import (
	"context"

	"gorm.io/gorm"
)

// Link is an association row: an owner id and the id it points at.
type Link interface {
	OwnerID() int64
	TargetID() int64
}

// HardDeleteRange removes rows outright. It is only used for association rows,
// which carry no audit envelope.
func HardDeleteRange[L any](ctx context.Context, db *gorm.DB, query string, args ...any) error {
	return db.WithContext(ctx).Where(query, args...).Delete(new(L)).Error
}

// ReplaceLinks hard-deletes the owner's association rows and inserts the new set.
func ReplaceLinks[L any](ctx context.Context, db *gorm.DB, ownerColumn string, ownerID int64, links []L) error {
	if err := HardDeleteRange[L](ctx, db, ownerColumn+" = ?", ownerID); err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&links).Error
}

// LoadLinks returns target ids grouped by owner for the given owners, each sorted ascending.
func LoadLinks[L Link](ctx context.Context, db *gorm.DB, ownerColumn, targetColumn string, ownerIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var rows []L
	err := db.WithContext(ctx).
		Where(ownerColumn+" IN ?", ownerIDs).
		Order(ownerColumn).
		Order(targetColumn).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OwnerID()] = append(out[row.OwnerID()], row.TargetID())
	}
	return out, nil
}
