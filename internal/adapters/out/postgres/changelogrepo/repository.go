package changelogrepo

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

var ErrChangeSetIDIsRequired = errors.New("change must belong to a change set")

// GormChangeLogRepository implements ports.ChangeLogRepository using GORM.
// Rows are only ever inserted.
type GormChangeLogRepository struct {
	db *gorm.DB
}

func NewGormChangeLogRepository(db *gorm.DB) *GormChangeLogRepository {
	return &GormChangeLogRepository{db: db}
}

func (r *GormChangeLogRepository) Append(ctx context.Context, changes []kernel.Change) error {
	if len(changes) == 0 {
		return nil
	}
	dtos := make([]ChangeDTO, 0, len(changes))
	for _, c := range changes {
		if err := c.ChangeSetID.Validate(); err != nil {
			return errors.Join(ErrChangeSetIDIsRequired, err)
		}
		dto, err := fromDomain(c)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// History orders by occurrence, then by insertion so one change set keeps its recording order.
func (r *GormChangeLogRepository) History(ctx context.Context, aggregateType string, aggregateID int64) ([]kernel.Change, error) {
	var dtos []ChangeDTO
	err := r.db.WithContext(ctx).
		Where("aggregate_type = ? AND aggregate_id = ?", aggregateType, aggregateID).
		Order("occurred_at").
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	changes := make([]kernel.Change, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}
