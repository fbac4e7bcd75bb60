// Package changelogrepo stores the append-only audit trail.
package changelogrepo

import (
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// ChangeDTO represents one row of the change_log table.
type ChangeDTO struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	ChangeSetID   string    `gorm:"size:36;not null;index"`
	AggregateType string    `gorm:"size:32;not null;index:idx_change_log_aggregate,priority:1"`
	AggregateID   int64     `gorm:"not null;index:idx_change_log_aggregate,priority:2"`
	EntityType    string    `gorm:"size:32;not null"`
	EntityID      int64     `gorm:"not null"`
	Action        string    `gorm:"size:32;not null"`
	ActorID       string    `gorm:"size:255;not null"`
	OccurredAt    time.Time `gorm:"not null"`
	Details       string    `gorm:"type:text"`
}

func (ChangeDTO) TableName() string {
	return "change_log"
}

func fromDomain(c kernel.Change) (ChangeDTO, error) {
	details := ""
	if len(c.Details) > 0 {
		raw, err := json.Marshal(c.Details)
		if err != nil {
			return ChangeDTO{}, err
		}
		details = string(raw)
	}
	return ChangeDTO{
		ChangeSetID:   c.ChangeSetID.String(),
		AggregateType: c.AggregateType,
		AggregateID:   c.AggregateID,
		EntityType:    c.EntityType,
		EntityID:      c.EntityID,
		Action:        string(c.Action),
		ActorID:       c.ActorID,
		OccurredAt:    c.OccurredAt,
		Details:       details,
	}, nil
}

func toDomain(dto ChangeDTO) (kernel.Change, error) {
	changeSetID, err := kernel.UUIDFromString(dto.ChangeSetID)
	if err != nil {
		return kernel.Change{}, err
	}
	var details map[string]any
	if dto.Details != "" {
		if err := json.Unmarshal([]byte(dto.Details), &details); err != nil {
			return kernel.Change{}, err
		}
	}
	return kernel.Change{
		ChangeSetID:   changeSetID,
		AggregateType: dto.AggregateType,
		AggregateID:   dto.AggregateID,
		EntityType:    dto.EntityType,
		EntityID:      dto.EntityID,
		Action:        kernel.Action(dto.Action),
		ActorID:       dto.ActorID,
		OccurredAt:    dto.OccurredAt,
		Details:       details,
	}, nil
}
