package queries

import (
	"context"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrListEntriesQueryIsNotConstructed = errors.New(
	"ListEntriesQuery must be created via NewListEntriesQuery constructor",
)

type EntryResponse struct {
	AuditResponse

	DeliveryID         int64      `json:"deliveryId"`
	ZoneID             int64      `json:"zoneId"`
	Pallets            int        `json:"pallets"`
	Packages           int        `json:"packages"`
	Pieces             int        `json:"pieces"`
	StartedProcessing  *time.Time `json:"startedProcessing,omitempty"`
	FinishedProcessing *time.Time `json:"finishedProcessing,omitempty"`
	Status             string     `json:"status" gorm:"-"`
}

type GetEntryQueryHandler struct {
	db *gorm.DB
}

func NewGetEntryQueryHandler(db *gorm.DB) GetEntryQueryHandler {
	return GetEntryQueryHandler{db: db}
}

func (h GetEntryQueryHandler) Handle(ctx context.Context, query GetByIDQuery) (EntryResponse, error) {
	e, err := getOne[EntryResponse](ctx, h.db, "entries", entry.EntityType, query)
	if err != nil {
		return EntryResponse{}, err
	}
	e.Status = entry.DeriveStatus(e.StartedProcessing, e.FinishedProcessing).String()
	return e, nil
}

// ListEntriesQuery narrows entries by delivery, zone and derived status.
// Nil filters match everything.
type ListEntriesQuery struct {
	deliveryID *int64
	zoneID     *int64
	statuses   entry.StatusFilter
	visibility Visibility

	guard guard.ConstructorGuard
}

func NewListEntriesQuery(
	deliveryID, zoneID *int64,
	statuses entry.StatusFilter,
	visibility Visibility,
) (ListEntriesQuery, error) {
	var idErrs []error
	if deliveryID != nil && *deliveryID <= 0 {
		idErrs = append(idErrs, errs.NewValueIsOutOfRangeError("deliveryId", *deliveryID, 1, "max int64"))
	}
	if zoneID != nil && *zoneID <= 0 {
		idErrs = append(idErrs, errs.NewValueIsOutOfRangeError("zoneId", *zoneID, 1, "max int64"))
	}
	for _, s := range statuses {
		idErrs = append(idErrs, s.Validate())
	}
	idErrs = append(idErrs, visibility.Validate())
	if err := errors.Join(idErrs...); err != nil {
		return ListEntriesQuery{}, err
	}
	return ListEntriesQuery{
		deliveryID: deliveryID,
		zoneID:     zoneID,
		statuses:   statuses,
		visibility: visibility,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListEntriesQuery) Validate() error {
	return q.guard.Validate(ErrListEntriesQueryIsNotConstructed)
}

type ListEntriesQueryHandler struct {
	db *gorm.DB
}

func NewListEntriesQueryHandler(db *gorm.DB) ListEntriesQueryHandler {
	return ListEntriesQueryHandler{db: db}
}

func (h ListEntriesQueryHandler) Handle(ctx context.Context, query ListEntriesQuery) ([]EntryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("entries").Scopes(query.visibility.scope)
	if query.deliveryID != nil {
		db = db.Where("delivery_id = ?", *query.deliveryID)
	}
	if query.zoneID != nil {
		db = db.Where("zone_id = ?", *query.zoneID)
	}

	var rows []EntryResponse
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	// status is not stored, so it is filtered after the read
	out := make([]EntryResponse, 0, len(rows))
	for _, e := range rows {
		status := entry.DeriveStatus(e.StartedProcessing, e.FinishedProcessing)
		if !query.statuses.Matches(status) {
			continue
		}
		e.Status = status.String()
		out = append(out, e)
	}
	return out, nil
}
