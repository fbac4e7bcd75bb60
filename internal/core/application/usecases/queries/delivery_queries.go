package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrListDeliveriesQueryIsNotConstructed = errors.New(
		"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
	)
	ErrDeliveryHistoryQueryIsNotConstructed = errors.New(
		"DeliveryHistoryQuery must be created via NewDeliveryHistoryQuery constructor",
	)
)

// DeliveryResponse is the read model of a delivery.
type DeliveryResponse struct {
	AuditResponse

	VendorID           int64      `json:"vendorId"`
	SystemNumber       string     `json:"systemNumber"`
	ReceptionNumber    string     `json:"receptionNumber"`
	TruckNumber        string     `json:"truckNumber"`
	Cmr                string     `json:"cmr"`
	DeliveryTime       time.Time  `json:"deliveryTime"`
	Pallets            int        `json:"pallets"`
	Packages           int        `json:"packages"`
	Pieces             int        `json:"pieces"`
	StatusCode         int        `json:"-" gorm:"column:status"`
	Status             string     `json:"status" gorm:"-"`
	IsApproved         bool       `json:"isApproved"`
	ApprovedOn         *time.Time `json:"approvedOn,omitempty"`
	StartedProcessing  *time.Time `json:"startedProcessing,omitempty"`
	FinishedProcessing *time.Time `json:"finishedProcessing,omitempty"`
	MarkerIDs          []int64    `json:"markerIds" gorm:"-"`
}

type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

func (h GetDeliveryQueryHandler) Handle(ctx context.Context, query GetByIDQuery) (DeliveryResponse, error) {
	d, err := getOne[DeliveryResponse](ctx, h.db, "deliveries", delivery.EntityType, query)
	if err != nil {
		return DeliveryResponse{}, err
	}
	out := []DeliveryResponse{d}
	if err := completeDeliveries(ctx, h.db, out); err != nil {
		return DeliveryResponse{}, err
	}
	return out[0], nil
}

// ListDeliveriesQuery pages through deliveries, newest first.
//
// Example:
//
//	page, _ := kernel.NewPage(1, 20)
//	query, err := NewListDeliveriesQuery(page, Live, nil)
//	if err != nil {
//	    return err
//	}
//	result, err := NewListDeliveriesQueryHandler(db).Handle(ctx, query)
type ListDeliveriesQuery struct {
	page       kernel.Page
	visibility Visibility
	vendorID   *int64

	guard guard.ConstructorGuard
}

func NewListDeliveriesQuery(page kernel.Page, visibility Visibility, vendorID *int64) (ListDeliveriesQuery, error) {
	var vendorErr error
	if vendorID != nil && *vendorID <= 0 {
		vendorErr = errs.NewValueIsOutOfRangeError("vendorId", *vendorID, 1, "max int64")
	}
	var pageErr error
	if page.Size() == 0 {
		pageErr = errs.NewValueIsRequiredError("page")
	}
	if err := errors.Join(pageErr, visibility.Validate(), vendorErr); err != nil {
		return ListDeliveriesQuery{}, err
	}
	return ListDeliveriesQuery{
		page:       page,
		visibility: visibility,
		vendorID:   vendorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) (kernel.Paginated[DeliveryResponse], error) {
	if err := query.Validate(); err != nil {
		return kernel.Paginated[DeliveryResponse]{}, err
	}

	base := func() *gorm.DB {
		db := h.db.WithContext(ctx).Table("deliveries").Scopes(query.visibility.scope)
		if query.vendorID != nil {
			db = db.Where("vendor_id = ?", *query.vendorID)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return kernel.Paginated[DeliveryResponse]{}, err
	}

	items := make([]DeliveryResponse, 0, query.page.Size())
	err := base().
		Order("created_at DESC").
		Order("id DESC").
		Offset(query.page.Offset()).
		Limit(query.page.Size()).
		Find(&items).Error
	if err != nil {
		return kernel.Paginated[DeliveryResponse]{}, err
	}
	if err := completeDeliveries(ctx, h.db, items); err != nil {
		return kernel.Paginated[DeliveryResponse]{}, err
	}
	return kernel.NewPaginated(items, total, query.page), nil
}

// ChangeResponse is one step of a delivery's history.
type ChangeResponse struct {
	ChangeSetID string         `json:"changeSetId"`
	EntityType  string         `json:"entityType"`
	EntityID    int64          `json:"entityId"`
	Action      string         `json:"action"`
	ActorID     string         `json:"actorId"`
	OccurredAt  time.Time      `json:"occurredAt"`
	Details     map[string]any `json:"details,omitempty"`
}

// DeliveryHistoryQuery reads the change log of a delivery and its entries.
// Deleted deliveries keep their history.
type DeliveryHistoryQuery struct {
	deliveryID int64

	guard guard.ConstructorGuard
}

func NewDeliveryHistoryQuery(deliveryID int64) (DeliveryHistoryQuery, error) {
	if deliveryID <= 0 {
		return DeliveryHistoryQuery{}, errs.NewValueIsRequiredError("deliveryId")
	}
	return DeliveryHistoryQuery{deliveryID: deliveryID, guard: guard.NewConstructorGuard()}, nil
}

func (q DeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrDeliveryHistoryQueryIsNotConstructed)
}

type GetDeliveryHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryHistoryQueryHandler(db *gorm.DB) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{db: db}
}

// Handle returns the history oldest first, or errs.ObjectNotFoundError if the delivery never existed.
func (h GetDeliveryHistoryQueryHandler) Handle(ctx context.Context, query DeliveryHistoryQuery) ([]ChangeResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var known int64
	if err := h.db.WithContext(ctx).Table("deliveries").Where("id = ?", query.deliveryID).Count(&known).Error; err != nil {
		return nil, err
	}
	if known == 0 {
		return nil, errs.NewObjectNotFoundError(delivery.EntityType, query.deliveryID)
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			change_set_id,
			entity_type,
			entity_id,
			action,
			actor_id,
			occurred_at,
			details
		FROM change_log
		WHERE aggregate_type = ? AND aggregate_id = ?
		ORDER BY occurred_at, id
	`, delivery.EntityType, query.deliveryID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]ChangeResponse, 0)
	for rows.Next() {
		var c ChangeResponse
		var details string
		if err := rows.Scan(
			&c.ChangeSetID,
			&c.EntityType,
			&c.EntityID,
			&c.Action,
			&c.ActorID,
			&c.OccurredAt,
			&details,
		); err != nil {
			return nil, err
		}
		if details != "" {
			if err := json.Unmarshal([]byte(details), &c.Details); err != nil {
				return nil, err
			}
		}
		history = append(history, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func completeDeliveries(ctx context.Context, db *gorm.DB, items []DeliveryResponse) error {
	ids := make([]int64, 0, len(items))
	for _, d := range items {
		ids = append(ids, d.ID)
	}
	links, err := loadLinks(ctx, db, "deliveries_markers", "delivery_id", "marker_id", ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].Status = delivery.Status(items[i].StatusCode).String()
		items[i].MarkerIDs = linksOrEmpty(links, items[i].ID)
	}
	return nil
}
