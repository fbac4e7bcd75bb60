package queries

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/marker"
	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrExistsByIDQueryIsNotConstructed = errors.New(
		"ExistsByIDQuery must be created via NewExistsByIDQuery constructor",
	)
	ErrZoneNameExistsQueryIsNotConstructed = errors.New(
		"ZoneNameExistsQuery must be created via NewZoneNameExistsQuery constructor",
	)
	ErrNonExistingMarkerIDsQueryIsNotConstructed = errors.New(
		"NonExistingMarkerIDsQuery must be created via NewNonExistingMarkerIDsQuery constructor",
	)
)

var tables = map[string]string{
	delivery.EntityType: "deliveries",
	entry.EntityType:    "entries",
	vendor.EntityType:   "vendors",
	zone.EntityType:     "zones",
	marker.EntityType:   "markers",
}

type VendorResponse struct {
	AuditResponse

	Name         string  `json:"name"`
	SystemNumber string  `json:"systemNumber"`
	MarkerIDs    []int64 `json:"markerIds" gorm:"-"`
	ZoneIDs      []int64 `json:"zoneIds" gorm:"-"`
}

type ZoneResponse struct {
	AuditResponse

	Name      string  `json:"name"`
	IsFinal   bool    `json:"isFinal"`
	MarkerIDs []int64 `json:"markerIds" gorm:"-"`
}

type MarkerResponse struct {
	AuditResponse

	Name string `json:"name"`
}

type GetVendorQueryHandler struct {
	db *gorm.DB
}

func NewGetVendorQueryHandler(db *gorm.DB) GetVendorQueryHandler {
	return GetVendorQueryHandler{db: db}
}

func (h GetVendorQueryHandler) Handle(ctx context.Context, query GetByIDQuery) (VendorResponse, error) {
	v, err := getOne[VendorResponse](ctx, h.db, "vendors", vendor.EntityType, query)
	if err != nil {
		return VendorResponse{}, err
	}
	out := []VendorResponse{v}
	if err := completeVendors(ctx, h.db, out); err != nil {
		return VendorResponse{}, err
	}
	return out[0], nil
}

type ListVendorsQueryHandler struct {
	db *gorm.DB
}

func NewListVendorsQueryHandler(db *gorm.DB) ListVendorsQueryHandler {
	return ListVendorsQueryHandler{db: db}
}

func (h ListVendorsQueryHandler) Handle(ctx context.Context, query ListQuery) ([]VendorResponse, error) {
	out, err := listAll[VendorResponse](ctx, h.db, "vendors", query)
	if err != nil {
		return nil, err
	}
	if err := completeVendors(ctx, h.db, out); err != nil {
		return nil, err
	}
	return out, nil
}

func completeVendors(ctx context.Context, db *gorm.DB, items []VendorResponse) error {
	ids := make([]int64, 0, len(items))
	for _, v := range items {
		ids = append(ids, v.ID)
	}
	markers, err := loadLinks(ctx, db, "vendors_markers", "vendor_id", "marker_id", ids)
	if err != nil {
		return err
	}
	zones, err := loadLinks(ctx, db, "vendors_zones", "vendor_id", "zone_id", ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].MarkerIDs = linksOrEmpty(markers, items[i].ID)
		items[i].ZoneIDs = linksOrEmpty(zones, items[i].ID)
	}
	return nil
}

type GetZoneQueryHandler struct {
	db *gorm.DB
}

func NewGetZoneQueryHandler(db *gorm.DB) GetZoneQueryHandler {
	return GetZoneQueryHandler{db: db}
}

func (h GetZoneQueryHandler) Handle(ctx context.Context, query GetByIDQuery) (ZoneResponse, error) {
	z, err := getOne[ZoneResponse](ctx, h.db, "zones", zone.EntityType, query)
	if err != nil {
		return ZoneResponse{}, err
	}
	out := []ZoneResponse{z}
	if err := completeZones(ctx, h.db, out); err != nil {
		return ZoneResponse{}, err
	}
	return out[0], nil
}

type ListZonesQueryHandler struct {
	db *gorm.DB
}

func NewListZonesQueryHandler(db *gorm.DB) ListZonesQueryHandler {
	return ListZonesQueryHandler{db: db}
}

func (h ListZonesQueryHandler) Handle(ctx context.Context, query ListQuery) ([]ZoneResponse, error) {
	out, err := listAll[ZoneResponse](ctx, h.db, "zones", query)
	if err != nil {
		return nil, err
	}
	if err := completeZones(ctx, h.db, out); err != nil {
		return nil, err
	}
	return out, nil
}

func completeZones(ctx context.Context, db *gorm.DB, items []ZoneResponse) error {
	ids := make([]int64, 0, len(items))
	for _, z := range items {
		ids = append(ids, z.ID)
	}
	markers, err := loadLinks(ctx, db, "zones_markers", "zone_id", "marker_id", ids)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].MarkerIDs = linksOrEmpty(markers, items[i].ID)
	}
	return nil
}

type GetMarkerQueryHandler struct {
	db *gorm.DB
}

func NewGetMarkerQueryHandler(db *gorm.DB) GetMarkerQueryHandler {
	return GetMarkerQueryHandler{db: db}
}

func (h GetMarkerQueryHandler) Handle(ctx context.Context, query GetByIDQuery) (MarkerResponse, error) {
	return getOne[MarkerResponse](ctx, h.db, "markers", marker.EntityType, query)
}

type ListMarkersQueryHandler struct {
	db *gorm.DB
}

func NewListMarkersQueryHandler(db *gorm.DB) ListMarkersQueryHandler {
	return ListMarkersQueryHandler{db: db}
}

func (h ListMarkersQueryHandler) Handle(ctx context.Context, query ListQuery) ([]MarkerResponse, error) {
	return listAll[MarkerResponse](ctx, h.db, "markers", query)
}

// ExistsByIDQuery reports whether a live row of the given entity exists.
type ExistsByIDQuery struct {
	entityType string
	id         int64

	guard guard.ConstructorGuard
}

func NewExistsByIDQuery(entityType string, id int64) (ExistsByIDQuery, error) {
	var typeErr, idErr error
	if _, ok := tables[entityType]; !ok {
		typeErr = errs.NewValueIsInvalidErrorWithCause("entityType", fmt.Errorf("%q is not a known entity", entityType))
	}
	if id <= 0 {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if err := errors.Join(typeErr, idErr); err != nil {
		return ExistsByIDQuery{}, err
	}
	return ExistsByIDQuery{entityType: entityType, id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q ExistsByIDQuery) Validate() error {
	return q.guard.Validate(ErrExistsByIDQueryIsNotConstructed)
}

type ExistsByIDQueryHandler struct {
	db *gorm.DB
}

func NewExistsByIDQueryHandler(db *gorm.DB) ExistsByIDQueryHandler {
	return ExistsByIDQueryHandler{db: db}
}

func (h ExistsByIDQueryHandler) Handle(ctx context.Context, query ExistsByIDQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	var count int64
	err := h.db.WithContext(ctx).
		Table(tables[query.entityType]).
		Scopes(Live.scope).
		Where("id = ?", query.id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ZoneNameExistsQuery asks whether a live zone other than excludeID already
// uses the name. Names compare case-insensitively.
type ZoneNameExistsQuery struct {
	name      string
	excludeID int64

	guard guard.ConstructorGuard
}

func NewZoneNameExistsQuery(name string, excludeID int64) (ZoneNameExistsQuery, error) {
	name, err := kernel.ValidateText("name", name)
	if err != nil {
		return ZoneNameExistsQuery{}, err
	}
	if excludeID < 0 {
		return ZoneNameExistsQuery{}, errs.NewValueIsOutOfRangeError("excludeId", excludeID, 0, "max int64")
	}
	return ZoneNameExistsQuery{name: name, excludeID: excludeID, guard: guard.NewConstructorGuard()}, nil
}

func (q ZoneNameExistsQuery) Validate() error {
	return q.guard.Validate(ErrZoneNameExistsQueryIsNotConstructed)
}

type ZoneNameExistsQueryHandler struct {
	db *gorm.DB
}

func NewZoneNameExistsQueryHandler(db *gorm.DB) ZoneNameExistsQueryHandler {
	return ZoneNameExistsQueryHandler{db: db}
}

func (h ZoneNameExistsQueryHandler) Handle(ctx context.Context, query ZoneNameExistsQuery) (bool, error) {
	if err := query.Validate(); err != nil {
		return false, err
	}
	var count int64
	err := h.db.WithContext(ctx).
		Table("zones").
		Scopes(Live.scope).
		Where("LOWER(name) = ?", strings.ToLower(query.name)).
		Where("id <> ?", query.excludeID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// NonExistingMarkerIDsQuery returns the requested marker ids that have no live row, ascending.
type NonExistingMarkerIDsQuery struct {
	ids []int64

	guard guard.ConstructorGuard
}

func NewNonExistingMarkerIDsQuery(ids []int64) (NonExistingMarkerIDsQuery, error) {
	normalized, err := kernel.NormalizeIDs("markerIds", ids)
	if err != nil {
		return NonExistingMarkerIDsQuery{}, err
	}
	return NonExistingMarkerIDsQuery{ids: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (q NonExistingMarkerIDsQuery) Validate() error {
	return q.guard.Validate(ErrNonExistingMarkerIDsQueryIsNotConstructed)
}

type NonExistingMarkerIDsQueryHandler struct {
	db *gorm.DB
}

func NewNonExistingMarkerIDsQueryHandler(db *gorm.DB) NonExistingMarkerIDsQueryHandler {
	return NonExistingMarkerIDsQueryHandler{db: db}
}

func (h NonExistingMarkerIDsQueryHandler) Handle(ctx context.Context, query NonExistingMarkerIDsQuery) ([]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if len(query.ids) == 0 {
		return []int64{}, nil
	}

	var found []int64
	err := h.db.WithContext(ctx).
		Table("markers").
		Scopes(Live.scope).
		Where("id IN ?", query.ids).
		Pluck("id", &found).Error
	if err != nil {
		return nil, err
	}

	missing := make([]int64, 0)
	for _, id := range query.ids {
		if !slices.Contains(found, id) {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return missing, nil
}
