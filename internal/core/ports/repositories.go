package ports

import (
	"context"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/marker"
	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/core/domain/model/zone"
)

type DeliveryRepository interface {
	SoftDeleteRepository[*delivery.Delivery]

	// ListByVendor returns the live deliveries of a vendor.
	ListByVendor(ctx context.Context, vendorID int64) ([]*delivery.Delivery, error)
}

// EntryFilter narrows entry lookups. Zero values mean "any".
type EntryFilter struct {
	DeliveryID  *int64
	ZoneID      *int64
	Statuses    entry.StatusFilter
	WithDeleted bool
}

type EntryRepository interface {
	SoftDeleteRepository[*entry.Entry]

	// Find returns entries matching the filter, oldest first.
	Find(ctx context.Context, filter EntryFilter) ([]*entry.Entry, error)

	// CountLive counts live entries matching the filter; WithDeleted is ignored.
	CountLive(ctx context.Context, filter EntryFilter) (int64, error)
}

type VendorRepository interface {
	SoftDeleteRepository[*vendor.Vendor]
}

type ZoneRepository interface {
	SoftDeleteRepository[*zone.Zone]

	// ExistsByName reports whether a live zone other than excludeID carries the name.
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
}

type MarkerRepository interface {
	SoftDeleteRepository[*marker.Marker]
}

// ChangeLogRepository is the append-only audit trail.
type ChangeLogRepository interface {
	Append(ctx context.Context, changes []kernel.Change) error

	// History returns the changes filed under an aggregate, oldest first.
	History(ctx context.Context, aggregateType string, aggregateID int64) ([]kernel.Change, error)
}
