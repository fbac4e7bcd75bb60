// Package ports defines the persistence contracts of the warehouse core.
// Every entity is stored through the same soft-delete discipline; the
// per-entity interfaces only add lookups by foreign key.
package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
)

// SoftDeleteRepository is the contract shared by every entity repository.
//
// Reads without "WithDeleted" see live rows only. Mutations go through the
// entity's optimistic version: Update and the delete/restore methods fail with
// errs.ErrConcurrencyConflict when the row changed since it was read.
type SoftDeleteRepository[E kernel.SoftDeletable] interface {
	// Get returns the live entity or errs.ObjectNotFoundError.
	Get(ctx context.Context, id int64) (E, error)

	// GetWithDeleted also resolves soft-deleted rows.
	GetWithDeleted(ctx context.Context, id int64) (E, error)

	// List returns every live entity, oldest first.
	List(ctx context.Context) ([]E, error)

	// ListWithDeleted returns live and deleted entities.
	ListWithDeleted(ctx context.Context) ([]E, error)

	// ListDeleted returns soft-deleted entities only.
	ListDeleted(ctx context.Context) ([]E, error)

	ExistsByID(ctx context.Context, id int64) (bool, error)

	// MissingIDs returns the subset of ids that do not resolve to live rows, sorted ascending.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// Add inserts a new entity and assigns its generated id.
	// The entity must carry its creation stamp.
	Add(ctx context.Context, entity E) error

	Update(ctx context.Context, entity E) error

	// SoftDelete stamps the deletion fields on a live entity and saves it.
	SoftDelete(ctx context.Context, entity E, actorID string) error

	// SoftDeleteByID loads the live entity first; errs.ObjectNotFoundError if there is none.
	SoftDeleteByID(ctx context.Context, id int64, actorID string) error

	// Undelete clears the deletion fields. It never touches related entities.
	Undelete(ctx context.Context, entity E, actorID string) error
}
