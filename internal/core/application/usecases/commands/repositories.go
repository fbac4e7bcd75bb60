// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler runs in its own unit of work: load, mutate through the domain
// model, write through the repositories, commit. Nothing is retried.
package commands

import (
	"context"
	"time"

	"warehouse/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	// CommitWithLog additionally appends the recorded changes to the audit trail.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		CommitWithLog(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	EntryRepoFactory interface {
		EntryRepository() ports.EntryRepository
	}

	VendorRepoFactory interface {
		VendorRepository() ports.VendorRepository
	}

	ZoneRepoFactory interface {
		ZoneRepository() ports.ZoneRepository
	}

	MarkerRepoFactory interface {
		MarkerRepository() ports.MarkerRepository
	}

	// MarkerUoW manages transactions for marker-only operations.
	MarkerUoW interface {
		TxManager
		MarkerRepoFactory
	}

	MarkerUoWFactory interface {
		Create() MarkerUoW
	}

	// UoW spans every repository. Lifecycle operations check references across
	// aggregates and cascade deletes, so they need all of them in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   d, err := uow.DeliveryRepository().Get(ctx, id)
	//   // ... mutate d
	//   err = uow.DeliveryRepository().Update(ctx, d)
	//
	//   err = uow.CommitWithLog(ctx)
	UoW interface {
		TxManager
		DeliveryRepoFactory
		EntryRepoFactory
		VendorRepoFactory
		ZoneRepoFactory
		MarkerRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies the time stamped on audit fields and processing timestamps.
type Clock func() time.Time
