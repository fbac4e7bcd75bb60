package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories obtained after Begin share its transaction; obtained before
// Begin they read and write outside of any transaction.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// CommitWithLog appends the changes recorded by every tracked entity to the
	// change log inside the transaction, then commits. Either both land or neither.
	CommitWithLog(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	DeliveryRepository() DeliveryRepository
	EntryRepository() EntryRepository
	VendorRepository() VendorRepository
	ZoneRepository() ZoneRepository
	MarkerRepository() MarkerRepository
	ChangeLogRepository() ChangeLogRepository
}
