package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateEntriesCommandIsNotConstructed = errors.New(
		"CreateEntriesCommand must be created via NewCreateEntriesCommand constructor",
	)
	ErrEditEntryCommandIsNotConstructed = errors.New(
		"EditEntryCommand must be created via NewEditEntryCommand constructor",
	)
	ErrMoveEntryCommandIsNotConstructed = errors.New(
		"MoveEntryCommand must be created via NewMoveEntryCommand constructor",
	)
	ErrEntryCommandIsNotConstructed = errors.New(
		"EntryCommand must be created via its constructor",
	)
)

// NewEntry is one entry of a batch: the zone it goes to and its share of the delivery.
type NewEntry struct {
	ZoneID     int64
	Quantities kernel.Quantities
}

// CreateEntriesCommand splits part of a delivery into entries in one go.
type CreateEntriesCommand struct {
	actorID    string
	deliveryID int64
	entries    []NewEntry

	guard guard.ConstructorGuard
}

func NewCreateEntriesCommand(actorID string, deliveryID int64, entries []NewEntry) (CreateEntriesCommand, error) {
	var entriesErr error
	if len(entries) == 0 {
		entriesErr = errs.NewValueIsRequiredError("entries")
	}
	for _, e := range entries {
		if e.ZoneID <= 0 {
			entriesErr = errs.NewValueIsRequiredError("zoneId")
			break
		}
	}
	if err := errors.Join(
		kernel.ValidateActorID(actorID),
		validateID("deliveryId", deliveryID),
		entriesErr,
	); err != nil {
		return CreateEntriesCommand{}, err
	}
	return CreateEntriesCommand{
		actorID:    actorID,
		deliveryID: deliveryID,
		entries:    append([]NewEntry(nil), entries...),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateEntriesCommand) Validate() error {
	return c.guard.Validate(ErrCreateEntriesCommandIsNotConstructed)
}

func (c CreateEntriesCommand) ActorID() string {
	return c.actorID
}

func (c CreateEntriesCommand) DeliveryID() int64 {
	return c.deliveryID
}

func (c CreateEntriesCommand) Entries() []NewEntry {
	return append([]NewEntry(nil), c.entries...)
}

// ZoneIDs returns the zones the batch refers to.
func (c CreateEntriesCommand) ZoneIDs() []int64 {
	ids := make([]int64, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.ZoneID)
	}
	return ids
}

// EditEntryCommand changes the quantities allocated to an entry.
type EditEntryCommand struct {
	actorID    string
	entryID    int64
	quantities kernel.Quantities

	guard guard.ConstructorGuard
}

func NewEditEntryCommand(actorID string, entryID int64, quantities kernel.Quantities) (EditEntryCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("entryId", entryID)); err != nil {
		return EditEntryCommand{}, err
	}
	return EditEntryCommand{
		actorID:    actorID,
		entryID:    entryID,
		quantities: quantities,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c EditEntryCommand) Validate() error {
	return c.guard.Validate(ErrEditEntryCommandIsNotConstructed)
}

func (c EditEntryCommand) ActorID() string {
	return c.actorID
}

func (c EditEntryCommand) EntryID() int64 {
	return c.entryID
}

func (c EditEntryCommand) Quantities() kernel.Quantities {
	return c.quantities
}

// MoveEntryCommand reassigns an entry to another zone.
type MoveEntryCommand struct {
	actorID string
	entryID int64
	zoneID  int64

	guard guard.ConstructorGuard
}

func NewMoveEntryCommand(actorID string, entryID, zoneID int64) (MoveEntryCommand, error) {
	if err := errors.Join(
		kernel.ValidateActorID(actorID),
		validateID("entryId", entryID),
		validateID("zoneId", zoneID),
	); err != nil {
		return MoveEntryCommand{}, err
	}
	return MoveEntryCommand{
		actorID: actorID,
		entryID: entryID,
		zoneID:  zoneID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MoveEntryCommand) Validate() error {
	return c.guard.Validate(ErrMoveEntryCommandIsNotConstructed)
}

func (c MoveEntryCommand) ActorID() string {
	return c.actorID
}

func (c MoveEntryCommand) EntryID() int64 {
	return c.entryID
}

func (c MoveEntryCommand) ZoneID() int64 {
	return c.zoneID
}

// EntryCommand addresses one entry by id. Start, Finish, Delete and Restore take it.
type EntryCommand struct {
	actorID string
	entryID int64

	guard guard.ConstructorGuard
}

func NewEntryCommand(actorID string, entryID int64) (EntryCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("entryId", entryID)); err != nil {
		return EntryCommand{}, err
	}
	return EntryCommand{
		actorID: actorID,
		entryID: entryID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EntryCommand) Validate() error {
	return c.guard.Validate(ErrEntryCommandIsNotConstructed)
}

func (c EntryCommand) ActorID() string {
	return c.actorID
}

func (c EntryCommand) EntryID() int64 {
	return c.entryID
}
