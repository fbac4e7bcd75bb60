package commands

import (
	"context"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/entry"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"go.uber.org/zap"
)

// CreateEntriesCommandHandler allocates a batch of entries under a live delivery.
// The live entries of a delivery may never add up to more than the delivery itself.
type CreateEntriesCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateEntriesCommandHandler(uowFactory UoWFactory, clock Clock) CreateEntriesCommandHandler {
	return CreateEntriesCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the ids of the new entries in batch order.
func (h CreateEntriesCommandHandler) Handle(ctx context.Context, cmd CreateEntriesCommand) ([]int64, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	d, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}
	if err := d.AcceptsEntries(); err != nil {
		return nil, err
	}
	if err := requireAllLive(ctx, uow.ZoneRepository(), "zoneIds", cmd.ZoneIDs()); err != nil {
		return nil, err
	}

	repo := uow.EntryRepository()
	total, err := allocatedQuantities(ctx, repo, d.ID(), 0)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	ids := make([]int64, 0, len(cmd.Entries()))
	for _, item := range cmd.Entries() {
		total = total.Add(item.Quantities)
		if err := total.FitsWithin(d.Quantities()); err != nil {
			return nil, err
		}
		e, err := entry.NewEntry(d.ID(), item.ZoneID, item.Quantities, cmd.ActorID(), now)
		if err != nil {
			return nil, err
		}
		if err := repo.Add(ctx, e); err != nil {
			return nil, err
		}
		ids = append(ids, e.ID())
	}

	if err := uow.CommitWithLog(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// EditEntryCommandHandler changes an entry's quantities under the same allocation rule as creation.
type EditEntryCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewEditEntryCommandHandler(uowFactory UoWFactory, clock Clock) EditEntryCommandHandler {
	return EditEntryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h EditEntryCommandHandler) Handle(ctx context.Context, cmd EditEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EntryRepository()
	e, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	d, err := uow.DeliveryRepository().Get(ctx, e.DeliveryID())
	if err != nil {
		return err
	}
	if err := checkAllocation(ctx, repo, d, e.ID(), cmd.Quantities()); err != nil {
		return err
	}
	if err := e.Edit(cmd.Quantities(), cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := repo.Update(ctx, e); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// MoveEntryCommandHandler moves an entry to another live zone. Moving into
// the zone it already sits in changes nothing and writes nothing.
type MoveEntryCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewMoveEntryCommandHandler(uowFactory UoWFactory, clock Clock) MoveEntryCommandHandler {
	return MoveEntryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h MoveEntryCommandHandler) Handle(ctx context.Context, cmd MoveEntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EntryRepository()
	e, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	if err := requireLive(ctx, uow.ZoneRepository(), "zoneId", cmd.ZoneID()); err != nil {
		return err
	}
	current, err := uow.ZoneRepository().GetWithDeleted(ctx, e.ZoneID())
	if err != nil {
		return err
	}

	moved, err := e.MoveToZone(cmd.ZoneID(), current.IsFinal(), cmd.ActorID(), h.clock())
	if err != nil {
		return err
	}
	if !moved {
		return nil
	}
	if err := repo.Update(ctx, e); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// StartEntryProcessingCommandHandler starts an entry. The first entry to start
// also moves its delivery into processing. Starting twice is rejected.
type StartEntryProcessingCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewStartEntryProcessingCommandHandler(uowFactory UoWFactory, clock Clock) StartEntryProcessingCommandHandler {
	return StartEntryProcessingCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h StartEntryProcessingCommandHandler) Handle(ctx context.Context, cmd EntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	e, err := uow.EntryRepository().Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	d, err := uow.DeliveryRepository().Get(ctx, e.DeliveryID())
	if err != nil {
		return err
	}

	now := h.clock()
	if err := e.StartProcessing(cmd.ActorID(), now); err != nil {
		return err
	}
	if err := uow.EntryRepository().Update(ctx, e); err != nil {
		return err
	}

	started, err := d.StartProcessing(cmd.ActorID(), now)
	if err != nil {
		return err
	}
	if started {
		if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
			return err
		}
	}
	return uow.CommitWithLog(ctx)
}

// FinishEntryProcessingCommandHandler finishes a started entry. When it was the
// last unfinished live entry, the delivery finishes with it.
type FinishEntryProcessingCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewFinishEntryProcessingCommandHandler(uowFactory UoWFactory, clock Clock) FinishEntryProcessingCommandHandler {
	return FinishEntryProcessingCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h FinishEntryProcessingCommandHandler) Handle(ctx context.Context, cmd EntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EntryRepository()
	e, err := repo.Get(ctx, cmd.EntryID())
	if err != nil {
		return err
	}

	now := h.clock()
	if err := e.FinishProcessing(cmd.ActorID(), now); err != nil {
		return err
	}
	if err := repo.Update(ctx, e); err != nil {
		return err
	}

	deliveryID := e.DeliveryID()
	open, err := repo.CountLive(ctx, ports.EntryFilter{DeliveryID: &deliveryID, Statuses: unfinished})
	if err != nil {
		return err
	}
	if open == 0 {
		d, err := uow.DeliveryRepository().Get(ctx, deliveryID)
		if err != nil {
			return err
		}
		if err := d.FinishProcessing(cmd.ActorID(), now); err != nil {
			return err
		}
		if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
			return err
		}
		logger.FromContext(ctx).Info("delivery finished", zap.Int64("deliveryId", d.ID()))
	}
	return uow.CommitWithLog(ctx)
}

// DeleteEntryCommandHandler soft-deletes one entry. The delivery is left untouched.
type DeleteEntryCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteEntryCommandHandler(uowFactory UoWFactory) DeleteEntryCommandHandler {
	return DeleteEntryCommandHandler{uowFactory: uowFactory}
}

func (h DeleteEntryCommandHandler) Handle(ctx context.Context, cmd EntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.EntryRepository().SoftDeleteByID(ctx, cmd.EntryID(), cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// RestoreEntryCommandHandler restores one entry. Its delivery must be live,
// its zone must be live and the restored quantities must still fit.
type RestoreEntryCommandHandler struct {
	uowFactory UoWFactory
}

func NewRestoreEntryCommandHandler(uowFactory UoWFactory) RestoreEntryCommandHandler {
	return RestoreEntryCommandHandler{uowFactory: uowFactory}
}

func (h RestoreEntryCommandHandler) Handle(ctx context.Context, cmd EntryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.EntryRepository()
	e, err := repo.GetWithDeleted(ctx, cmd.EntryID())
	if err != nil {
		return err
	}
	if !e.IsDeleted() {
		return kernel.ErrNotDeleted
	}

	d, err := uow.DeliveryRepository().GetWithDeleted(ctx, e.DeliveryID())
	if err != nil {
		return err
	}
	if d.IsDeleted() {
		return errs.NewInvalidStateTransitionError(entry.EntityType, "under deleted delivery", "restore")
	}
	if err := requireLive(ctx, uow.ZoneRepository(), "zoneId", e.ZoneID()); err != nil {
		return err
	}
	if err := checkAllocation(ctx, repo, d, e.ID(), e.Quantities()); err != nil {
		return err
	}

	if err := repo.Undelete(ctx, e, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// checkAllocation verifies that q, added to every other live entry of d, still fits within d.
func checkAllocation(ctx context.Context, repo ports.EntryRepository, d *delivery.Delivery, entryID int64, q kernel.Quantities) error {
	others, err := allocatedQuantities(ctx, repo, d.ID(), entryID)
	if err != nil {
		return err
	}
	return others.Add(q).FitsWithin(d.Quantities())
}
