package commands

import (
	"context"

	"warehouse/internal/core/domain/model/zone"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"
)

// CreateZoneCommandHandler creates a zone. Names are unique among live zones, ignoring case.
type CreateZoneCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateZoneCommandHandler(uowFactory UoWFactory, clock Clock) CreateZoneCommandHandler {
	return CreateZoneCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateZoneCommandHandler) Handle(ctx context.Context, cmd CreateZoneCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	details := cmd.Details()
	z, err := zone.NewZone(details.Name, details.IsFinal, details.MarkerIDs, cmd.ActorID(), h.clock())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := checkZone(ctx, uow, z); err != nil {
		return 0, err
	}
	if err := uow.ZoneRepository().Add(ctx, z); err != nil {
		return 0, err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return 0, err
	}
	return z.ID(), nil
}

type EditZoneCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewEditZoneCommandHandler(uowFactory UoWFactory, clock Clock) EditZoneCommandHandler {
	return EditZoneCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h EditZoneCommandHandler) Handle(ctx context.Context, cmd EditZoneCommand) error {
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

	repo := uow.ZoneRepository()
	z, err := repo.Get(ctx, cmd.ZoneID())
	if err != nil {
		return err
	}
	details := cmd.Details()
	if err := z.Edit(details.Name, details.IsFinal, details.MarkerIDs, cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := checkZone(ctx, uow, z); err != nil {
		return err
	}
	if err := repo.Update(ctx, z); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// DeleteZoneCommandHandler refuses to delete a zone that still holds live entries.
type DeleteZoneCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteZoneCommandHandler(uowFactory UoWFactory) DeleteZoneCommandHandler {
	return DeleteZoneCommandHandler{uowFactory: uowFactory}
}

func (h DeleteZoneCommandHandler) Handle(ctx context.Context, cmd ZoneCommand) error {
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

	z, err := uow.ZoneRepository().Get(ctx, cmd.ZoneID())
	if err != nil {
		return err
	}
	zoneID := z.ID()
	occupants, err := uow.EntryRepository().CountLive(ctx, ports.EntryFilter{ZoneID: &zoneID})
	if err != nil {
		return err
	}
	if occupants > 0 {
		return errs.NewInvalidStateTransitionError(zone.EntityType, "occupied", "delete")
	}
	if err := uow.ZoneRepository().SoftDelete(ctx, z, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// RestoreZoneCommandHandler fails when a live zone has taken the name in the meantime.
type RestoreZoneCommandHandler struct {
	uowFactory UoWFactory
}

func NewRestoreZoneCommandHandler(uowFactory UoWFactory) RestoreZoneCommandHandler {
	return RestoreZoneCommandHandler{uowFactory: uowFactory}
}

func (h RestoreZoneCommandHandler) Handle(ctx context.Context, cmd ZoneCommand) error {
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

	repo := uow.ZoneRepository()
	z, err := repo.GetWithDeleted(ctx, cmd.ZoneID())
	if err != nil {
		return err
	}
	if err := requireFreeZoneName(ctx, repo, z); err != nil {
		return err
	}
	if err := repo.Undelete(ctx, z, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

func checkZone(ctx context.Context, uow UoW, z *zone.Zone) error {
	if err := requireFreeZoneName(ctx, uow.ZoneRepository(), z); err != nil {
		return err
	}
	return requireAllLive(ctx, uow.MarkerRepository(), "markerIds", z.MarkerIDs())
}

func requireFreeZoneName(ctx context.Context, repo ports.ZoneRepository, z *zone.Zone) error {
	taken, err := repo.ExistsByName(ctx, z.Name(), z.ID())
	if err != nil {
		return err
	}
	if taken {
		return errs.NewValueIsInvalidErrorWithCause("name", ErrZoneNameIsTaken)
	}
	return nil
}
