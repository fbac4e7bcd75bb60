package commands

import (
	"context"

	"warehouse/internal/core/domain/model/marker"
)

// Markers are plain tags: their handlers touch no other repository.

type CreateMarkerCommandHandler struct {
	uowFactory MarkerUoWFactory
	clock      Clock
}

func NewCreateMarkerCommandHandler(uowFactory MarkerUoWFactory, clock Clock) CreateMarkerCommandHandler {
	return CreateMarkerCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateMarkerCommandHandler) Handle(ctx context.Context, cmd CreateMarkerCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	m, err := marker.NewMarker(cmd.Name(), cmd.ActorID(), h.clock())
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

	if err := uow.MarkerRepository().Add(ctx, m); err != nil {
		return 0, err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return 0, err
	}
	return m.ID(), nil
}

type RenameMarkerCommandHandler struct {
	uowFactory MarkerUoWFactory
	clock      Clock
}

func NewRenameMarkerCommandHandler(uowFactory MarkerUoWFactory, clock Clock) RenameMarkerCommandHandler {
	return RenameMarkerCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RenameMarkerCommandHandler) Handle(ctx context.Context, cmd RenameMarkerCommand) error {
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

	repo := uow.MarkerRepository()
	m, err := repo.Get(ctx, cmd.MarkerID())
	if err != nil {
		return err
	}
	if err := m.Rename(cmd.Name(), cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := repo.Update(ctx, m); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// DeleteMarkerCommandHandler soft-deletes a marker. Links held by vendors, zones
// and deliveries stay in place; later edits of those owners must drop it.
type DeleteMarkerCommandHandler struct {
	uowFactory MarkerUoWFactory
}

func NewDeleteMarkerCommandHandler(uowFactory MarkerUoWFactory) DeleteMarkerCommandHandler {
	return DeleteMarkerCommandHandler{uowFactory: uowFactory}
}

func (h DeleteMarkerCommandHandler) Handle(ctx context.Context, cmd MarkerCommand) error {
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

	if err := uow.MarkerRepository().SoftDeleteByID(ctx, cmd.MarkerID(), cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

type RestoreMarkerCommandHandler struct {
	uowFactory MarkerUoWFactory
}

func NewRestoreMarkerCommandHandler(uowFactory MarkerUoWFactory) RestoreMarkerCommandHandler {
	return RestoreMarkerCommandHandler{uowFactory: uowFactory}
}

func (h RestoreMarkerCommandHandler) Handle(ctx context.Context, cmd MarkerCommand) error {
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

	repo := uow.MarkerRepository()
	m, err := repo.GetWithDeleted(ctx, cmd.MarkerID())
	if err != nil {
		return err
	}
	if err := repo.Undelete(ctx, m, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}
