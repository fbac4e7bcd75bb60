package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/pkg/logger"

	"go.uber.org/zap"
)

type CreateVendorCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateVendorCommandHandler(uowFactory UoWFactory, clock Clock) CreateVendorCommandHandler {
	return CreateVendorCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h CreateVendorCommandHandler) Handle(ctx context.Context, cmd CreateVendorCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	v, err := vendor.NewVendor(cmd.Details(), cmd.ActorID(), h.clock())
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

	if err := checkVendorReferences(ctx, uow, v); err != nil {
		return 0, err
	}
	if err := uow.VendorRepository().Add(ctx, v); err != nil {
		return 0, err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return 0, err
	}
	return v.ID(), nil
}

type EditVendorCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewEditVendorCommandHandler(uowFactory UoWFactory, clock Clock) EditVendorCommandHandler {
	return EditVendorCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h EditVendorCommandHandler) Handle(ctx context.Context, cmd EditVendorCommand) error {
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

	repo := uow.VendorRepository()
	v, err := repo.Get(ctx, cmd.VendorID())
	if err != nil {
		return err
	}
	if err := v.Edit(cmd.Details(), cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := checkVendorReferences(ctx, uow, v); err != nil {
		return err
	}
	if err := repo.Update(ctx, v); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// DeleteVendorCommandHandler soft-deletes a vendor with its live deliveries
// and their live entries, all in one transaction.
type DeleteVendorCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteVendorCommandHandler(uowFactory UoWFactory) DeleteVendorCommandHandler {
	return DeleteVendorCommandHandler{uowFactory: uowFactory}
}

func (h DeleteVendorCommandHandler) Handle(ctx context.Context, cmd VendorCommand) error {
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

	v, err := uow.VendorRepository().Get(ctx, cmd.VendorID())
	if err != nil {
		return err
	}
	deliveries, err := uow.DeliveryRepository().ListByVendor(ctx, v.ID())
	if err != nil {
		return err
	}
	for _, d := range deliveries {
		if _, err := cascadeDeleteEntries(ctx, uow.EntryRepository(), d.ID(), cmd.ActorID()); err != nil {
			return err
		}
		if err := uow.DeliveryRepository().SoftDelete(ctx, d, cmd.ActorID()); err != nil {
			return err
		}
	}
	if err := uow.VendorRepository().SoftDelete(ctx, v, cmd.ActorID()); err != nil {
		return err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("vendor deleted",
		zap.Int64("vendorId", v.ID()),
		zap.Int("deliveries", len(deliveries)))
	return nil
}

// RestoreVendorCommandHandler restores the vendor only; its deliveries stay deleted.
type RestoreVendorCommandHandler struct {
	uowFactory UoWFactory
}

func NewRestoreVendorCommandHandler(uowFactory UoWFactory) RestoreVendorCommandHandler {
	return RestoreVendorCommandHandler{uowFactory: uowFactory}
}

func (h RestoreVendorCommandHandler) Handle(ctx context.Context, cmd VendorCommand) error {
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

	repo := uow.VendorRepository()
	v, err := repo.GetWithDeleted(ctx, cmd.VendorID())
	if err != nil {
		return err
	}
	if err := repo.Undelete(ctx, v, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

func checkVendorReferences(ctx context.Context, uow UoW, v *vendor.Vendor) error {
	return errors.Join(
		requireAllLive(ctx, uow.MarkerRepository(), "markerIds", v.MarkerIDs()),
		requireAllLive(ctx, uow.ZoneRepository(), "zoneIds", v.ZoneIDs()),
	)
}
