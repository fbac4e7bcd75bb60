package commands

import (
	"context"
	"errors"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"go.uber.org/zap"
)

// CreateDeliveryCommandHandler creates a pending delivery after checking that
// its vendor and markers are live.
type CreateDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewCreateDeliveryCommandHandler(uowFactory UoWFactory, clock Clock) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the id of the new delivery. Missing references fail with
// *errs.ValidationError carrying exactly the ids that did not resolve.
func (h CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	d, err := delivery.NewDelivery(cmd.Details(), cmd.ActorID(), h.clock())
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

	if err := checkDeliveryReferences(ctx, uow, d); err != nil {
		return 0, err
	}
	if err := uow.DeliveryRepository().Add(ctx, d); err != nil {
		return 0, err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info("delivery created",
		zap.Int64("deliveryId", d.ID()),
		zap.Int64("vendorId", d.VendorID()))
	return d.ID(), nil
}

// EditDeliveryCommandHandler re-validates references exactly like creation.
type EditDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewEditDeliveryCommandHandler(uowFactory UoWFactory, clock Clock) EditDeliveryCommandHandler {
	return EditDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h EditDeliveryCommandHandler) Handle(ctx context.Context, cmd EditDeliveryCommand) error {
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

	repo := uow.DeliveryRepository()
	d, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err := d.Edit(cmd.Details(), cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := checkDeliveryReferences(ctx, uow, d); err != nil {
		return err
	}
	if err := repo.Update(ctx, d); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

// ApproveDeliveryCommandHandler approves a delivery. A delivery that is
// already approved is rejected with errs.ErrInvalidStateTransition; two
// concurrent approvals are serialised by the version check, so the loser
// fails with errs.ErrConcurrencyConflict.
type ApproveDeliveryCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
}

func NewApproveDeliveryCommandHandler(uowFactory UoWFactory, clock Clock) ApproveDeliveryCommandHandler {
	return ApproveDeliveryCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ApproveDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryCommand) error {
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

	repo := uow.DeliveryRepository()
	d, err := repo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err := d.Approve(cmd.ActorID(), h.clock()); err != nil {
		return err
	}
	if err := repo.Update(ctx, d); err != nil {
		return err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("delivery approved", zap.Int64("deliveryId", d.ID()))
	return nil
}

// DeleteDeliveryCommandHandler soft-deletes a delivery together with all of
// its live entries. The cascade commits as a whole or not at all.
type DeleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewDeleteDeliveryCommandHandler(uowFactory UoWFactory) DeleteDeliveryCommandHandler {
	return DeleteDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h DeleteDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryCommand) error {
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

	d, err := uow.DeliveryRepository().Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	cascaded, err := cascadeDeleteEntries(ctx, uow.EntryRepository(), d.ID(), cmd.ActorID())
	if err != nil {
		return err
	}
	if err := uow.DeliveryRepository().SoftDelete(ctx, d, cmd.ActorID()); err != nil {
		return err
	}
	if err := uow.CommitWithLog(ctx); err != nil {
		return err
	}

	logger.FromContext(ctx).Info("delivery deleted",
		zap.Int64("deliveryId", d.ID()),
		zap.Int("entries", cascaded))
	return nil
}

// RestoreDeliveryCommandHandler restores the delivery only. Entries deleted
// with it stay deleted and must be restored one by one.
type RestoreDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewRestoreDeliveryCommandHandler(uowFactory UoWFactory) RestoreDeliveryCommandHandler {
	return RestoreDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h RestoreDeliveryCommandHandler) Handle(ctx context.Context, cmd DeliveryCommand) error {
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

	repo := uow.DeliveryRepository()
	d, err := repo.GetWithDeleted(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}
	if err := requireLive(ctx, uow.VendorRepository(), "vendorId", d.VendorID()); err != nil {
		return err
	}
	if err := repo.Undelete(ctx, d, cmd.ActorID()); err != nil {
		return err
	}
	return uow.CommitWithLog(ctx)
}

func checkDeliveryReferences(ctx context.Context, uow UoW, d *delivery.Delivery) error {
	vendorErr := requireLive(ctx, uow.VendorRepository(), "vendorId", d.VendorID())
	if vendorErr != nil && !errors.Is(vendorErr, errs.ErrValidation) {
		return vendorErr
	}
	markersErr := requireAllLive(ctx, uow.MarkerRepository(), "markerIds", d.MarkerIDs())
	return errors.Join(vendorErr, markersErr)
}
