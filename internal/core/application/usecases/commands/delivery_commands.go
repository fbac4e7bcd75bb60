package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrEditDeliveryCommandIsNotConstructed = errors.New(
		"EditDeliveryCommand must be created via NewEditDeliveryCommand constructor",
	)
	ErrDeliveryCommandIsNotConstructed = errors.New(
		"DeliveryCommand must be created via its constructor",
	)
)

// CreateDeliveryCommand registers a new pending delivery from a vendor.
//
// Example:
//
//	cmd, err := NewCreateDeliveryCommand("user-1", delivery.Details{
//	    VendorID:     vendorID,
//	    DeliveryTime: time.Now(),
//	    Quantities:   q,
//	    MarkerIDs:    []int64{5, 9},
//	})
//	if err != nil {
//	    return err
//	}
//	id, err := NewCreateDeliveryCommandHandler(uowFactory, time.Now).Handle(ctx, cmd)
type CreateDeliveryCommand struct {
	actorID string
	details delivery.Details

	guard guard.ConstructorGuard
}

func NewCreateDeliveryCommand(actorID string, details delivery.Details) (CreateDeliveryCommand, error) {
	if err := kernel.ValidateActorID(actorID); err != nil {
		return CreateDeliveryCommand{}, err
	}
	return CreateDeliveryCommand{
		actorID: actorID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

func (c CreateDeliveryCommand) ActorID() string {
	return c.actorID
}

func (c CreateDeliveryCommand) Details() delivery.Details {
	return c.details
}

// EditDeliveryCommand replaces the details of a delivery that is not approved yet.
type EditDeliveryCommand struct {
	actorID    string
	deliveryID int64
	details    delivery.Details

	guard guard.ConstructorGuard
}

func NewEditDeliveryCommand(actorID string, deliveryID int64, details delivery.Details) (EditDeliveryCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("deliveryId", deliveryID)); err != nil {
		return EditDeliveryCommand{}, err
	}
	return EditDeliveryCommand{
		actorID:    actorID,
		deliveryID: deliveryID,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c EditDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrEditDeliveryCommandIsNotConstructed)
}

func (c EditDeliveryCommand) ActorID() string {
	return c.actorID
}

func (c EditDeliveryCommand) DeliveryID() int64 {
	return c.deliveryID
}

func (c EditDeliveryCommand) Details() delivery.Details {
	return c.details
}

// DeliveryCommand addresses one delivery by id. Approve, Delete and Restore take it.
type DeliveryCommand struct {
	actorID    string
	deliveryID int64

	guard guard.ConstructorGuard
}

func NewDeliveryCommand(actorID string, deliveryID int64) (DeliveryCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("deliveryId", deliveryID)); err != nil {
		return DeliveryCommand{}, err
	}
	return DeliveryCommand{
		actorID:    actorID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDeliveryCommandIsNotConstructed)
}

func (c DeliveryCommand) ActorID() string {
	return c.actorID
}

func (c DeliveryCommand) DeliveryID() int64 {
	return c.deliveryID
}

func validateID(param string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
