package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/vendor"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateVendorCommandIsNotConstructed = errors.New(
		"CreateVendorCommand must be created via NewCreateVendorCommand constructor",
	)
	ErrEditVendorCommandIsNotConstructed = errors.New(
		"EditVendorCommand must be created via NewEditVendorCommand constructor",
	)
	ErrVendorCommandIsNotConstructed = errors.New(
		"VendorCommand must be created via its constructor",
	)
)

type CreateVendorCommand struct {
	actorID string
	details vendor.Details

	guard guard.ConstructorGuard
}

func NewCreateVendorCommand(actorID string, details vendor.Details) (CreateVendorCommand, error) {
	if err := kernel.ValidateActorID(actorID); err != nil {
		return CreateVendorCommand{}, err
	}
	return CreateVendorCommand{
		actorID: actorID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateVendorCommand) Validate() error {
	return c.guard.Validate(ErrCreateVendorCommandIsNotConstructed)
}

func (c CreateVendorCommand) ActorID() string {
	return c.actorID
}

func (c CreateVendorCommand) Details() vendor.Details {
	return c.details
}

type EditVendorCommand struct {
	actorID  string
	vendorID int64
	details  vendor.Details

	guard guard.ConstructorGuard
}

func NewEditVendorCommand(actorID string, vendorID int64, details vendor.Details) (EditVendorCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("vendorId", vendorID)); err != nil {
		return EditVendorCommand{}, err
	}
	return EditVendorCommand{
		actorID:  actorID,
		vendorID: vendorID,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c EditVendorCommand) Validate() error {
	return c.guard.Validate(ErrEditVendorCommandIsNotConstructed)
}

func (c EditVendorCommand) ActorID() string {
	return c.actorID
}

func (c EditVendorCommand) VendorID() int64 {
	return c.vendorID
}

func (c EditVendorCommand) Details() vendor.Details {
	return c.details
}

// VendorCommand addresses one vendor by id for Delete and Restore.
type VendorCommand struct {
	actorID  string
	vendorID int64

	guard guard.ConstructorGuard
}

func NewVendorCommand(actorID string, vendorID int64) (VendorCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("vendorId", vendorID)); err != nil {
		return VendorCommand{}, err
	}
	return VendorCommand{
		actorID:  actorID,
		vendorID: vendorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c VendorCommand) Validate() error {
	return c.guard.Validate(ErrVendorCommandIsNotConstructed)
}

func (c VendorCommand) ActorID() string {
	return c.actorID
}

func (c VendorCommand) VendorID() int64 {
	return c.vendorID
}
