package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateZoneCommandIsNotConstructed = errors.New(
		"CreateZoneCommand must be created via NewCreateZoneCommand constructor",
	)
	ErrEditZoneCommandIsNotConstructed = errors.New(
		"EditZoneCommand must be created via NewEditZoneCommand constructor",
	)
	ErrZoneCommandIsNotConstructed = errors.New(
		"ZoneCommand must be created via its constructor",
	)
)

// ZoneDetails is the editable state of a zone.
type ZoneDetails struct {
	Name      string
	IsFinal   bool
	MarkerIDs []int64
}

type CreateZoneCommand struct {
	actorID string
	details ZoneDetails

	guard guard.ConstructorGuard
}

func NewCreateZoneCommand(actorID string, details ZoneDetails) (CreateZoneCommand, error) {
	if err := kernel.ValidateActorID(actorID); err != nil {
		return CreateZoneCommand{}, err
	}
	return CreateZoneCommand{
		actorID: actorID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateZoneCommandIsNotConstructed)
}

func (c CreateZoneCommand) ActorID() string {
	return c.actorID
}

func (c CreateZoneCommand) Details() ZoneDetails {
	return c.details
}

type EditZoneCommand struct {
	actorID string
	zoneID  int64
	details ZoneDetails

	guard guard.ConstructorGuard
}

func NewEditZoneCommand(actorID string, zoneID int64, details ZoneDetails) (EditZoneCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("zoneId", zoneID)); err != nil {
		return EditZoneCommand{}, err
	}
	return EditZoneCommand{
		actorID: actorID,
		zoneID:  zoneID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EditZoneCommand) Validate() error {
	return c.guard.Validate(ErrEditZoneCommandIsNotConstructed)
}

func (c EditZoneCommand) ActorID() string {
	return c.actorID
}

func (c EditZoneCommand) ZoneID() int64 {
	return c.zoneID
}

func (c EditZoneCommand) Details() ZoneDetails {
	return c.details
}

type ZoneCommand struct {
	actorID string
	zoneID  int64

	guard guard.ConstructorGuard
}

func NewZoneCommand(actorID string, zoneID int64) (ZoneCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("zoneId", zoneID)); err != nil {
		return ZoneCommand{}, err
	}
	return ZoneCommand{
		actorID: actorID,
		zoneID:  zoneID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ZoneCommand) Validate() error {
	return c.guard.Validate(ErrZoneCommandIsNotConstructed)
}

func (c ZoneCommand) ActorID() string {
	return c.actorID
}

func (c ZoneCommand) ZoneID() int64 {
	return c.zoneID
}
