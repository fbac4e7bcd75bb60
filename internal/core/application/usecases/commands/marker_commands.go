package commands

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/guard"
)

var (
	ErrCreateMarkerCommandIsNotConstructed = errors.New(
		"CreateMarkerCommand must be created via NewCreateMarkerCommand constructor",
	)
	ErrRenameMarkerCommandIsNotConstructed = errors.New(
		"RenameMarkerCommand must be created via NewRenameMarkerCommand constructor",
	)
	ErrMarkerCommandIsNotConstructed = errors.New(
		"MarkerCommand must be created via its constructor",
	)
)

type CreateMarkerCommand struct {
	actorID string
	name    string

	guard guard.ConstructorGuard
}

func NewCreateMarkerCommand(actorID, name string) (CreateMarkerCommand, error) {
	if err := kernel.ValidateActorID(actorID); err != nil {
		return CreateMarkerCommand{}, err
	}
	return CreateMarkerCommand{
		actorID: actorID,
		name:    name,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateMarkerCommand) Validate() error {
	return c.guard.Validate(ErrCreateMarkerCommandIsNotConstructed)
}

func (c CreateMarkerCommand) ActorID() string {
	return c.actorID
}

func (c CreateMarkerCommand) Name() string {
	return c.name
}

type RenameMarkerCommand struct {
	actorID  string
	markerID int64
	name     string

	guard guard.ConstructorGuard
}

func NewRenameMarkerCommand(actorID string, markerID int64, name string) (RenameMarkerCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("markerId", markerID)); err != nil {
		return RenameMarkerCommand{}, err
	}
	return RenameMarkerCommand{
		actorID:  actorID,
		markerID: markerID,
		name:     name,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RenameMarkerCommand) Validate() error {
	return c.guard.Validate(ErrRenameMarkerCommandIsNotConstructed)
}

func (c RenameMarkerCommand) ActorID() string {
	return c.actorID
}

func (c RenameMarkerCommand) MarkerID() int64 {
	return c.markerID
}

func (c RenameMarkerCommand) Name() string {
	return c.name
}

type MarkerCommand struct {
	actorID  string
	markerID int64

	guard guard.ConstructorGuard
}

func NewMarkerCommand(actorID string, markerID int64) (MarkerCommand, error) {
	if err := errors.Join(kernel.ValidateActorID(actorID), validateID("markerId", markerID)); err != nil {
		return MarkerCommand{}, err
	}
	return MarkerCommand{
		actorID:  actorID,
		markerID: markerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c MarkerCommand) Validate() error {
	return c.guard.Validate(ErrMarkerCommandIsNotConstructed)
}

func (c MarkerCommand) ActorID() string {
	return c.actorID
}

func (c MarkerCommand) MarkerID() int64 {
	return c.markerID
}
