package entry

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/delivery"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// EntityType names entries in the change log. Entry changes are filed under their delivery.
const EntityType = "entry"

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is a processing unit carved out of a delivery and located in a zone.
//
// Entry follows these invariants:
//   - deliveryID and zoneID are positive; deliveryID never changes
//   - quantities are non-negative
//   - finishedProcessing is only set after startedProcessing
type Entry struct {
	kernel.Audit

	deliveryID         int64
	zoneID             int64
	quantities         kernel.Quantities
	startedProcessing  *time.Time
	finishedProcessing *time.Time

	changes kernel.ChangeLog
}

// NewEntry allocates quantities of a delivery into a zone. Existence of both is checked by the caller.
func NewEntry(deliveryID, zoneID int64, q kernel.Quantities, actorID string, now time.Time) (*Entry, error) {
	audit, err := kernel.NewAudit(actorID, now)
	if err != nil {
		return nil, err
	}
	e := &Entry{Audit: audit, quantities: q}
	if err := errors.Join(e.setDeliveryID(deliveryID), e.setZoneID(zoneID)); err != nil {
		return nil, err
	}
	e.changes.Record(kernel.ActionCreated, actorID, now, map[string]any{
		"zoneId":   e.zoneID,
		"pallets":  q.Pallets(),
		"packages": q.Packages(),
		"pieces":   q.Pieces(),
	})
	return e, nil
}

func RestoreEntry(
	audit kernel.Audit,
	deliveryID, zoneID int64,
	q kernel.Quantities,
	startedProcessing, finishedProcessing *time.Time,
) (*Entry, error) {
	e := &Entry{
		Audit:              audit,
		quantities:         q,
		startedProcessing:  startedProcessing,
		finishedProcessing: finishedProcessing,
	}
	var processingErr error
	if finishedProcessing != nil && startedProcessing == nil {
		processingErr = errs.NewValueIsInvalidError("finishedProcessing")
	}
	if err := errors.Join(
		audit.Validate(),
		e.setDeliveryID(deliveryID),
		e.setZoneID(zoneID),
		processingErr,
	); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	if err := e.Audit.Validate(); err != nil {
		return errors.Join(ErrEntryIsNotConstructed, err)
	}
	return nil
}

func (e *Entry) DeliveryID() int64 {
	return e.deliveryID
}

func (e *Entry) ZoneID() int64 {
	return e.zoneID
}

func (e *Entry) Quantities() kernel.Quantities {
	return e.quantities
}

func (e *Entry) StartedProcessing() *time.Time {
	return e.startedProcessing
}

func (e *Entry) FinishedProcessing() *time.Time {
	return e.finishedProcessing
}

func (e *Entry) Status() Status {
	return DeriveStatus(e.startedProcessing, e.finishedProcessing)
}

// Edit changes the allocated quantities. Finished entries are frozen.
func (e *Entry) Edit(q kernel.Quantities, actorID string, at time.Time) error {
	if e.Status() == Finished {
		return errs.NewInvalidStateTransitionError(EntityType, Finished.String(), "edit")
	}
	if err := e.Touch(actorID, at); err != nil {
		return err
	}
	e.quantities = q
	e.changes.Record(kernel.ActionModified, actorID, at, map[string]any{
		"pallets":  q.Pallets(),
		"packages": q.Packages(),
		"pieces":   q.Pieces(),
	})
	return nil
}

// MoveToZone reassigns the entry. Moving into the current zone is a no-op and
// reports false; an entry in a final zone cannot be moved.
func (e *Entry) MoveToZone(zoneID int64, currentZoneIsFinal bool, actorID string, at time.Time) (bool, error) {
	if zoneID <= 0 {
		return false, errs.NewValueIsRequiredError("zoneId")
	}
	if zoneID == e.zoneID {
		return false, nil
	}
	if currentZoneIsFinal {
		return false, errs.NewInvalidStateTransitionError(EntityType, "in final zone", "move")
	}
	if err := e.Touch(actorID, at); err != nil {
		return false, err
	}
	from := e.zoneID
	e.zoneID = zoneID
	e.changes.Record(kernel.ActionMoved, actorID, at, map[string]any{
		"fromZoneId": from,
		"toZoneId":   zoneID,
	})
	return true, nil
}

func (e *Entry) StartProcessing(actorID string, at time.Time) error {
	if _, err := e.Status().StartProcessing(); err != nil {
		return err
	}
	if err := e.Touch(actorID, at); err != nil {
		return err
	}
	e.startedProcessing = &at
	e.changes.Record(kernel.ActionProcessingStarted, actorID, at, nil)
	return nil
}

func (e *Entry) FinishProcessing(actorID string, at time.Time) error {
	if _, err := e.Status().FinishProcessing(); err != nil {
		return err
	}
	if err := e.Touch(actorID, at); err != nil {
		return err
	}
	e.finishedProcessing = &at
	e.changes.Record(kernel.ActionProcessingFinished, actorID, at, nil)
	return nil
}

func (e *Entry) MarkDeleted(actorID string, at time.Time) error {
	if err := e.Audit.MarkDeleted(actorID, at); err != nil {
		return err
	}
	e.changes.Record(kernel.ActionDeleted, actorID, at, nil)
	return nil
}

func (e *Entry) Undelete(actorID string, at time.Time) error {
	if err := e.Audit.Undelete(actorID, at); err != nil {
		return err
	}
	e.changes.Record(kernel.ActionRestored, actorID, at, nil)
	return nil
}

func (e *Entry) PullChanges() []kernel.Change {
	return e.changes.Pull(EntityType, e.ID(), delivery.EntityType, e.deliveryID)
}

func (e *Entry) setDeliveryID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("deliveryId")
	}
	e.deliveryID = id
	return nil
}

func (e *Entry) setZoneID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("zoneId")
	}
	e.zoneID = id
	return nil
}
