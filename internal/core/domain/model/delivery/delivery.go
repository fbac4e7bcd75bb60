package delivery

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// EntityType names deliveries in the change log. Deliveries are also the
// aggregate their entries' changes are filed under.
const EntityType = "delivery"

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Delivery is a shipment from one vendor. It is the aggregate root of the receiving
// workflow: it is approved, then decomposed into entries whose processing drives its status.
//
// Delivery follows these invariants:
//   - vendorID is positive
//   - quantities are non-negative
//   - isApproved is true exactly when approvedOn is set
//   - details cannot change after approval
//   - finishedProcessing is only set after startedProcessing
type Delivery struct {
	kernel.Audit

	vendorID        int64
	systemNumber    string
	receptionNumber string
	truckNumber     string
	cmr             string
	deliveryTime    time.Time
	quantities      kernel.Quantities
	markerIDs       []int64

	status             Status
	isApproved         bool
	approvedOn         *time.Time
	startedProcessing  *time.Time
	finishedProcessing *time.Time

	changes kernel.ChangeLog
}

// Details is the editable part of a delivery.
type Details struct {
	VendorID        int64
	SystemNumber    string
	ReceptionNumber string
	TruckNumber     string
	Cmr             string
	DeliveryTime    time.Time
	Quantities      kernel.Quantities
	MarkerIDs       []int64
}

// State is the lifecycle part of a delivery as persisted.
type State struct {
	Status             Status
	IsApproved         bool
	ApprovedOn         *time.Time
	StartedProcessing  *time.Time
	FinishedProcessing *time.Time
}

// NewDelivery creates a pending, unapproved delivery.
// The existence of the vendor and markers is checked by the caller.
func NewDelivery(d Details, actorID string, now time.Time) (*Delivery, error) {
	audit, err := kernel.NewAudit(actorID, now)
	if err != nil {
		return nil, err
	}
	delivery := &Delivery{
		Audit:  audit,
		status: Pending,
	}
	if err := delivery.apply(d); err != nil {
		return nil, err
	}
	delivery.changes.Record(kernel.ActionCreated, actorID, now, delivery.details())
	return delivery, nil
}

// RestoreDelivery rebuilds a delivery from storage.
func RestoreDelivery(audit kernel.Audit, d Details, s State) (*Delivery, error) {
	delivery := &Delivery{
		Audit:              audit,
		status:             s.Status,
		isApproved:         s.IsApproved,
		approvedOn:         s.ApprovedOn,
		startedProcessing:  s.StartedProcessing,
		finishedProcessing: s.FinishedProcessing,
	}
	if err := errors.Join(
		audit.Validate(),
		delivery.apply(d),
		s.Status.Validate(),
		validateState(s),
	); err != nil {
		return nil, err
	}
	return delivery, nil
}

func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	if err := d.Audit.Validate(); err != nil {
		return errors.Join(ErrDeliveryIsNotConstructed, err)
	}
	return nil
}

func (d *Delivery) VendorID() int64 {
	return d.vendorID
}

func (d *Delivery) SystemNumber() string {
	return d.systemNumber
}

func (d *Delivery) ReceptionNumber() string {
	return d.receptionNumber
}

func (d *Delivery) TruckNumber() string {
	return d.truckNumber
}

func (d *Delivery) Cmr() string {
	return d.cmr
}

func (d *Delivery) DeliveryTime() time.Time {
	return d.deliveryTime
}

func (d *Delivery) Quantities() kernel.Quantities {
	return d.quantities
}

func (d *Delivery) Status() Status {
	return d.status
}

func (d *Delivery) IsApproved() bool {
	return d.isApproved
}

func (d *Delivery) ApprovedOn() *time.Time {
	return d.approvedOn
}

func (d *Delivery) StartedProcessing() *time.Time {
	return d.startedProcessing
}

func (d *Delivery) FinishedProcessing() *time.Time {
	return d.finishedProcessing
}

func (d *Delivery) MarkerIDs() []int64 {
	return append([]int64(nil), d.markerIDs...)
}

// Edit replaces the delivery details. It is rejected once the delivery is approved.
func (d *Delivery) Edit(details Details, actorID string, at time.Time) error {
	if d.isApproved {
		return errs.NewInvalidStateTransitionError(EntityType, d.status.String(), "edit")
	}
	if err := d.apply(details); err != nil {
		return err
	}
	if err := d.Touch(actorID, at); err != nil {
		return err
	}
	d.changes.Record(kernel.ActionModified, actorID, at, d.details())
	return nil
}

// Approve sets the approval flag. Approving twice is an invalid transition.
func (d *Delivery) Approve(actorID string, at time.Time) error {
	if d.isApproved {
		return errs.NewInvalidStateTransitionError(EntityType, d.status.String(), "approve")
	}
	status, err := d.status.Approve()
	if err != nil {
		return err
	}
	if err := d.Touch(actorID, at); err != nil {
		return err
	}
	d.status = status
	d.isApproved = true
	d.approvedOn = &at
	d.changes.Record(kernel.ActionApproved, actorID, at, map[string]any{"status": status.String()})
	return nil
}

// StartProcessing is driven by the first entry that starts. It reports whether anything changed.
func (d *Delivery) StartProcessing(actorID string, at time.Time) (bool, error) {
	status, err := d.status.StartProcessing()
	if err != nil {
		return false, err
	}
	if d.status == status {
		return false, nil
	}
	if err := d.Touch(actorID, at); err != nil {
		return false, err
	}
	d.status = status
	d.startedProcessing = &at
	d.changes.Record(kernel.ActionProcessingStarted, actorID, at, nil)
	return true, nil
}

// FinishProcessing is driven by the last live entry that finishes.
func (d *Delivery) FinishProcessing(actorID string, at time.Time) error {
	status, err := d.status.FinishProcessing()
	if err != nil {
		return err
	}
	if err := d.Touch(actorID, at); err != nil {
		return err
	}
	d.status = status
	d.finishedProcessing = &at
	d.changes.Record(kernel.ActionProcessingFinished, actorID, at, nil)
	return nil
}

// AcceptsEntries reports whether new entries may be allocated.
func (d *Delivery) AcceptsEntries() error {
	if d.status == Finished {
		return errs.NewInvalidStateTransitionError(EntityType, d.status.String(), "add entries to")
	}
	return nil
}

func (d *Delivery) MarkDeleted(actorID string, at time.Time) error {
	if err := d.Audit.MarkDeleted(actorID, at); err != nil {
		return err
	}
	d.changes.Record(kernel.ActionDeleted, actorID, at, nil)
	return nil
}

func (d *Delivery) Undelete(actorID string, at time.Time) error {
	if err := d.Audit.Undelete(actorID, at); err != nil {
		return err
	}
	d.changes.Record(kernel.ActionRestored, actorID, at, nil)
	return nil
}

func (d *Delivery) PullChanges() []kernel.Change {
	return d.changes.Pull(EntityType, d.ID(), EntityType, d.ID())
}

func (d *Delivery) details() map[string]any {
	return map[string]any{
		"vendorId":        d.vendorID,
		"systemNumber":    d.systemNumber,
		"receptionNumber": d.receptionNumber,
		"truckNumber":     d.truckNumber,
		"cmr":             d.cmr,
		"deliveryTime":    d.deliveryTime,
		"pallets":         d.quantities.Pallets(),
		"packages":        d.quantities.Packages(),
		"pieces":          d.quantities.Pieces(),
		"markerIds":       d.MarkerIDs(),
	}
}

func (d *Delivery) apply(details Details) error {
	var vendorErr error
	if details.VendorID <= 0 {
		vendorErr = errs.NewValueIsRequiredError("vendorId")
	}
	var timeErr error
	if details.DeliveryTime.IsZero() {
		timeErr = errs.NewValueIsRequiredError("deliveryTime")
	}
	systemNumber, systemErr := kernel.ValidateOptionalText("systemNumber", details.SystemNumber)
	receptionNumber, receptionErr := kernel.ValidateOptionalText("receptionNumber", details.ReceptionNumber)
	truckNumber, truckErr := kernel.ValidateOptionalText("truckNumber", details.TruckNumber)
	cmr, cmrErr := kernel.ValidateOptionalText("cmr", details.Cmr)
	markerIDs, markersErr := kernel.NormalizeIDs("markerIds", details.MarkerIDs)

	if err := errors.Join(vendorErr, timeErr, systemErr, receptionErr, truckErr, cmrErr, markersErr); err != nil {
		return err
	}

	d.vendorID = details.VendorID
	d.systemNumber = systemNumber
	d.receptionNumber = receptionNumber
	d.truckNumber = truckNumber
	d.cmr = cmr
	d.deliveryTime = details.DeliveryTime
	d.quantities = details.Quantities
	d.markerIDs = markerIDs
	return nil
}

func validateState(s State) error {
	if s.IsApproved != (s.ApprovedOn != nil) {
		return errs.NewValueIsInvalidError("approvedOn")
	}
	if s.FinishedProcessing != nil && s.StartedProcessing == nil {
		return errs.NewValueIsInvalidError("finishedProcessing")
	}
	return nil
}
