package zone

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// EntityType names zones in the change log.
const EntityType = "zone"

var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a physical location entries are routed through. A final zone marks
// completed placement: entries sitting in it are not moved again.
type Zone struct {
	kernel.Audit

	name      string
	isFinal   bool
	markerIDs []int64

	changes kernel.ChangeLog
}

// NewZone creates a zone. Marker ids are deduplicated; their existence is checked by the caller.
func NewZone(name string, isFinal bool, markerIDs []int64, actorID string, now time.Time) (*Zone, error) {
	audit, err := kernel.NewAudit(actorID, now)
	if err != nil {
		return nil, err
	}
	z := &Zone{Audit: audit, isFinal: isFinal}
	if err := errors.Join(z.setName(name), z.setMarkerIDs(markerIDs)); err != nil {
		return nil, err
	}
	z.changes.Record(kernel.ActionCreated, actorID, now, z.details())
	return z, nil
}

func RestoreZone(audit kernel.Audit, name string, isFinal bool, markerIDs []int64) (*Zone, error) {
	z := &Zone{Audit: audit, isFinal: isFinal}
	if err := errors.Join(audit.Validate(), z.setName(name), z.setMarkerIDs(markerIDs)); err != nil {
		return nil, err
	}
	return z, nil
}

func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	if err := z.Audit.Validate(); err != nil {
		return errors.Join(ErrZoneIsNotConstructed, err)
	}
	return nil
}

func (z *Zone) Name() string {
	return z.name
}

func (z *Zone) IsFinal() bool {
	return z.isFinal
}

// MarkerIDs returns a copy of the marker id set, sorted ascending.
func (z *Zone) MarkerIDs() []int64 {
	return append([]int64(nil), z.markerIDs...)
}

// Edit replaces name, final flag and marker set.
func (z *Zone) Edit(name string, isFinal bool, markerIDs []int64, actorID string, at time.Time) error {
	if err := errors.Join(z.setName(name), z.setMarkerIDs(markerIDs)); err != nil {
		return err
	}
	z.isFinal = isFinal
	if err := z.Touch(actorID, at); err != nil {
		return err
	}
	z.changes.Record(kernel.ActionModified, actorID, at, z.details())
	return nil
}

func (z *Zone) MarkDeleted(actorID string, at time.Time) error {
	if err := z.Audit.MarkDeleted(actorID, at); err != nil {
		return err
	}
	z.changes.Record(kernel.ActionDeleted, actorID, at, nil)
	return nil
}

func (z *Zone) Undelete(actorID string, at time.Time) error {
	if err := z.Audit.Undelete(actorID, at); err != nil {
		return err
	}
	z.changes.Record(kernel.ActionRestored, actorID, at, nil)
	return nil
}

func (z *Zone) PullChanges() []kernel.Change {
	return z.changes.Pull(EntityType, z.ID(), EntityType, z.ID())
}

func (z *Zone) details() map[string]any {
	return map[string]any{
		"name":      z.name,
		"isFinal":   z.isFinal,
		"markerIds": z.MarkerIDs(),
	}
}

func (z *Zone) setName(name string) error {
	v, err := kernel.ValidateText("name", name)
	if err != nil {
		return err
	}
	z.name = v
	return nil
}

func (z *Zone) setMarkerIDs(ids []int64) error {
	v, err := kernel.NormalizeIDs("markerIds", ids)
	if err != nil {
		return err
	}
	z.markerIDs = v
	return nil
}
