package marker

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
)

// EntityType names markers in the change log.
const EntityType = "marker"

// ErrMarkerIsNotConstructed is returned when a Marker was not created by NewMarker or RestoreMarker.
var ErrMarkerIsNotConstructed = errors.New("Marker must be created via NewMarker constructor")

// Marker is a descriptive tag attached to vendors, zones and deliveries.
// It has no lifecycle beyond soft-delete.
type Marker struct {
	kernel.Audit

	name    string
	changes kernel.ChangeLog
}

func NewMarker(name, actorID string, now time.Time) (*Marker, error) {
	audit, err := kernel.NewAudit(actorID, now)
	if err != nil {
		return nil, err
	}
	m := &Marker{Audit: audit}
	if err := m.setName(name); err != nil {
		return nil, err
	}
	m.changes.Record(kernel.ActionCreated, actorID, now, map[string]any{"name": m.name})
	return m, nil
}

// RestoreMarker rebuilds a Marker from storage.
func RestoreMarker(audit kernel.Audit, name string) (*Marker, error) {
	m := &Marker{Audit: audit}
	if err := errors.Join(audit.Validate(), m.setName(name)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Marker) Validate() error {
	if m == nil {
		return ErrMarkerIsNotConstructed
	}
	if err := m.Audit.Validate(); err != nil {
		return errors.Join(ErrMarkerIsNotConstructed, err)
	}
	return nil
}

func (m *Marker) Name() string {
	return m.name
}

func (m *Marker) Rename(name, actorID string, at time.Time) error {
	if err := m.setName(name); err != nil {
		return err
	}
	if err := m.Touch(actorID, at); err != nil {
		return err
	}
	m.changes.Record(kernel.ActionModified, actorID, at, map[string]any{"name": m.name})
	return nil
}

func (m *Marker) MarkDeleted(actorID string, at time.Time) error {
	if err := m.Audit.MarkDeleted(actorID, at); err != nil {
		return err
	}
	m.changes.Record(kernel.ActionDeleted, actorID, at, nil)
	return nil
}

func (m *Marker) Undelete(actorID string, at time.Time) error {
	if err := m.Audit.Undelete(actorID, at); err != nil {
		return err
	}
	m.changes.Record(kernel.ActionRestored, actorID, at, nil)
	return nil
}

func (m *Marker) PullChanges() []kernel.Change {
	return m.changes.Pull(EntityType, m.ID(), EntityType, m.ID())
}

func (m *Marker) setName(name string) error {
	v, err := kernel.ValidateText("name", name)
	if err != nil {
		return err
	}
	m.name = v
	return nil
}
