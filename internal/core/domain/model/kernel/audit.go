package kernel

import (
	"errors"
	"fmt"
	"time"

	"warehouse/internal/pkg/errs"
)

// MaxActorIDLength matches the width of the user id columns.
const MaxActorIDLength = 255

var (
	// ErrAuditIsNotConstructed is returned for an envelope that was created neither by NewAudit nor RestoreAudit.
	ErrAuditIsNotConstructed = errors.New("Audit must be created via NewAudit or RestoreAudit")

	ErrAlreadyDeleted = fmt.Errorf("%w: entity is already deleted", errs.ErrInvalidStateTransition)
	ErrNotDeleted     = fmt.Errorf("%w: entity is not deleted", errs.ErrInvalidStateTransition)
)

// SoftDeletable is the capability every persisted entity exposes to the generic repository.
type SoftDeletable interface {
	ID() int64
	AssignID(id int64) error
	IsDeleted() bool
	MarkDeleted(actorID string, at time.Time) error
	Undelete(actorID string, at time.Time) error
	Version() int
	AdvanceVersion()
}

// Audit is the provenance envelope embedded in every entity.
//
// Invariants:
//   - createdAt and createdByUserID are set once and never change
//   - isDeleted, deletedAt and deletedByUserID are set and cleared together
//   - id is immutable once assigned
type Audit struct {
	id int64

	createdAt       time.Time
	createdByUserID string

	lastModifiedAt       *time.Time
	lastModifiedByUserID *string

	isDeleted       bool
	deletedAt       *time.Time
	deletedByUserID *string

	version int

	isConstructed bool
}

// AuditSnapshot is the flat persisted form of an Audit.
type AuditSnapshot struct {
	ID                   int64
	CreatedAt            time.Time
	CreatedByUserID      string
	LastModifiedAt       *time.Time
	LastModifiedByUserID *string
	IsDeleted            bool
	DeletedAt            *time.Time
	DeletedByUserID      *string
	Version              int
}

// NewAudit stamps creation provenance for an entity that is not yet stored.
func NewAudit(actorID string, now time.Time) (Audit, error) {
	if err := ValidateActorID(actorID); err != nil {
		return Audit{}, err
	}
	if now.IsZero() {
		return Audit{}, errs.NewValueIsRequiredError("createdAt")
	}
	return Audit{
		createdAt:       now,
		createdByUserID: actorID,
		isConstructed:   true,
	}, nil
}

// RestoreAudit rebuilds an envelope from storage and rejects rows that break the deletion invariant.
func RestoreAudit(s AuditSnapshot) (Audit, error) {
	a := Audit{
		id:                   s.ID,
		createdAt:            s.CreatedAt,
		createdByUserID:      s.CreatedByUserID,
		lastModifiedAt:       s.LastModifiedAt,
		lastModifiedByUserID: s.LastModifiedByUserID,
		isDeleted:            s.IsDeleted,
		deletedAt:            s.DeletedAt,
		deletedByUserID:      s.DeletedByUserID,
		version:              s.Version,
		isConstructed:        true,
	}
	if s.ID <= 0 {
		return Audit{}, errs.NewValueIsOutOfRangeError("id", s.ID, 1, "max int64")
	}
	if err := a.Validate(); err != nil {
		return Audit{}, err
	}
	return a, nil
}

// Validate checks construction and the deletion invariant.
func (a *Audit) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAuditIsNotConstructed
	}
	if a.createdByUserID == "" || a.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdBy")
	}
	if a.isDeleted != (a.deletedAt != nil) || a.isDeleted != (a.deletedByUserID != nil) {
		return errs.NewValueIsInvalidErrorWithCause("deleted",
			fmt.Errorf("isDeleted=%t, deletedAt set=%t, deletedBy set=%t",
				a.isDeleted, a.deletedAt != nil, a.deletedByUserID != nil))
	}
	if (a.lastModifiedAt == nil) != (a.lastModifiedByUserID == nil) {
		return errs.NewValueIsInvalidError("lastModified")
	}
	return nil
}

func (a *Audit) ID() int64 {
	return a.id
}

// AssignID records the store-generated key. It fails if a key is already present.
func (a *Audit) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("id", id, 1, "max int64")
	}
	if a.id != 0 && a.id != id {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("already assigned %d", a.id))
	}
	a.id = id
	return nil
}

func (a *Audit) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Audit) CreatedByUserID() string {
	return a.createdByUserID
}

func (a *Audit) LastModifiedAt() *time.Time {
	return a.lastModifiedAt
}

func (a *Audit) LastModifiedByUserID() *string {
	return a.lastModifiedByUserID
}

func (a *Audit) IsDeleted() bool {
	return a.isDeleted
}

func (a *Audit) DeletedAt() *time.Time {
	return a.deletedAt
}

func (a *Audit) DeletedByUserID() *string {
	return a.deletedByUserID
}

func (a *Audit) Version() int {
	return a.version
}

// AdvanceVersion is called by the repository after a successful optimistic update.
func (a *Audit) AdvanceVersion() {
	a.version++
}

// Touch stamps the last modification.
func (a *Audit) Touch(actorID string, at time.Time) error {
	if err := ValidateActorID(actorID); err != nil {
		return err
	}
	a.lastModifiedAt = &at
	a.lastModifiedByUserID = &actorID
	return nil
}

func (a *Audit) MarkDeleted(actorID string, at time.Time) error {
	if err := ValidateActorID(actorID); err != nil {
		return err
	}
	if a.isDeleted {
		return ErrAlreadyDeleted
	}
	a.isDeleted = true
	a.deletedAt = &at
	a.deletedByUserID = &actorID
	return nil
}

// Undelete clears the deletion fields and stamps the restoring actor as last modifier.
func (a *Audit) Undelete(actorID string, at time.Time) error {
	if err := ValidateActorID(actorID); err != nil {
		return err
	}
	if !a.isDeleted {
		return ErrNotDeleted
	}
	a.isDeleted = false
	a.deletedAt = nil
	a.deletedByUserID = nil
	a.lastModifiedAt = &at
	a.lastModifiedByUserID = &actorID
	return nil
}

func (a *Audit) Snapshot() AuditSnapshot {
	return AuditSnapshot{
		ID:                   a.id,
		CreatedAt:            a.createdAt,
		CreatedByUserID:      a.createdByUserID,
		LastModifiedAt:       a.lastModifiedAt,
		LastModifiedByUserID: a.lastModifiedByUserID,
		IsDeleted:            a.isDeleted,
		DeletedAt:            a.deletedAt,
		DeletedByUserID:      a.deletedByUserID,
		Version:              a.version,
	}
}

// ValidateActorID rejects empty or oversized actor ids.
func ValidateActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	if len(actorID) > MaxActorIDLength {
		return errs.NewValueIsOutOfRangeError("actorId length", len(actorID), 1, MaxActorIDLength)
	}
	return nil
}
