// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries read tables directly and return flat read models; they never load
// aggregates and never write.
package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"

	"gorm.io/gorm"
)

var (
	ErrGetByIDQueryIsNotConstructed = errors.New(
		"GetByIDQuery must be created via NewGetByIDQuery constructor",
	)
	ErrListQueryIsNotConstructed = errors.New(
		"ListQuery must be created via NewListQuery constructor",
	)
)

// Visibility selects rows by their soft-delete state.
type Visibility int

const (
	Live Visibility = iota
	WithDeleted
	OnlyDeleted
)

func (v Visibility) Validate() error {
	if v < Live || v > OnlyDeleted {
		return errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("%d is not a valid visibility", v))
	}
	return nil
}

func (v Visibility) String() string {
	switch v {
	case Live:
		return "live"
	case WithDeleted:
		return "all"
	case OnlyDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ParseVisibility accepts "live", "all" and "deleted". Empty means live.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "live":
		return Live, nil
	case "all":
		return WithDeleted, nil
	case "deleted":
		return OnlyDeleted, nil
	default:
		return Live, errs.NewValueIsInvalidErrorWithCause("visibility", fmt.Errorf("%q is not a valid visibility", s))
	}
}

func (v Visibility) scope(db *gorm.DB) *gorm.DB {
	switch v {
	case WithDeleted:
		return db
	case OnlyDeleted:
		return db.Where("is_deleted = ?", true)
	default:
		return db.Where("is_deleted = ?", false)
	}
}

// GetByIDQuery reads one row of any entity.
type GetByIDQuery struct {
	id         int64
	visibility Visibility

	guard guard.ConstructorGuard
}

func NewGetByIDQuery(id int64, visibility Visibility) (GetByIDQuery, error) {
	var idErr error
	if id <= 0 {
		idErr = errs.NewValueIsRequiredError("id")
	}
	if err := errors.Join(idErr, visibility.Validate()); err != nil {
		return GetByIDQuery{}, err
	}
	return GetByIDQuery{id: id, visibility: visibility, guard: guard.NewConstructorGuard()}, nil
}

func (q GetByIDQuery) Validate() error {
	return q.guard.Validate(ErrGetByIDQueryIsNotConstructed)
}

func (q GetByIDQuery) ID() int64 {
	return q.id
}

func (q GetByIDQuery) Visibility() Visibility {
	return q.visibility
}

// ListQuery reads every row of an entity in id order.
type ListQuery struct {
	visibility Visibility

	guard guard.ConstructorGuard
}

func NewListQuery(visibility Visibility) (ListQuery, error) {
	if err := visibility.Validate(); err != nil {
		return ListQuery{}, err
	}
	return ListQuery{visibility: visibility, guard: guard.NewConstructorGuard()}, nil
}

func (q ListQuery) Validate() error {
	return q.guard.Validate(ErrListQueryIsNotConstructed)
}

func (q ListQuery) Visibility() Visibility {
	return q.visibility
}

// AuditResponse is the provenance part of every read model.
type AuditResponse struct {
	ID             int64      `json:"id"`
	CreatedAt      time.Time  `json:"createdAt"`
	CreatedBy      string     `json:"createdBy" gorm:"column:created_by_user_id"`
	LastModifiedAt *time.Time `json:"lastModifiedAt,omitempty"`
	LastModifiedBy *string    `json:"lastModifiedBy,omitempty" gorm:"column:last_modified_by_user_id"`
	IsDeleted      bool       `json:"isDeleted"`
	DeletedAt      *time.Time `json:"deletedAt,omitempty"`
	DeletedBy      *string    `json:"deletedBy,omitempty" gorm:"column:deleted_by_user_id"`
}

func getOne[T any](ctx context.Context, db *gorm.DB, table, entity string, q GetByIDQuery) (T, error) {
	var out T
	if err := q.Validate(); err != nil {
		return out, err
	}
	err := db.WithContext(ctx).
		Table(table).
		Scopes(q.visibility.scope).
		Where("id = ?", q.id).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return out, errs.NewObjectNotFoundError(entity, q.id)
	}
	return out, err
}

func listAll[T any](ctx context.Context, db *gorm.DB, table string, q ListQuery) ([]T, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	out := make([]T, 0)
	err := db.WithContext(ctx).
		Table(table).
		Scopes(q.visibility.scope).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// loadLinks reads an association table and groups target ids by owner, ascending.
func loadLinks(ctx context.Context, db *gorm.DB, table, ownerColumn, targetColumn string, ownerIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		Owner  int64
		Target int64
	}
	err := db.WithContext(ctx).
		Table(table).
		Select(ownerColumn+" AS owner, "+targetColumn+" AS target").
		Where(ownerColumn+" IN ?", ownerIDs).
		Order(ownerColumn).
		Order(targetColumn).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.Owner] = append(out[row.Owner], row.Target)
	}
	return out, nil
}

func linksOrEmpty(links map[int64][]int64, id int64) []int64 {
	if ids, ok := links[id]; ok {
		return ids
	}
	return []int64{}
}
