package errs

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrValidation marks a request that references entities which do not exist (or are deleted).
	ErrValidation = errors.New("validation failed")

	// ErrInvalidStateTransition marks an operation that is not allowed from the entity's current state.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// ValidationError carries the referenced ids that failed to resolve to live rows.
// IDs is sorted ascending and free of duplicates.
type ValidationError struct {
	ParamName string
	IDs       []int64
}

func NewValidationError(paramName string, ids ...int64) *ValidationError {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	return &ValidationError{
		ParamName: paramName,
		IDs:       slices.Compact(sorted),
	}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return fmt.Sprintf("%s: %s not found: %s", ErrValidation, e.ParamName, strings.Join(parts, ","))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InvalidStateTransitionError reports that Action cannot be applied to Entity while it is in State.
type InvalidStateTransitionError struct {
	Entity string
	State  string
	Action string
}

func NewInvalidStateTransitionError(entity, state, action string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{
		Entity: entity,
		State:  state,
		Action: action,
	}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in state %s", ErrInvalidStateTransition, e.Action, e.Entity, e.State)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}
