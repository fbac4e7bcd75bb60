package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"warehouse/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"http error", echo.NewHTTPError(http.StatusUnauthorized, "nope"), http.StatusUnauthorized},
		{"missing reference", errs.NewValidationError("vendorId", 1), http.StatusBadRequest},
		{"required", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("name"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("pallets", -1, 0, "unbounded"), http.StatusBadRequest},
		{"not found", errs.NewObjectNotFoundError("deliveryId", 1), http.StatusNotFound},
		{"transition", errs.NewInvalidStateTransitionError("delivery", "Approved", "approve"), http.StatusConflict},
		{"conflict", fmt.Errorf("save: %w", errs.ErrConcurrencyConflict), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, toError(tt.err).Code)
		})
	}
}

func TestToError_HidesInternalMessages(t *testing.T) {
	got := toError(errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusText(http.StatusInternalServerError), got.Message)
}

func TestMissingReferences_CollectsJoinedAndWrappedErrors(t *testing.T) {
	err := fmt.Errorf("create delivery: %w", errors.Join(
		errs.NewValidationError("vendorId", 3),
		errors.Join(errs.NewValidationError("markerIds", 5, 8)),
	))

	got := missingReferences(err)

	assert.Equal(t, []MissingReference{
		{Param: "vendorId", IDs: []int64{3}},
		{Param: "markerIds", IDs: []int64{5, 8}},
	}, got)
}
