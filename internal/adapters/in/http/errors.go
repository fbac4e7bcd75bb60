package http

import (
	"errors"
	"net/http"

	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed request.
type Error struct {
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Missing []MissingReference `json:"missing,omitempty"`
	Fields  []FieldError       `json:"fields,omitempty"`
}

// MissingReference lists the ids of one parameter that did not resolve to live rows.
type MissingReference struct {
	Param string  `json:"param"`
	IDs   []int64 `json:"ids"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorHandler writes domain errors with the status they map to.
//
//	ValidationError, ValueIsInvalid/Required/OutOfRange -> 400
//	ObjectNotFound                                       -> 404
//	InvalidStateTransition, ConcurrencyConflict          -> 409
//
// Anything else is logged and answered with a bare 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	body := toError(err)
	if body.Code == http.StatusInternalServerError {
		logger.FromContext(c.Request().Context()).Error("request failed", zap.Error(err))
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(body.Code)
	} else {
		writeErr = c.JSON(body.Code, body)
	}
	if writeErr != nil {
		logger.FromContext(c.Request().Context()).Warn("failed to write error response", zap.Error(writeErr))
	}
}

func toError(err error) Error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Message: msg}
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		out := Error{Code: http.StatusBadRequest, Message: "request validation failed"}
		for _, fe := range fieldErrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return out
	}

	switch {
	case errors.Is(err, errs.ErrValidation):
		return Error{Code: http.StatusBadRequest, Message: err.Error(), Missing: missingReferences(err)}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	default:
		return Error{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
	}
}

// missingReferences collects every ValidationError in a joined error tree.
func missingReferences(err error) []MissingReference {
	var out []MissingReference
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if ve, ok := err.(*errs.ValidationError); ok {
			out = append(out, MissingReference{Param: ve.ParamName, IDs: ve.IDs})
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}
