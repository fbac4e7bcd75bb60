// Package errs provides standardized error types for the warehouse application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For quantities and lengths outside their bounds
//   - ObjectNotFoundError: For when an id does not resolve to a visible row
//   - ValidationError: For referenced ids (vendor, zone, marker) that do not exist
//   - InvalidStateTransitionError: For lifecycle operations not allowed in the current state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is works against the sentinel
//
// Callers classify errors with errors.Is against the sentinels and extract
// details (such as the offending ids) with errors.As.
package errs
