package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when no
// specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. Commands and
// value objects embed it so handlers can refuse zero-value inputs that never
// went through validation.
//
// Example usage:
//
//	var ErrApproveNotConstructed = errors.New("ApproveDeliveryCommand must be created via NewApproveDeliveryCommand")
//
//	type ApproveDeliveryCommand struct {
//	    deliveryID int64
//	    actorID    string
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c ApproveDeliveryCommand) Validate() error {
//	    return c.guard.Validate(ErrApproveNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard flagged as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard, validationError otherwise.
// A nil validationError falls back to ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
