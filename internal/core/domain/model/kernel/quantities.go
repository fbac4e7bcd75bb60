package kernel

import (
	"errors"
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Quantities counts physical units of a delivery or of an entry's share of it.
type Quantities struct {
	pallets  int
	packages int
	pieces   int
}

func NewQuantities(pallets, packages, pieces int) (Quantities, error) {
	if err := errors.Join(
		nonNegative("pallets", pallets),
		nonNegative("packages", packages),
		nonNegative("pieces", pieces),
	); err != nil {
		return Quantities{}, err
	}
	return Quantities{pallets: pallets, packages: packages, pieces: pieces}, nil
}

func (q Quantities) Pallets() int  { return q.pallets }
func (q Quantities) Packages() int { return q.packages }
func (q Quantities) Pieces() int   { return q.pieces }

func (q Quantities) Add(other Quantities) Quantities {
	return Quantities{
		pallets:  q.pallets + other.pallets,
		packages: q.packages + other.packages,
		pieces:   q.pieces + other.pieces,
	}
}

// FitsWithin returns a ValueIsOutOfRangeError for every unit kind where q exceeds limit.
func (q Quantities) FitsWithin(limit Quantities) error {
	return errors.Join(
		atMost("pallets", q.pallets, limit.pallets),
		atMost("packages", q.packages, limit.packages),
		atMost("pieces", q.pieces, limit.pieces),
	)
}

func (q Quantities) String() string {
	return fmt.Sprintf("%d pallets, %d packages, %d pieces", q.pallets, q.packages, q.pieces)
}

func nonNegative(param string, v int) error {
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(param, v, 0, "unbounded")
	}
	return nil
}

func atMost(param string, v, limit int) error {
	if v > limit {
		return errs.NewValueIsOutOfRangeError(param, v, 0, limit)
	}
	return nil
}
