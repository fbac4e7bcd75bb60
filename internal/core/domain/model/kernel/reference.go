package kernel

import (
	"slices"
	"strings"

	"warehouse/internal/pkg/errs"
)

const MaxTextLength = 255

// NormalizeIDs returns the distinct ids sorted ascending. Non-positive ids are rejected.
func NormalizeIDs(param string, ids []int64) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return nil, errs.NewValueIsOutOfRangeError(param, id, 1, "max int64")
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}

// ValidateText checks a trimmed, required text field against MaxTextLength.
func ValidateText(param, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(param)
	}
	if len(value) > MaxTextLength {
		return "", errs.NewValueIsOutOfRangeError(param+" length", len(value), 1, MaxTextLength)
	}
	return value, nil
}

// ValidateOptionalText is ValidateText for fields that may be empty.
func ValidateOptionalText(param, value string) (string, error) {
	value = strings.TrimSpace(value)
	if len(value) > MaxTextLength {
		return "", errs.NewValueIsOutOfRangeError(param+" length", len(value), 0, MaxTextLength)
	}
	return value, nil
}
