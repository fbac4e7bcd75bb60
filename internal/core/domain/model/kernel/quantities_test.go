package kernel_test

import (
	"testing"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantities(t *testing.T) {
	q, err := kernel.NewQuantities(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Pallets())
	assert.Equal(t, 2, q.Packages())
	assert.Equal(t, 3, q.Pieces())

	_, err = kernel.NewQuantities(-1, 0, -2)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "pallets")
	assert.Contains(t, err.Error(), "pieces")
}

func TestQuantities_FitsWithin(t *testing.T) {
	limit, _ := kernel.NewQuantities(2, 10, 100)
	a, _ := kernel.NewQuantities(1, 5, 60)
	b, _ := kernel.NewQuantities(1, 5, 50)

	require.NoError(t, a.FitsWithin(limit))
	sum := a.Add(b)
	err := sum.FitsWithin(limit)

	var rangeErr *errs.ValueIsOutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, "pieces", rangeErr.ParamName)
	assert.Equal(t, 110, rangeErr.Value)
	assert.Equal(t, 100, rangeErr.Max)
}

func TestNormalizeIDs(t *testing.T) {
	ids, err := kernel.NormalizeIDs("markerIds", []int64{9, 5, 9})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 9}, ids)

	_, err = kernel.NormalizeIDs("markerIds", []int64{0})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	empty, err := kernel.NormalizeIDs("markerIds", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestValidateText(t *testing.T) {
	v, err := kernel.ValidateText("name", "  Dock A ")
	require.NoError(t, err)
	assert.Equal(t, "Dock A", v)

	_, err = kernel.ValidateText("name", "   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	v, err = kernel.ValidateOptionalText("cmr", "")
	require.NoError(t, err)
	assert.Empty(t, v)
}
