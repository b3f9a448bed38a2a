package kernel_test

import (
	"testing"

	"tms/internal/core/domain/model/kernel"
	"tms/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocationID(t *testing.T) {
	t.Run("should parse five segments", func(t *testing.T) {
		loc, err := kernel.ParseLocationID("HBW_/0001/0012/0003/0000")

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.Equal(t, "HBW_", loc.Area())
		assert.Equal(t, "0001", loc.Aisle())
		assert.Equal(t, "0012", loc.X())
		assert.Equal(t, "0003", loc.Y())
		assert.Equal(t, "0000", loc.Z())
		assert.Equal(t, "HBW_/0001/0012/0003/0000", loc.String())
	})

	t.Run("should reject wrong segment count", func(t *testing.T) {
		_, err := kernel.ParseLocationID("HBW_/0001/0012")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should report every bad segment", func(t *testing.T) {
		_, err := kernel.ParseLocationID("/0001/TOOLONG/0003/")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "location id area")
		assert.Contains(t, err.Error(), "location id z")
	})
}

func TestNewLocationID_RejectsSeparatorInSegment(t *testing.T) {
	_, err := kernel.NewLocationID("A/B", "1", "2", "3", "4")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestLocationID_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocationID("EXT_", "0000", "0000", "0000", "0000")
	b, _ := kernel.ParseLocationID("EXT_/0000/0000/0000/0000")
	c, _ := kernel.ParseLocationID("EXT_/0000/0000/0000/0001")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestLocationID_ZeroValueIsInvalid(t *testing.T) {
	var loc kernel.LocationID

	require.ErrorIs(t, loc.Validate(), kernel.ErrLocationIDIsNotConstructed)
}
