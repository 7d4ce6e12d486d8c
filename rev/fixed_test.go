package rev_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/qvrp/rev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPointEncodeDecode(t *testing.T) {
	fp, err := rev.NewFixedPoint(5)
	require.NoError(t, err)
	assert.Equal(t, uint(10), fp.Width())
	assert.Equal(t, uint64(1023), fp.Max())

	v, err := fp.Encode(2.5)
	require.NoError(t, err)
	assert.Equal(t, uint64(80), v)
	assert.InDelta(t, 2.5, fp.Decode(v), 1e-12)

	v, err = fp.Encode(math.Sqrt2)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, fp.Decode(v), fp.Step()/2)

	v, err = fp.Encode(1e9)
	require.NoError(t, err)
	assert.Equal(t, fp.Max(), v, "saturates")

	_, err = fp.Encode(-0.1)
	require.ErrorIs(t, err, rev.ErrNotRepresentable)
	_, err = fp.Encode(math.NaN())
	require.ErrorIs(t, err, rev.ErrNotRepresentable)
}

func TestFixedPointPrecisionRange(t *testing.T) {
	for _, p := range []int{0, -1, 32} {
		_, err := rev.NewFixedPoint(p)
		require.ErrorIs(t, err, rev.ErrPrecision, "precision %d", p)
	}
	_, err := rev.NewFixedPoint(31)
	require.NoError(t, err)
}
