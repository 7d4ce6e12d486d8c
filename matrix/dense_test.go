// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/qvrp/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetGetClone validates Set/At round trips and Clone independence.
func TestSetGetClone(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	require.NoError(t, m.Set(1, 2, 7.89))
	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)

	clone := m.Clone()
	require.NoError(t, clone.Set(1, 2, 1.0))
	val, _ = m.At(1, 2)
	require.Equal(t, 7.89, val, "original must not change when the clone does")
}

// TestNewDenseFromRows covers copy semantics and ragged input.
func TestNewDenseFromRows(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	rows[0][0] = 99
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, matrix.ToRows(m))

	_, err = matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewEuclidean checks a 3-4-5 triangle and exact symmetry.
func TestNewEuclidean(t *testing.T) {
	m, err := matrix.NewEuclidean([][]float64{{0, 0}, {3, 0}, {3, 4}})
	require.NoError(t, err)

	d, _ := m.At(0, 2)
	require.InDelta(t, 5.0, d, 1e-12)
	d, _ = m.At(0, 1)
	require.Equal(t, 3.0, d)

	n, err := matrix.ValidateDistance(m, matrix.DefaultSymmetryTol)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	_, err = matrix.NewEuclidean([][]float64{{0, 0}, {1}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
