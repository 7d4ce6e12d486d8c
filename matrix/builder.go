// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// NewEuclidean builds the full n×n Euclidean distance matrix of the given
// points. All points must share the same (non-zero) dimension.
//
// Contracts:
//   - len(points) ≥ 1.
//   - coordinates are finite.
//
// Complexity: O(n²·d) time, O(n²) memory.
func NewEuclidean(points [][]float64) (*Dense, error) {
	if len(points) == 0 || len(points[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	var (
		n    = len(points)
		dim  = len(points[0])
		i, j int
		k    int
		sum  float64
		diff float64
	)
	for i = 0; i < n; i++ {
		if len(points[i]) != dim {
			return nil, fmt.Errorf("NewEuclidean: point %d: %w", i, ErrDimensionMismatch)
		}
		for k = 0; k < dim; k++ {
			if math.IsNaN(points[i][k]) || math.IsInf(points[i][k], 0) {
				return nil, fmt.Errorf("NewEuclidean: point %d: %w", i, ErrNaNInf)
			}
		}
	}

	m, _ := NewDense(n, n) // n ≥ 1 checked above
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < dim; k++ {
				diff = points[i][k] - points[j][k]
				sum += diff * diff
			}
			// Mirror writes keep the matrix exactly symmetric.
			m.data[i*n+j] = math.Sqrt(sum)
			m.data[j*n+i] = m.data[i*n+j]
		}
	}

	return m, nil
}
