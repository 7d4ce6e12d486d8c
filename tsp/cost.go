package tsp

import (
	"math"

	"github.com/katalvlaran/qvrp/matrix"
)

// roundScale controls final cost stabilisation precision (1e-9).
const roundScale = 1e9

// TourCost sums dist along the closed tour tour[0] → … → tour[len−1].
//
// Contract: len(tour) ≥ 2, indices in [0..n−1]. Returns ErrDimensionMismatch,
// ErrIncompleteGraph for a missing edge, ErrNegativeWeight for NaN or
// negative weights.
//
// Complexity: O(n).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if dist == nil || len(tour) < 2 {
		return 0, ErrDimensionMismatch
	}
	var (
		n   = dist.Rows()
		sum float64
		w   float64
		err error
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		u, v := tour[i], tour[i+1]
		if u < 0 || u >= n || v < 0 || v >= n {
			return 0, ErrDimensionMismatch
		}
		if w, err = dist.At(u, v); err != nil {
			return 0, err
		}
		if math.IsNaN(w) || w < 0 {
			return 0, ErrNegativeWeight
		}
		if math.IsInf(w, 1) {
			return 0, ErrIncompleteGraph
		}
		sum += w
	}

	return round1e9(sum), nil
}

// round1e9 rounds x to 1e-9 to avoid cross-platform FP noise.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
