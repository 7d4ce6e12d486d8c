package tsp

import (
	"github.com/katalvlaran/qvrp/matrix"
)

// Solve dispatches to Exact for n ≤ opts.MaxExact. Larger instances run
// TwoOpt from a nearest-neighbour tour and from opts.Restarts shuffled tours,
// keeping the cheapest.
func Solve(dist matrix.Matrix, opts Options) (Result, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return Result{}, ErrNonSquare
	}
	n := dist.Rows()
	if n <= opts.MaxExact {
		return Exact(dist)
	}
	seed, err := NearestNeighbor(dist)
	if err != nil {
		return Result{}, err
	}
	best := Result{}
	best.Tour, best.Cost, err = TwoOpt(dist, seed, opts)
	if err != nil {
		return Result{}, err
	}
	for r := 0; r < opts.Restarts; r++ {
		tour, cost, err := TwoOpt(dist, randomTour(n, opts.Seed, uint64(r)), opts)
		if err != nil {
			return Result{}, err
		}
		if cost < best.Cost {
			best.Tour, best.Cost = tour, cost
		}
	}
	CanonicalizeOrientationInPlace(best.Tour)

	return best, nil
}
