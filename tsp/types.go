package tsp

import (
	"errors"
	"time"
)

var (
	// ErrNonSquare is returned for a non-square distance matrix.
	ErrNonSquare = errors.New("tsp: distance matrix is not square")

	// ErrDimensionMismatch is returned for tours of the wrong shape.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrIncompleteGraph is returned when no Hamiltonian cycle exists.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance matrix")

	// ErrNegativeWeight is returned for negative or NaN distances.
	ErrNegativeWeight = errors.New("tsp: negative or NaN weight")

	// ErrTooLarge is returned by Exact above MaxExactVertices.
	ErrTooLarge = errors.New("tsp: instance too large for exact solver")

	// ErrTimeLimit is returned when TwoOpt exceeds Options.TimeLimit.
	ErrTimeLimit = errors.New("tsp: time limit exceeded")
)

// MaxExactVertices bounds the Held–Karp table (n·2ⁿ entries).
const MaxExactVertices = 20

// Result holds the outcome of a TSP solver.
type Result struct {
	// Tour is the sequence of vertex indices, starting and ending at 0.
	// For n vertices, len(Tour) == n+1 and Tour[0]==Tour[n]==0.
	Tour []int

	// Cost is the total distance of the cycle.
	Cost float64

	// Exact reports whether Tour is provably optimal.
	Exact bool
}

// Options configures Solve and TwoOpt.
type Options struct {
	// MaxExact is the largest vertex count Solve hands to Exact.
	MaxExact int

	// Eps is the minimal improvement TwoOpt accepts.
	Eps float64

	// MaxIters bounds accepted 2-opt moves; 0 means until a local optimum.
	MaxIters int

	// TimeLimit bounds TwoOpt; 0 means no limit.
	TimeLimit time.Duration

	// Restarts adds random-start 2-opt runs after the nearest-neighbour one.
	Restarts int

	// Seed drives the restart shuffles; 0 selects a fixed default.
	Seed int64
}

// DefaultOptions returns MaxExact = 12, Eps = 1e-12, Restarts = 4.
func DefaultOptions() Options {
	return Options{MaxExact: 12, Eps: 1e-12, Restarts: 4}
}
