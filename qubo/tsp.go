package qubo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qvrp/matrix"
)

// EncodeOptions tunes EncodeTSP.
type EncodeOptions struct {
	// Cyclic adds the closing leg from the last position back to the first.
	// Without it the model scores an open Hamiltonian path.
	Cyclic bool

	// Penalty overrides the one-hot weight A; 0 selects n·max distance.
	Penalty float64
}

// DefaultEncodeOptions returns a cyclic encoding with the default penalty.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Cyclic: true}
}

// Label returns the variable label of "city at position" in an n-city
// encoding. Labels start at 1 like COO coordinates.
func Label(city, pos, n int) int { return city*n + pos + 1 }

// EncodeTSP builds the position-assignment QUBO of dist.
//
// Variable Label(u, j) is 1 when city u is visited at position j. With
// A the penalty and B = 1:
//
//	A·Σ_u (1 − Σ_j x_uj)² + A·Σ_j (1 − Σ_u x_uj)² + B·Σ_{u,i,j} d(u,i)·x_uj·x_i(j+1)
//
// The constant 2·A·n from expanding the squares is stored in Offset, so a
// valid assignment's energy equals its tour (or path) length.
func EncodeTSP(dist matrix.Matrix, opts EncodeOptions) (*Model, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var (
		n    = dist.Rows()
		d    = make([][]float64, n)
		maxd float64
		err  error
	)
	for u := 0; u < n; u++ {
		d[u] = make([]float64, n)
		for i := 0; i < n; i++ {
			if d[u][i], err = dist.At(u, i); err != nil {
				return nil, fmt.Errorf("encode: %w", err)
			}
			if math.IsNaN(d[u][i]) || math.IsInf(d[u][i], 0) || d[u][i] < 0 {
				return nil, fmt.Errorf("encode: d(%d,%d) = %v: %w", u, i, d[u][i], ErrBadDistance)
			}
			maxd = math.Max(maxd, d[u][i])
		}
	}
	a := opts.Penalty
	if a <= 0 {
		a = float64(n) * maxd
	}
	if a == 0 {
		a = float64(n)
	}

	m := NewModel()
	for u := 0; u < n; u++ {
		for j := 0; j < n; j++ {
			m.AddLinear(Label(u, j, n), -2*a)
			for k := j + 1; k < n; k++ {
				m.AddQuadratic(Label(u, j, n), Label(u, k, n), 2*a) // one position per city
				m.AddQuadratic(Label(j, u, n), Label(k, u, n), 2*a) // one city per position
			}
		}
	}
	m.Offset = 2 * a * float64(n)

	last := n - 1
	if opts.Cyclic {
		last = n
	}
	for u := 0; u < n; u++ {
		for i := 0; i < n; i++ {
			if u == i || d[u][i] == 0 {
				continue
			}
			for j := 0; j < last; j++ {
				m.AddQuadratic(Label(u, j, n), Label(i, (j+1)%n, n), d[u][i])
			}
		}
	}

	return m, nil
}

// DecodeTour reads the visiting order out of an n-city assignment:
// order[j] is the city at position j.
func DecodeTour(assign map[int]int8, n int) ([]int, error) {
	order := make([]int, n)
	seen := make([]bool, n)
	for j := 0; j < n; j++ {
		order[j] = -1
		for u := 0; u < n; u++ {
			if assign[Label(u, j, n)] != 1 {
				continue
			}
			if order[j] >= 0 || seen[u] {
				return nil, fmt.Errorf("position %d: %w", j, ErrInvalidAssignment)
			}
			order[j] = u
			seen[u] = true
		}
		if order[j] < 0 {
			return nil, fmt.Errorf("position %d empty: %w", j, ErrInvalidAssignment)
		}
	}

	return order, nil
}

// ClosedTour rotates order so city 0 comes first and closes the cycle.
func ClosedTour(order []int) []int {
	start := 0
	for k, c := range order {
		if c == 0 {
			start = k
			break
		}
	}
	tour := make([]int, 0, len(order)+1)
	tour = append(tour, order[start:]...)
	tour = append(tour, order[:start]...)

	return append(tour, tour[0])
}
