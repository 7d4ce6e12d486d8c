package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/qvrp/matrix"
)

// Exact solves the Travelling Salesman Problem exactly using the Held–Karp
// dynamic-programming algorithm.
//
// dist is an n×n matrix where dist(i,j) is the cost to go from vertex i to j;
// +Inf marks a missing edge. The diagonal must be zero.
//
// dp[mask][j] is the minimum cost to start at 0, visit exactly the vertices
// in mask (bit 0 always set), and end at j. After filling dp the tour is
// closed by returning from j to 0.
//
// Time complexity:  O(n² · 2ⁿ)
// Memory complexity: O(n · 2ⁿ)
func Exact(dist matrix.Matrix) (Result, error) {
	w, n, err := prefetch(dist)
	if err != nil {
		return Result{}, err
	}
	if n > MaxExactVertices {
		return Result{}, fmt.Errorf("exact: %d vertices: %w", n, ErrTooLarge)
	}
	if n == 1 {
		return Result{Tour: []int{0, 0}, Exact: true}, nil
	}
	at := func(u, v int) float64 { return w[u*n+v] }

	var (
		allMask = (1 << n) - 1
		dp      = make([][]float64, 1<<n)
		parent  = make([][]int, 1<<n)
		mask    int
		j, k    int
	)
	for mask = 0; mask <= allMask; mask++ {
		dp[mask] = make([]float64, n)
		parent[mask] = make([]int, n)
		for j = 0; j < n; j++ {
			dp[mask][j] = math.Inf(1)
			parent[mask][j] = -1
		}
	}
	dp[1][0] = 0

	for mask = 1; mask <= allMask; mask += 2 { // odd masks contain vertex 0
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prev := mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prev&(1<<k) == 0 || math.IsInf(dp[prev][k], 1) {
					continue
				}
				c := at(k, j)
				if math.IsInf(c, 1) {
					continue
				}
				if cand := dp[prev][k] + c; cand < dp[mask][j] {
					dp[mask][j] = cand
					parent[mask][j] = k
				}
			}
		}
	}

	best, last := math.Inf(1), -1
	for j = 1; j < n; j++ {
		c := at(j, 0)
		if math.IsInf(c, 1) {
			continue
		}
		if total := dp[allMask][j] + c; total < best {
			best, last = total, j
		}
	}
	if last < 0 || math.IsInf(best, 1) {
		return Result{}, ErrIncompleteGraph
	}

	tour := make([]int, n+1)
	mask, j = allMask, last
	for i := n - 1; i >= 1; i-- {
		tour[i] = j
		p := parent[mask][j]
		mask ^= 1 << j
		j = p
	}
	CanonicalizeOrientationInPlace(tour)

	return Result{Tour: tour, Cost: round1e9(best), Exact: true}, nil
}

// prefetch copies dist into a row-major buffer and checks it.
func prefetch(dist matrix.Matrix) ([]float64, int, error) {
	if dist == nil {
		return nil, 0, ErrNonSquare
	}
	n := dist.Rows()
	if n == 0 || n != dist.Cols() {
		return nil, 0, ErrNonSquare
	}
	var (
		w    = make([]float64, n*n)
		i, j int
		x    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if x, err = dist.At(i, j); err != nil {
				return nil, 0, err
			}
			if math.IsNaN(x) || x < 0 {
				return nil, 0, ErrNegativeWeight
			}
			w[i*n+j] = x
		}
	}

	return w, n, nil
}
