// Package tsp - 2-opt local search.
//
// TwoOpt performs deterministic first-improvement 2-opt on a closed tour of
// a symmetric instance: a move reverses the segment [i..k] and changes the
// cost by Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d) with a=T[i−1], b=T[i],
// c=T[k], d=T[k+1].
//
// Complexity: O(n²) candidate checks per pass, O(n) per accepted move.
package tsp

import (
	"math"
	"time"

	"github.com/katalvlaran/qvrp/matrix"
)

// TwoOpt improves initTour until no move improves by more than opts.Eps.
// initTour must satisfy ValidateTour.
func TwoOpt(dist matrix.Matrix, initTour []int, opts Options) ([]int, float64, error) {
	w, n, err := prefetch(dist)
	if err != nil {
		return nil, 0, err
	}
	if err = ValidateTour(initTour, n); err != nil {
		return nil, 0, err
	}
	at := func(u, v int) float64 { return w[u*n+v] }

	cur := make([]int, n+1)
	copy(cur, initTour)
	cost, err := TourCost(dist, cur)
	if err != nil {
		return nil, 0, err
	}

	var (
		eps      = math.Max(opts.Eps, 0)
		accepted int
		deadline time.Time
	)
	if opts.TimeLimit > 0 {
		deadline = time.Now().Add(opts.TimeLimit)
	}

	for improved := true; improved; {
		improved = false
		var (
			a, b, c, d int
			i, k       int
			delta      float64
		)
	scan:
		for i = 1; i <= n-2; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b, c, d = cur[i-1], cur[i], cur[k], cur[k+1]
				wac, wbd := at(a, c), at(b, d)
				if math.IsInf(wac, 0) || math.IsInf(wbd, 0) {
					continue
				}
				delta = (wac + wbd) - (at(a, b) + at(c, d))
				if delta >= -eps {
					continue
				}
				reverse(cur, i, k)
				cost += delta
				accepted++
				improved = true
				if opts.MaxIters > 0 && accepted >= opts.MaxIters {
					return cur, round1e9(cost), nil
				}
				if !deadline.IsZero() && time.Now().After(deadline) {
					return nil, 0, ErrTimeLimit
				}

				break scan
			}
		}
	}

	return cur, round1e9(cost), nil
}

// reverse reverses tour[i..k] in place.
func reverse(tour []int, i, k int) {
	for ; i < k; i, k = i+1, k-1 {
		tour[i], tour[k] = tour[k], tour[i]
	}
}

// NearestNeighbor builds a closed tour from vertex 0, always moving to the
// closest unvisited vertex; ties keep the lower index.
//
// Complexity: O(n²).
func NearestNeighbor(dist matrix.Matrix) ([]int, error) {
	w, n, err := prefetch(dist)
	if err != nil {
		return nil, err
	}
	var (
		tour    = make([]int, 0, n+1)
		visited = make([]bool, n)
		cur     int
	)
	tour = append(tour, 0)
	visited[0] = true
	for len(tour) < n {
		next, best := -1, math.Inf(1)
		for v := 0; v < n; v++ {
			if !visited[v] && w[cur*n+v] < best {
				next, best = v, w[cur*n+v]
			}
		}
		if next < 0 {
			return nil, ErrIncompleteGraph
		}
		tour = append(tour, next)
		visited[next] = true
		cur = next
	}

	return append(tour, 0), nil
}
