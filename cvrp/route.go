package cvrp

import (
	"fmt"

	"github.com/katalvlaran/qvrp/perm"
)

// Route is the classical evaluation of one itinerary.
type Route struct {
	Selectors []int   // selector tuple that decodes to Itinerary
	Itinerary []int   // customer visiting order, depot implicit at both ends
	Tours     [][]int // sub-routes after capacity splits
	Loads     []int   // demand served by each sub-route
	Raw       uint64  // fixed-point distance, bit-identical to the distance register
	Distance  float64 // Raw decoded
	Exact     float64 // unquantised distance of the same tours
}

// RouteCost evaluates itinerary with the same quantised tables and split
// rule as the forward program.
//
// Complexity: O(n).
func (a *Accumulator) RouteCost(itinerary []int) (Route, error) {
	if len(itinerary) != a.inst.CityAmount()-1 {
		return Route{}, fmt.Errorf("route %v: %w", itinerary, ErrBadItinerary)
	}
	sel, err := perm.Encode(itinerary)
	if err != nil {
		return Route{}, fmt.Errorf("route %v: %w", itinerary, ErrBadItinerary)
	}
	var (
		mask  = a.fixed.Max()
		raw   uint64
		exact float64
		load  = a.inst.Demand[itinerary[0]]
		tour  = []int{itinerary[0]}
		r     = Route{Selectors: sel, Itinerary: append([]int(nil), itinerary...)}
		last  = itinerary[len(itinerary)-1]
	)
	add := func(i, j int) {
		q, _ := a.dist.Lookup([]uint64{uint64(i), uint64(j)})
		raw = (raw + q) & mask
		d, _ := a.inst.Dist.At(i, j)
		exact += d
	}
	depot := func(c int) {
		q, _ := a.depot.Lookup([]uint64{uint64(c)})
		raw = (raw + q) & mask
		d, _ := a.inst.Dist.At(0, c)
		exact += d
	}
	depot(itinerary[0])
	depot(last)
	for k := 0; k+1 < len(itinerary); k++ {
		cur, next := itinerary[k], itinerary[k+1]
		dem := a.inst.Demand[next]
		if load+dem > a.inst.Capacity {
			depot(cur)
			depot(next)
			r.Tours = append(r.Tours, tour)
			r.Loads = append(r.Loads, load)
			tour, load = []int{next}, dem
			continue
		}
		add(cur, next)
		tour = append(tour, next)
		load += dem
	}
	r.Tours = append(r.Tours, tour)
	r.Loads = append(r.Loads, load)
	r.Raw = raw
	r.Distance = a.fixed.Decode(raw)
	r.Exact = exact

	return r, nil
}

// BruteForce evaluates every itinerary in selector order (mixed-radix rank
// 0 … (n−1)!−1).
//
// Complexity: O(n!·n).
func (a *Accumulator) BruteForce() ([]Route, error) {
	n := a.inst.CityAmount()
	total, err := perm.Count(n)
	if err != nil {
		return nil, err
	}
	out := make([]Route, 0, total)
	for k := 0; k < total; k++ {
		sel, _ := perm.FromIndex(n, k)
		it, _ := perm.Decode(n, sel)
		r, err := a.RouteCost(it)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

// Threshold quantises a distance bound the same way the tables are
// quantised.
func (a *Accumulator) Threshold(threshold float64) (uint64, error) {
	return a.fixed.Encode(threshold)
}

// Below returns the routes whose raw distance is at most the raw threshold.
func Below(routes []Route, threshold uint64) []Route {
	var out []Route
	for _, r := range routes {
		if r.Raw <= threshold {
			out = append(out, r)
		}
	}

	return out
}

// Best returns the route with the smallest raw distance; ties keep the
// first one.
func Best(routes []Route) (Route, bool) {
	if len(routes) == 0 {
		return Route{}, false
	}
	best := routes[0]
	for _, r := range routes[1:] {
		if r.Raw < best.Raw {
			best = r
		}
	}

	return best, true
}
