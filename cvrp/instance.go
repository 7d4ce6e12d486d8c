package cvrp

import (
	"fmt"

	"github.com/katalvlaran/qvrp/matrix"
)

// Instance is a capacitated routing problem. City 0 is the depot.
type Instance struct {
	Name     string
	Dist     matrix.Matrix
	Demand   []int
	Capacity int

	// Coords are optional node coordinates; when set, Dist is their
	// Euclidean distance matrix.
	Coords [][]float64
}

// NewEuclideanInstance builds an instance from node coordinates.
func NewEuclideanInstance(name string, coords [][]float64, demand []int, capacity int) (*Instance, error) {
	dist, err := matrix.NewEuclidean(coords)
	if err != nil {
		return nil, fmt.Errorf("instance %s: %w", name, err)
	}
	inst := &Instance{Name: name, Dist: dist, Demand: demand, Capacity: capacity, Coords: coords}
	if err = inst.Validate(); err != nil {
		return nil, err
	}

	return inst, nil
}

// DefaultInstance is the four-city triangle around the depot used by the
// oracle demos: three unit-demand customers and capacity 2, so every route
// splits exactly once.
func DefaultInstance() *Instance {
	inst, _ := NewEuclideanInstance("triangle",
		[][]float64{{0, 0}, {1, 0.5}, {0.5, -1}, {-2, 0.5}},
		[]int{0, 1, 1, 1},
		2,
	)

	return inst
}

// CityAmount returns the number of cities including the depot.
func (in *Instance) CityAmount() int { return len(in.Demand) }

// Validate checks the distance matrix and the demand vector.
//
// Stage 1 (Matrix): square, finite, non-negative, zero diagonal, symmetric.
// Stage 2 (Demand): one entry per city, depot zero, 0 ≤ d ≤ capacity.
func (in *Instance) Validate() error {
	n, err := matrix.ValidateDistance(in.Dist, matrix.DefaultSymmetryTol)
	if err != nil {
		return fmt.Errorf("instance %s: %w", in.Name, err)
	}
	if in.Capacity <= 0 {
		return fmt.Errorf("instance %s: capacity %d: %w", in.Name, in.Capacity, ErrCapacity)
	}
	if len(in.Demand) != n {
		return fmt.Errorf("instance %s: %d demands for %d cities: %w", in.Name, len(in.Demand), n, ErrDemandLength)
	}
	if in.Demand[0] != 0 {
		return fmt.Errorf("instance %s: %w", in.Name, ErrDepotDemand)
	}
	for i, d := range in.Demand {
		if d < 0 {
			return fmt.Errorf("instance %s: city %d: %w", in.Name, i, ErrNegativeDemand)
		}
		if d > in.Capacity {
			return fmt.Errorf("instance %s: city %d demand %d > %d: %w", in.Name, i, d, in.Capacity, ErrDemandExceedsCapacity)
		}
	}

	return nil
}

// Sub extracts the sub-instance made of the depot and the given customers,
// in that order. City k+1 of the result is customers[k] of in.
func (in *Instance) Sub(name string, customers []int) (*Instance, error) {
	var (
		n      = len(customers) + 1
		ids    = make([]int, n)
		demand = make([]int, n)
		i, j   int
		v      float64
		err    error
	)
	for i, c := range customers {
		if c <= 0 || c >= in.CityAmount() {
			return nil, fmt.Errorf("sub %s: customer %d: %w", name, c, ErrBadItinerary)
		}
		ids[i+1] = c
		demand[i+1] = in.Demand[c]
	}
	dist, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if v, err = in.Dist.At(ids[i], ids[j]); err != nil {
				return nil, err
			}
			_ = dist.Set(i, j, v)
		}
	}
	sub := &Instance{Name: name, Dist: dist, Demand: demand, Capacity: in.Capacity}
	if in.Coords != nil {
		sub.Coords = make([][]float64, n)
		for i = range ids {
			sub.Coords[i] = in.Coords[ids[i]]
		}
	}

	return sub, nil
}

// TotalDemand sums all demands.
func (in *Instance) TotalDemand() int {
	total := 0
	for _, d := range in.Demand {
		total += d
	}

	return total
}
