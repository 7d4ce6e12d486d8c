package cvrp

import (
	"fmt"
	"math"
)

// ClusterByCapacity partitions the customers into clusters whose total
// demand fits the capacity.
//
// Each cluster grows greedily: the unassigned customer nearest to the
// cluster centroid (the depot for an empty cluster) joins while the cluster
// demand stays ≤ capacity; the first customer that does not fit closes the
// cluster. Ties keep the lower city index.
//
// Clusters hold city indices of inst. Complexity: O(n²·d).
func ClusterByCapacity(inst *Instance) ([][]int, error) {
	if inst.Coords == nil {
		return nil, fmt.Errorf("cluster %s: %w", inst.Name, ErrNoCoords)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	var (
		n        = inst.CityAmount()
		assigned = make([]bool, n)
		left     = n - 1
		clusters [][]int
	)
	assigned[0] = true
	for left > 0 {
		var (
			cluster []int
			load    int
		)
		for left > 0 {
			center := centroid(inst.Coords, cluster)
			best, bestDist := -1, math.Inf(1)
			for c := 1; c < n; c++ {
				if assigned[c] {
					continue
				}
				if d := euclid(inst.Coords[c], center); d < bestDist {
					best, bestDist = c, d
				}
			}
			if load+inst.Demand[best] > inst.Capacity {
				break
			}
			cluster = append(cluster, best)
			load += inst.Demand[best]
			assigned[best] = true
			left--
		}
		clusters = append(clusters, cluster)
	}

	return clusters, nil
}

// centroid returns the mean of the given points; an empty set maps to the
// depot at index 0.
func centroid(coords [][]float64, members []int) []float64 {
	if len(members) == 0 {
		return coords[0]
	}
	out := make([]float64, len(coords[0]))
	for _, m := range members {
		for k, v := range coords[m] {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(len(members))
	}

	return out
}

func euclid(a, b []float64) float64 {
	var sum float64
	for k := range a {
		d := a[k] - b[k]
		sum += d * d
	}

	return math.Sqrt(sum)
}
