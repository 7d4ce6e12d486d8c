package cvrp

import (
	"fmt"
	"math/rand"
	"slices"
)

// Clustering methods accepted by Cluster.
const (
	MethodCapacity = "capacity"
	MethodKMeans   = "kmeans"
)

const (
	// DefaultClusters is the k-means cluster count used by the CLIs.
	DefaultClusters = 3

	kmeansIterations = 100
	defaultSeed      = int64(1)
)

// ClusterMethods lists the names Cluster accepts.
func ClusterMethods() []string { return []string{MethodCapacity, MethodKMeans} }

// Cluster partitions the customers with the named method. k and seed only
// apply to MethodKMeans.
func Cluster(inst *Instance, method string, k int, seed int64) ([][]int, error) {
	switch method {
	case MethodCapacity:
		return ClusterByCapacity(inst)
	case MethodKMeans:
		return ClusterKMeans(inst, k, seed)
	default:
		return nil, fmt.Errorf("cluster %q: %w", method, ErrClusterMethod)
	}
}

// ClusterKMeans partitions the customers (the depot excluded) into at most
// k geographic clusters: k-means++ seeding from a math/rand stream, then
// Lloyd iterations until no assignment changes or 100 rounds pass.
// Capacity is not taken into account.
//
// k above the customer count is clamped. Clusters that end up empty are
// dropped; members are ascending and clusters are ordered by their first
// member. seed == 0 selects a fixed default, so equal seeds give equal
// partitions.
//
// Complexity: O(iterations·n·k·d).
func ClusterKMeans(inst *Instance, k int, seed int64) ([][]int, error) {
	if inst.Coords == nil {
		return nil, fmt.Errorf("kmeans %s: %w", inst.Name, ErrNoCoords)
	}
	if k < 1 {
		return nil, fmt.Errorf("kmeans %s: k=%d: %w", inst.Name, k, ErrClusterCount)
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = defaultSeed
	}
	var (
		points  = inst.Coords[1:]
		rng     = rand.New(rand.NewSource(seed))
		centers = seedCenters(points, min(k, len(points)), rng)
		assign  = make([]int, len(points))
	)
	for i := range assign {
		assign[i] = -1
	}
	for round := 0; round < kmeansIterations; round++ {
		changed := false
		for i, p := range points {
			if c := nearest(centers, p); c != assign[i] {
				assign[i], changed = c, true
			}
		}
		if !changed {
			break
		}
		recenter(points, assign, centers)
	}

	groups := make([][]int, len(centers))
	for i, c := range assign {
		groups[c] = append(groups[c], i+1)
	}
	groups = slices.DeleteFunc(groups, func(g []int) bool { return len(g) == 0 })
	slices.SortFunc(groups, func(a, b []int) int { return a[0] - b[0] })

	return groups, nil
}

// seedCenters picks k starting centers with the k-means++ rule: the first
// uniformly, each next one with probability proportional to its squared
// distance from the closest center so far. Fewer than k centers come back
// when all remaining points coincide with a center.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := [][]float64{slices.Clone(points[rng.Intn(len(points))])}
	d2 := make([]float64, len(points))
	for len(centers) < k {
		var total float64
		for i, p := range points {
			d := euclid(p, centers[nearest(centers, p)])
			d2[i] = d * d
			total += d2[i]
		}
		if total == 0 {
			break
		}
		var (
			r    = rng.Float64() * total
			pick = -1
		)
		for i, w := range d2 {
			if w == 0 {
				continue
			}
			pick = i
			if r -= w; r < 0 {
				break
			}
		}
		centers = append(centers, slices.Clone(points[pick]))
	}

	return centers
}

// nearest returns the index of the closest center; ties keep the lower index.
func nearest(centers [][]float64, p []float64) int {
	best, bestDist := 0, euclid(p, centers[0])
	for c := 1; c < len(centers); c++ {
		if d := euclid(p, centers[c]); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best
}

// recenter moves every center to the mean of its points. A center without
// points stays where it is.
func recenter(points [][]float64, assign []int, centers [][]float64) {
	var (
		counts = make([]int, len(centers))
		sums   = make([][]float64, len(centers))
	)
	for c := range sums {
		sums[c] = make([]float64, len(centers[c]))
	}
	for i, c := range assign {
		counts[c]++
		for d, v := range points[i] {
			sums[c][d] += v
		}
	}
	for c, n := range counts {
		if n == 0 {
			continue
		}
		for d := range sums[c] {
			centers[c][d] = sums[c][d] / float64(n)
		}
	}
}
