// Package tsp - RNG utilities for multi-start local search.
//
// math/rand.Rand is NOT goroutine-safe; derive one stream per restart.
package tsp

import "math/rand"

// defaultRNGSeed is used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed==0 ⇒ defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64 finalizer).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// randomTour returns a closed tour through 0..n-1 with the interior shuffled
// by a stream derived from seed and stream.
//
// Complexity: O(n).
func randomTour(n int, seed int64, stream uint64) []int {
	r := rand.New(rand.NewSource(deriveSeed(rngFromSeed(seed).Int63(), stream)))
	tour := make([]int, n+1)
	for i := 1; i < n; i++ {
		tour[i] = i
	}
	inner := tour[1:n]
	for i := len(inner) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		inner[i], inner[j] = inner[j], inner[i]
	}

	return tour
}
