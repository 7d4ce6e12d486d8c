package tsp

// ValidateTour checks that tour is a closed Hamiltonian cycle over n vertices
// starting and ending at 0.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if n <= 0 || len(tour) != n+1 || tour[0] != 0 || tour[n] != 0 {
		return ErrDimensionMismatch
	}
	seen := make([]bool, n)
	for _, v := range tour[:n] {
		if v < 0 || v >= n || seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// CanonicalizeOrientationInPlace reverses the interior of a closed tour when
// tour[1] > tour[n−1], so a cycle and its mirror compare equal.
func CanonicalizeOrientationInPlace(tour []int) {
	n := len(tour) - 1
	if n >= 3 && tour[1] > tour[n-1] {
		reverse(tour, 1, n-1)
	}
}
