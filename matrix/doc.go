// Package matrix offers the dense numeric matrices used for routing inputs.
//
// The matrix package provides:
//
//   - Matrix, a minimal bounds-checked interface over two-dimensional float64 data.
//   - Dense, a row-major implementation with O(1) element access.
//   - Validators for the shapes routing code relies on (square, symmetric,
//     finite non-negative distances with a zero diagonal).
//   - NewEuclidean, which builds a full distance matrix from planar coordinates.
//
// Distance matrices are small (one row per city) and read-only once built, so
// O(n²) memory is always acceptable here.
package matrix
