// SPDX-License-Identifier: MIT

package matrix

// Matrix is the float64 grid every distance table in the module is read
// through. Routing code only calls At; Set and Clone serve builders.
type Matrix interface {
	Rows() int
	Cols() int

	// At returns element (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)

	// Set stores v at (i, j) or returns ErrOutOfRange.
	Set(i, j int, v float64) error

	// Clone returns an independent deep copy.
	Clone() Matrix
}
