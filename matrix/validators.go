// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the shape checks routing
//    code relies on before it builds lookup tables from a matrix.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    match them via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// DefaultSymmetryTol is the absolute tolerance used by ValidateDistance for
// |a_ij − a_ji| and |a_ii|.
const DefaultSymmetryTol = 1e-9

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateSquare", err)
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks |a_ij − a_ji| ≤ tol for all i<j.
// Assumes m is square (call ValidateSquare first).
// Complexity: O(n²).
func ValidateSymmetric(m Matrix, tol float64) error {
	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j)
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateDistance runs the full distance-matrix sequence:
// NotNil → Square → finite → non-negative → zero diagonal → symmetric.
//
// Returns the matrix order n on success.
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) (int, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}
	var (
		n    = m.Rows()
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, _ = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, validatorErrorf("ValidateDistance", ErrNaNInf)
			}
			if v < 0 {
				return 0, validatorErrorf("ValidateDistance", ErrNegative)
			}
			if i == j && math.Abs(v) > tol {
				return 0, validatorErrorf("ValidateDistance", ErrNonZeroDiagonal)
			}
		}
	}
	if err := ValidateSymmetric(m, tol); err != nil {
		return 0, validatorErrorf("ValidateDistance", err)
	}

	return n, nil
}
