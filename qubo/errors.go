package qubo

import "errors"

var (
	// ErrCOO is returned for malformed coordinate-file lines.
	ErrCOO = errors.New("qubo: malformed COO data")

	// ErrMissingVariable is returned when an assignment lacks a model variable.
	ErrMissingVariable = errors.New("qubo: assignment misses a variable")

	// ErrNotBinary is returned for assignment values outside {0, 1}.
	ErrNotBinary = errors.New("qubo: value is not binary")

	// ErrInvalidAssignment is returned when a sample is not a permutation
	// matrix of the encoded tour.
	ErrInvalidAssignment = errors.New("qubo: sample violates the one-hot constraints")

	// ErrEmptySampleSet is returned by First on a set without samples.
	ErrEmptySampleSet = errors.New("qubo: empty sample set")

	// ErrBadDistance is returned for negative, NaN or infinite distances.
	ErrBadDistance = errors.New("qubo: distance must be finite and non-negative")
)
