package grover

import "errors"

var (
	// ErrNilOracle is returned when Search is called without an oracle.
	ErrNilOracle = errors.New("grover: nil oracle")

	// ErrBadOptions is returned for negative shots, workers or winners.
	ErrBadOptions = errors.New("grover: invalid options")
)
