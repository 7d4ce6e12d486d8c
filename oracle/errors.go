package oracle

import "errors"

var (
	// ErrBadTransition is returned when a cycle step is called out of order.
	ErrBadTransition = errors.New("oracle: invalid state transition")

	// ErrLeakedRegister is returned when a finished cycle leaves registers
	// that were not live when it began.
	ErrLeakedRegister = errors.New("oracle: register leaked by oracle cycle")
)
