package perm

import "errors"

var (
	// ErrTooFewCities is returned when city_amount < 3.
	ErrTooFewCities = errors.New("perm: city amount must be at least 3")

	// ErrSelectorOutOfDomain is returned when a selector value or tuple length
	// does not fit the selector domains.
	ErrSelectorOutOfDomain = errors.New("perm: selector out of domain")

	// ErrIndexOutOfRange is returned by FromIndex for k ∉ [0, Count).
	ErrIndexOutOfRange = errors.New("perm: basis index out of range")
)
