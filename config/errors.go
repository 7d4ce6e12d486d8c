package config

import "errors"

var (
	// ErrBadLevel is returned for an unknown log level name.
	ErrBadLevel = errors.New("config: unknown log level")

	// ErrBadDuration is returned for a duration that is neither a Go
	// duration string nor a number of seconds.
	ErrBadDuration = errors.New("config: bad duration")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid value")
)
