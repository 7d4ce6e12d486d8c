package store

import "errors"

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("store: run not found")
