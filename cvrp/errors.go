package cvrp

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qvrp/rev"
)

var (
	// ErrDemandExceedsCapacity is returned when a single customer demands
	// more than the vehicle capacity; no route can serve it.
	ErrDemandExceedsCapacity = errors.New("cvrp: demand exceeds capacity")

	// ErrDepotDemand is returned when demand[0] != 0.
	ErrDepotDemand = errors.New("cvrp: depot demand must be zero")

	// ErrNegativeDemand is returned for a negative demand entry.
	ErrNegativeDemand = errors.New("cvrp: negative demand")

	// ErrDemandLength is returned when len(demand) differs from the city amount.
	ErrDemandLength = errors.New("cvrp: demand vector length mismatch")

	// ErrCapacity is returned for a non-positive capacity.
	ErrCapacity = errors.New("cvrp: capacity must be positive")

	// ErrBadItinerary is returned when an itinerary is not a permutation of
	// the customers.
	ErrBadItinerary = errors.New("cvrp: itinerary is not a permutation of the customers")

	// ErrTSPLIB is returned for malformed TSPLIB input.
	ErrTSPLIB = errors.New("cvrp: malformed TSPLIB data")

	// ErrNoCoords is returned when an operation needs node coordinates.
	ErrNoCoords = errors.New("cvrp: instance has no coordinates")

	// ErrClusterCount is returned for a k-means cluster count below one.
	ErrClusterCount = errors.New("cvrp: cluster count must be positive")

	// ErrClusterMethod is returned for an unknown clustering method name.
	ErrClusterMethod = errors.New("cvrp: unknown clustering method")

	// ErrPrecisionOverflow is returned when the longest possible route does
	// not fit the distance register at the requested precision.
	ErrPrecisionOverflow = fmt.Errorf("cvrp: route total exceeds the distance register: %w", rev.ErrPrecision)
)
