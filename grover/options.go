package grover

import (
	"runtime"

	"github.com/ethereum/go-ethereum/log"
)

// DefaultShots is the number of measurement samples drawn by default.
const DefaultShots = 1000

// defaultSeed is used when Options.Seed is zero.
const defaultSeed int64 = 1

// Options configures Search.
type Options struct {
	// Iterations overrides the computed iteration count when > 0.
	Iterations int

	// Winners is the estimated number of marked states. Zero selects the
	// default estimate N/(n−2)!.
	Winners float64

	// Shots is the number of measurement samples.
	Shots int

	// Seed seeds the measurement sampler; zero means a fixed default.
	Seed int64

	// Workers bounds concurrent oracle evaluations; zero means NumCPU.
	Workers int

	Logger log.Logger
}

// DefaultOptions returns Shots = DefaultShots and computed iterations.
func DefaultOptions() Options {
	return Options{Shots: DefaultShots}
}

func (o Options) normalize() Options {
	if o.Workers == 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Seed == 0 {
		o.Seed = defaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.Root()
	}

	return o
}
