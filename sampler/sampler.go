package sampler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/qubo"
	"golang.org/x/exp/maps"
)

// Sampler kinds.
const (
	KindSim    = "sim"
	KindHybrid = "hybrid"
	KindQbsolv = "qbsolv"
	KindDirect = "direct"
)

// Sampler draws samples of a model.
type Sampler interface {
	// Name returns the registered kind.
	Name() string

	// Sample solves m. p is completed with the kind's defaults.
	Sample(ctx context.Context, m *qubo.Model, p Params) (*qubo.SampleSet, error)
}

// Connector is implemented by samplers holding a remote connection.
type Connector interface {
	Connect(ctx context.Context) error
	Close() error
}

// Params tunes a sampler run. Zero fields take the kind's default.
type Params struct {
	NumReads int
	Sweeps   int

	// BetaRange is the inverse-temperature schedule [hot, cold]; zero
	// derives it from the model's biases.
	BetaRange [2]float64
	Seed      int64

	MaxIter        int           // qbsolv: iterations without improvement
	MaxTime        time.Duration // qbsolv: wall-clock budget
	SubproblemSize int           // qbsolv: variables per sub-problem

	TimeLimit time.Duration // hybrid

	// Label names the problem on the remote service, usually the COO file name.
	Label string
}

// DefaultParams returns the defaults of kind.
func DefaultParams(kind string) Params {
	p := Params{NumReads: 10, Sweeps: 1000}
	switch kind {
	case KindQbsolv:
		p.MaxIter, p.MaxTime, p.SubproblemSize = 3, 10*time.Second, 50
	case KindDirect:
		p.NumReads = 250
	case KindHybrid:
		p.TimeLimit = 5 * time.Second
	}

	return p
}

// withDefaults fills zero fields of p from DefaultParams(kind).
func (p Params) withDefaults(kind string) Params {
	d := DefaultParams(kind)
	if p.NumReads <= 0 {
		p.NumReads = d.NumReads
	}
	if p.Sweeps <= 0 {
		p.Sweeps = d.Sweeps
	}
	if p.MaxIter <= 0 {
		p.MaxIter = d.MaxIter
	}
	if p.MaxTime <= 0 {
		p.MaxTime = d.MaxTime
	}
	if p.SubproblemSize <= 0 {
		p.SubproblemSize = d.SubproblemSize
	}
	if p.TimeLimit <= 0 {
		p.TimeLimit = d.TimeLimit
	}

	return p
}

// Options configures New.
type Options struct {
	Cloud  CloudOptions
	Logger log.Logger
}

type factory func(Options) (Sampler, error)

var registry = map[string]factory{
	KindSim: func(o Options) (Sampler, error) { return NewAnnealer(o.Logger), nil },
	KindQbsolv: func(o Options) (Sampler, error) { return NewQbsolv(o.Logger), nil },
	KindDirect: func(o Options) (Sampler, error) { return cloud(KindDirect, o.Cloud.Solver, o) },
	KindHybrid: func(o Options) (Sampler, error) { return cloud(KindHybrid, o.Cloud.HybridSolver, o) },
}

func cloud(kind, solver string, o Options) (Sampler, error) {
	s, err := newCloudSampler(kind, solver, o)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Kinds returns the registered kinds in ascending order.
func Kinds() []string {
	kinds := maps.Keys(registry)
	slices.Sort(kinds)

	return kinds
}

// New builds the sampler registered as kind.
func New(kind string, opts Options) (Sampler, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%q (want one of %v): %w", kind, Kinds(), ErrUnknownSampler)
	}
	if opts.Logger == nil {
		opts.Logger = log.Root()
	}

	return f(opts)
}
