package grover

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/oracle"
	"github.com/katalvlaran/qvrp/perm"
	"github.com/katalvlaran/qvrp/rev"
	"golang.org/x/sync/errgroup"
)

// Outcome is one basis state of the final distribution.
type Outcome struct {
	Selectors   []int
	Itinerary   []int
	Marked      bool
	Distance    uint64 // raw distance seen by the oracle
	Probability float64
	Count       int // measurement hits
}

// Result is the outcome of a search.
type Result struct {
	States     int     // N, size of the selector domain
	Winners    float64 // estimate used for the iteration count
	Iterations int
	Marked     int     // states marked by the oracle
	Success    float64 // total probability of marked states
	Shots      int
	Outcomes   []Outcome // by descending probability, then rank
}

// Iterations returns floor(π/4·√(N/M)).
func Iterations(states int, winners float64) int {
	if states <= 0 || winners <= 0 {
		return 0
	}

	return int(math.Floor(math.Pi / 4 * math.Sqrt(float64(states)/winners)))
}

// DefaultWinners is the estimate N/(n−2)! for n cities.
func DefaultWinners(cityAmount int) (float64, error) {
	states, err := perm.Count(cityAmount)
	if err != nil {
		return 0, err
	}
	f := 1.0
	for i := 2; i <= cityAmount-2; i++ {
		f *= float64(i)
	}

	return float64(states) / f, nil
}

// Search runs amplitude amplification with o as the oracle and measures
// the result.
//
// Stage 1 (Validate): options and oracle.
// Stage 2 (Amplify): per iteration, evaluate o on all N states in parallel,
// flip marked amplitudes, invert about the mean.
// Stage 3 (Measure): Shots seeded draws from |amplitude|².
//
// Complexity: O(iterations·N·ops(o)/workers) time, O(N) memory.
func Search(ctx context.Context, o *oracle.Oracle, opts Options) (*Result, error) {
	if o == nil {
		return nil, ErrNilOracle
	}
	if opts.Shots < 0 || opts.Workers < 0 || opts.Winners < 0 || opts.Iterations < 0 {
		return nil, fmt.Errorf("%+v: %w", opts, ErrBadOptions)
	}
	opts = opts.normalize()
	var (
		n      = o.CityAmount()
		states int
		err    error
	)
	if states, err = perm.Count(n); err != nil {
		return nil, err
	}
	res := &Result{States: states, Winners: opts.Winners, Shots: opts.Shots}
	if res.Winners == 0 {
		if res.Winners, err = DefaultWinners(n); err != nil {
			return nil, err
		}
	}
	res.Iterations = opts.Iterations
	if res.Iterations == 0 {
		res.Iterations = Iterations(states, res.Winners)
	}
	opts.Logger.Info("Starting amplitude amplification", "states", states,
		"winners", res.Winners, "iterations", res.Iterations, "workers", opts.Workers)

	amps := make([]float64, states)
	for i := range amps {
		amps[i] = 1 / math.Sqrt(float64(states))
	}
	var marks []oracle.Result
	for it := 0; it < res.Iterations; it++ {
		if marks, err = evaluate(ctx, o, states, opts.Workers, opts.Logger); err != nil {
			return nil, err
		}
		for i, m := range marks {
			amps[i] *= float64(m.Phase)
		}
		diffuse(amps)
		opts.Logger.Debug("Grover iteration done", "iteration", it+1, "p0", amps[0]*amps[0])
	}
	if marks == nil {
		// zero iterations: marks are still needed for reporting
		if marks, err = evaluate(ctx, o, states, opts.Workers, opts.Logger); err != nil {
			return nil, err
		}
	}

	res.Outcomes = make([]Outcome, states)
	for k := range amps {
		sel, _ := perm.FromIndex(n, k)
		itin, _ := perm.Decode(n, sel)
		res.Outcomes[k] = Outcome{
			Selectors:   sel,
			Itinerary:   itin,
			Marked:      marks[k].Marked,
			Distance:    marks[k].Distance,
			Probability: amps[k] * amps[k],
		}
		if marks[k].Marked {
			res.Marked++
			res.Success += amps[k] * amps[k]
		}
	}
	measure(res.Outcomes, opts.Shots, rand.New(rand.NewSource(opts.Seed)))
	sort.SliceStable(res.Outcomes, func(i, j int) bool {
		return res.Outcomes[i].Probability > res.Outcomes[j].Probability
	})
	opts.Logger.Info("Amplitude amplification finished", "marked", res.Marked, "success", res.Success)

	return res, nil
}

// evaluate runs the oracle on every basis state and returns the results in
// rank order.
func evaluate(ctx context.Context, o *oracle.Oracle, states, workers int, logger log.Logger) ([]oracle.Result, error) {
	var (
		n       = o.CityAmount()
		results = make([]oracle.Result, states)
		chunk   = (states + workers - 1) / workers
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < states; start += chunk {
		start, end := start, min(start+chunk, states)
		g.Go(func() error {
			for k := start; k < end; k++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				sel, _ := perm.FromIndex(n, k)
				rc := rev.NewContext(logger)
				if _, err := perm.NewSelectors(rc, n, sel); err != nil {
					return err
				}
				r, err := o.Evaluate(rc)
				if err != nil {
					return fmt.Errorf("basis state %v: %w", sel, err)
				}
				results[k] = r
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// diffuse reflects every amplitude about the mean.
func diffuse(amps []float64) {
	var mean float64
	for _, a := range amps {
		mean += a
	}
	mean /= float64(len(amps))
	for i := range amps {
		amps[i] = 2*mean - amps[i]
	}
}

// measure draws shots samples from the outcome probabilities.
func measure(outcomes []Outcome, shots int, rng *rand.Rand) {
	cdf := make([]float64, len(outcomes))
	var acc float64
	for i, o := range outcomes {
		acc += o.Probability
		cdf[i] = acc
	}
	for s := 0; s < shots; s++ {
		u := rng.Float64() * acc
		i := sort.Search(len(cdf), func(k int) bool { return cdf[k] > u })
		if i >= len(outcomes) {
			i = len(outcomes) - 1
		}
		outcomes[i].Count++
	}
}
