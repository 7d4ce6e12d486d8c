package sampler

import (
	"cmp"
	"context"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/qubo"
)

// Qbsolv is the "qbsolv" sampler. Each iteration picks the SubproblemSize
// variables whose flip moves the energy most, anneals them with the rest
// clamped, splats the result back and descends on the full problem. It stops
// after MaxIter iterations without improvement or after MaxTime.
type Qbsolv struct {
	sub    *Annealer
	logger log.Logger
}

// NewQbsolv returns a decomposing sampler.
func NewQbsolv(logger log.Logger) *Qbsolv {
	if logger == nil {
		logger = log.Root()
	}

	return &Qbsolv{sub: NewAnnealer(logger), logger: logger}
}

// Name implements Sampler.
func (q *Qbsolv) Name() string { return KindQbsolv }

// Sample implements Sampler.
func (q *Qbsolv) Sample(ctx context.Context, m *qubo.Model, p Params) (*qubo.SampleSet, error) {
	p = p.withDefaults(KindQbsolv)
	start := time.Now()
	deadline := start.Add(p.MaxTime)

	c := m.Compile()
	set := qubo.NewSampleSet(c.Vars)
	if c.Len() == 0 {
		set.Add(nil, c.Offset, 1)
		return set, nil
	}

	rng := rand.New(rand.NewSource(streamSeed(p.Seed, -1)))
	best := randomState(c.Len(), rng)
	descend(c, best)
	bestE := c.Energy(best)

	var (
		iter, stale, improvements int
		cand                      = make([]int8, c.Len())
	)
	for stale < p.MaxIter && time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iter++
		vars := impactOrder(c, best, p.SubproblemSize)

		sub := clamp(c, best, vars)
		subParams := p
		subParams.Seed = streamSeed(p.Seed, iter)
		subSet, err := q.sub.Sample(ctx, sub, subParams)
		if err != nil {
			return nil, err
		}

		copy(cand, best)
		assign := subSet.Assignment(0)
		for _, k := range vars {
			cand[k] = assign[k]
		}
		descend(c, cand)

		if e := c.Energy(cand); e < bestE-1e-12 {
			copy(best, cand)
			bestE = e
			stale = 0
			improvements++
		} else {
			stale++
		}
		q.logger.Trace("Decomposition step", "iter", iter, "energy", bestE, "stale", stale)
	}

	set.Add(best, bestE, 1)
	set.Info["iterations"] = iter
	set.Info["improvements"] = improvements
	set.Info["subproblem_size"] = min(p.SubproblemSize, c.Len())
	set.Info["elapsed"] = time.Since(start).String()
	q.logger.Debug("Decomposition finished", "iterations", iter, "energy", bestE, "elapsed", time.Since(start))

	return set, nil
}

// impactOrder returns the size variables with the largest |ΔE| of a single
// flip from x, ties broken by index.
func impactOrder(c *qubo.Compiled, x []int8, size int) []int {
	idx := make([]int, c.Len())
	impact := make([]float64, c.Len())
	for k := range idx {
		idx[k] = k
		impact[k] = math.Abs(c.FlipDelta(x, k))
	}
	slices.SortStableFunc(idx, func(a, b int) int { return cmp.Compare(impact[b], impact[a]) })

	return idx[:min(size, len(idx))]
}

// clamp builds the sub-problem over vars with every other variable fixed
// to its value in x. Sub-problem labels are the dense indices of c.
func clamp(c *qubo.Compiled, x []int8, vars []int) *qubo.Model {
	in := make(map[int]bool, len(vars))
	for _, k := range vars {
		in[k] = true
	}
	sub := qubo.NewModel()
	for _, k := range vars {
		h := c.Linear[k]
		for _, nb := range c.Adj[k] {
			switch {
			case !in[nb.V]:
				h += nb.W * float64(x[nb.V])
			case nb.V > k:
				sub.AddQuadratic(k, nb.V, nb.W)
			}
		}
		sub.AddLinear(k, h)
	}

	return sub
}
