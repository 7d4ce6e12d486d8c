package sampler

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/qubo"
	"golang.org/x/sync/errgroup"
)

// Annealer is the "sim" sampler: single-flip Metropolis sweeps over a
// geometric inverse-temperature schedule. Reads run in parallel, each on its
// own random stream, so results depend only on Params.Seed.
type Annealer struct {
	logger log.Logger
}

// NewAnnealer returns a simulated-annealing sampler.
func NewAnnealer(logger log.Logger) *Annealer {
	if logger == nil {
		logger = log.Root()
	}

	return &Annealer{logger: logger}
}

// Name implements Sampler.
func (a *Annealer) Name() string { return KindSim }

// Sample implements Sampler.
func (a *Annealer) Sample(ctx context.Context, m *qubo.Model, p Params) (*qubo.SampleSet, error) {
	p = p.withDefaults(KindSim)
	start := time.Now()

	c := m.Compile()
	set := qubo.NewSampleSet(c.Vars)
	if c.Len() == 0 {
		set.Add(nil, c.Offset, p.NumReads)
		return set, nil
	}

	betas := schedule(c, p)
	results := make([][]int8, p.NumReads)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < p.NumReads; r++ {
		r := r
		g.Go(func() error {
			rng := rand.New(rand.NewSource(streamSeed(p.Seed, r)))
			x, err := anneal(gctx, c, randomState(c.Len(), rng), betas, rng)
			if err != nil {
				return err
			}
			results[r] = x

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, x := range results {
		set.Add(x, c.Energy(x), 1)
	}
	set.Sort()
	set.Info["num_reads"] = p.NumReads
	set.Info["num_sweeps"] = p.Sweeps
	set.Info["beta_range"] = []float64{betas[0], betas[len(betas)-1]}
	set.Info["elapsed"] = time.Since(start).String()
	a.logger.Debug("Annealing finished", "vars", c.Len(), "reads", p.NumReads, "distinct", set.Len(), "elapsed", time.Since(start))

	return set, nil
}

// anneal runs one read from x in place.
func anneal(ctx context.Context, c *qubo.Compiled, x []int8, betas []float64, rng *rand.Rand) ([]int8, error) {
	n := c.Len()
	for _, beta := range betas {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for k := 0; k < n; k++ {
			d := c.FlipDelta(x, k)
			if d <= 0 || rng.Float64() < math.Exp(-beta*d) {
				x[k] ^= 1
			}
		}
	}
	descend(c, x)

	return x, nil
}

// descend flips single variables while any flip lowers the energy.
func descend(c *qubo.Compiled, x []int8) {
	for improved := true; improved; {
		improved = false
		for k := 0; k < c.Len(); k++ {
			if c.FlipDelta(x, k) < -1e-12 {
				x[k] ^= 1
				improved = true
			}
		}
	}
}

// schedule returns p.Sweeps geometrically spaced betas. Without an explicit
// range the hot end accepts the largest possible flip with probability 1/2
// and the cold end accepts the smallest with probability 1/100.
func schedule(c *qubo.Compiled, p Params) []float64 {
	hot, cold := p.BetaRange[0], p.BetaRange[1]
	if hot <= 0 || cold <= 0 {
		maxd, mind := 0.0, math.Inf(1)
		for k := 0; k < c.Len(); k++ {
			field := math.Abs(c.Linear[k])
			if field > 0 {
				mind = math.Min(mind, field)
			}
			for _, nb := range c.Adj[k] {
				w := math.Abs(nb.W)
				field += w
				mind = math.Min(mind, w)
			}
			maxd = math.Max(maxd, field)
		}
		if maxd == 0 {
			maxd, mind = 1, 1
		}
		hot, cold = math.Log(2)/maxd, math.Log(100)/mind
	}

	betas := make([]float64, p.Sweeps)
	if p.Sweeps == 1 {
		betas[0] = cold
		return betas
	}
	ratio := math.Pow(cold/hot, 1/float64(p.Sweeps-1))
	b := hot
	for i := range betas {
		betas[i] = b
		b *= ratio
	}

	return betas
}

func randomState(n int, rng *rand.Rand) []int8 {
	x := make([]int8, n)
	for k := range x {
		x[k] = int8(rng.Intn(2))
	}

	return x
}

// streamSeed derives the seed of read r (SplitMix64 finalizer).
func streamSeed(seed int64, r int) int64 {
	z := uint64(seed) + uint64(r+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb

	return int64(z ^ (z >> 31))
}
