package oracle

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/rev"
)

// State is a stage of the oracle cycle.
type State int

const (
	Idle State = iota
	PermutationMaterialized
	DistanceComputed
	ThresholdMarked
	Uncomputed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case PermutationMaterialized:
		return "PermutationMaterialized"
	case DistanceComputed:
		return "DistanceComputed"
	case ThresholdMarked:
		return "ThresholdMarked"
	case Uncomputed:
		return "Uncomputed"
	case Failed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cycle is one oracle call on one context.
type Cycle struct {
	o     *Oracle
	ctx   *rev.Context
	state State

	live     []string
	phase    int
	distance uint64
}

// Begin starts a cycle on ctx in state Idle.
func (o *Oracle) Begin(ctx *rev.Context) *Cycle {
	return &Cycle{o: o, ctx: ctx, state: Idle, live: ctx.Live(), phase: ctx.Phase()}
}

// State returns the current state.
func (c *Cycle) State() State { return c.state }

// Distance returns the raw distance observed when the cycle was marked.
func (c *Cycle) Distance() uint64 { return c.distance }

func (c *Cycle) advance(from, to State, run func() error) error {
	if c.state != from {
		return fmt.Errorf("%s -> %s from %s: %w", from, to, c.state, ErrBadTransition)
	}
	if err := run(); err != nil {
		c.state = Failed
		c.o.logger.Error("Oracle cycle failed", "from", from, "to", to, "err", err)
		return fmt.Errorf("%s -> %s: %w", from, to, err)
	}
	c.o.logger.Trace("Oracle transition", "from", from, "to", to)
	c.state = to

	return nil
}

// Materialize runs the permutation evaluator.
func (c *Cycle) Materialize() error {
	return c.advance(Idle, PermutationMaterialized, func() error {
		return c.o.evalPerm.Apply(c.ctx)
	})
}

// Compute runs the distance accumulator forward.
func (c *Cycle) Compute() error {
	return c.advance(PermutationMaterialized, DistanceComputed, func() error {
		return c.o.acc.Forward().Apply(c.ctx)
	})
}

// Mark phase-flips the state when distance ≤ threshold.
func (c *Cycle) Mark() error {
	return c.advance(DistanceComputed, ThresholdMarked, func() error {
		d, err := c.ctx.Read(rev.Scalar(cvrp.DistanceReg))
		if err != nil {
			return err
		}
		c.distance = d

		return c.o.mark.Apply(c.ctx)
	})
}

// Uncompute runs the accumulator backward and the evaluator's inverse.
func (c *Cycle) Uncompute() error {
	return c.advance(ThresholdMarked, Uncomputed, func() error {
		if err := c.o.backward.Apply(c.ctx); err != nil {
			return err
		}

		return c.o.unperm.Apply(c.ctx)
	})
}

// Finish returns the cycle to Idle and reports the result. It fails with
// ErrLeakedRegister if registers were left behind.
func (c *Cycle) Finish() (Result, error) {
	var res Result
	err := c.advance(Uncomputed, Idle, func() error {
		live := c.ctx.Live()
		if !slices.Equal(live, c.live) {
			return fmt.Errorf("live %v, want %v: %w", live, c.live, ErrLeakedRegister)
		}
		res = Result{
			Marked:   c.ctx.Phase() != c.phase,
			Phase:    c.ctx.Phase(),
			Distance: c.distance,
		}

		return nil
	})

	return res, err
}
