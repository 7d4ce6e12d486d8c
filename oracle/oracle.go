package oracle

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/perm"
	"github.com/katalvlaran/qvrp/rev"
)

// MarkReg is the flag register of the marking step.
const MarkReg = "below_threshold"

// Options configures an Oracle.
type Options struct {
	// Precision is the number of fractional (and integer) bits of the
	// distance register.
	Precision int

	// Threshold marks routes with distance ≤ Threshold, after quantisation.
	Threshold float64

	// Logger receives compile and transition events. Nil means log.Root().
	Logger log.Logger
}

// DefaultOptions mirrors the demo configuration: precision 5, threshold 11.
func DefaultOptions() Options {
	return Options{Precision: cvrp.DefaultPrecision, Threshold: 11}
}

// Oracle is the compiled threshold oracle of one instance.
type Oracle struct {
	acc       *cvrp.Accumulator
	evalPerm  *rev.Program
	unperm    *rev.Program
	backward  *rev.Program
	mark      *rev.Program
	threshold uint64
	cities    int
	logger    log.Logger
}

// New compiles the oracle for inst.
func New(inst *cvrp.Instance, opts Options) (*Oracle, error) {
	acc, err := cvrp.NewAccumulator(inst, opts.Precision)
	if err != nil {
		return nil, err
	}
	evalPerm, err := perm.EvalProgram(inst.CityAmount())
	if err != nil {
		return nil, err
	}
	thr, err := acc.Threshold(opts.Threshold)
	if err != nil {
		return nil, fmt.Errorf("threshold %v: %w", opts.Threshold, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Root()
	}
	below := rev.XorPredicate{Flag: rev.Scalar(MarkReg), Pred: rev.AtMost{Reg: rev.Scalar(cvrp.DistanceReg), Bound: thr}}
	o := &Oracle{
		acc:      acc,
		evalPerm: evalPerm,
		unperm:   evalPerm.Reverse(),
		backward: acc.Backward(),
		mark: rev.NewProgram("mark",
			rev.Alloc{Name: MarkReg, Width: 1},
			below,
			rev.PhaseFlip{Flag: rev.Scalar(MarkReg)},
			below,
			rev.Free{Name: MarkReg, Width: 1, Verify: true},
		),
		threshold: thr,
		cities:    inst.CityAmount(),
		logger:    logger,
	}
	logger.Debug("Compiled threshold oracle", "instance", inst.Name, "cities", o.cities,
		"precision", opts.Precision, "threshold", opts.Threshold, "raw", thr, "ops", o.Ops())

	return o, nil
}

// Accumulator returns the compiled distance accumulator.
func (o *Oracle) Accumulator() *cvrp.Accumulator { return o.acc }

// Threshold returns the quantised threshold.
func (o *Oracle) Threshold() uint64 { return o.threshold }

// CityAmount returns the number of cities including the depot.
func (o *Oracle) CityAmount() int { return o.cities }

// Program returns the whole oracle call as one program, for inspection and
// DOT export. Cycle runs the same parts one transition at a time.
func (o *Oracle) Program() *rev.Program {
	return rev.NewProgram("oracle",
		o.evalPerm,
		o.acc.Forward(),
		o.mark,
		o.backward,
		o.unperm,
	)
}

// Ops counts every op of one oracle call, nested ones included.
func (o *Oracle) Ops() int {
	count := 0
	o.Program().Walk(func(op rev.Op, _ int) {
		if _, nested := op.(*rev.Program); !nested {
			count++
		}
	})

	return count
}

// Result is the outcome of one oracle call on a basis state.
type Result struct {
	Marked   bool
	Phase    int    // phase of the context after the call
	Distance uint64 // raw distance seen by the marking step
}

// Evaluate runs one full cycle on ctx, which must hold the selector
// registers. On success ctx holds exactly the registers it held before.
func (o *Oracle) Evaluate(ctx *rev.Context) (Result, error) {
	c := o.Begin(ctx)
	steps := []func() error{c.Materialize, c.Compute, c.Mark, c.Uncompute}
	for _, step := range steps {
		if err := step(); err != nil {
			return Result{}, err
		}
	}

	return c.Finish()
}
