package cvrp

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/qvrp/perm"
	"github.com/katalvlaran/qvrp/rev"
)

// Register names used by the accumulator programs.
const (
	DistanceReg   = "distance"
	CounterReg    = "demand_counter"
	IndexerReg    = "demand_indexer"
	CityDemandReg = "city_demand"
	SplitReg      = "split"
)

// DefaultPrecision is the fixed-point precision of the demo instances.
const DefaultPrecision = 5

// Accumulator holds the quantised lookup tables of one instance and the
// DistanceAccumulator program built from them.
type Accumulator struct {
	inst  *Instance
	fixed rev.FixedPoint

	demandWidth uint
	slots       int
	indexWidth  uint

	dist   *rev.Table // d(i,j)
	depot  *rev.Table // d(0,i)
	demand *rev.Table // demand[i]

	forward *rev.Program
}

// NewAccumulator validates inst and compiles its DistanceAccumulator.
//
// Stage 1 (Validate): instance, city amount ≥ 3, precision ∈ [1..31].
// Stage 2 (Tables): distances rounded to the fixed-point grid; the
// worst-case route total must fit the register (ErrPrecisionOverflow).
// Stage 3 (Program): prologue plus one step per consecutive pair.
//
// Complexity: O(n²) for the tables, O(n) ops.
func NewAccumulator(inst *Instance, precision int) (*Accumulator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	n := inst.CityAmount()
	if n < perm.MinCities {
		return nil, fmt.Errorf("accumulator %s: %w", inst.Name, perm.ErrTooFewCities)
	}
	fixed, err := rev.NewFixedPoint(precision)
	if err != nil {
		return nil, err
	}
	a := &Accumulator{
		inst:        inst,
		fixed:       fixed,
		demandWidth: rev.BitsFor(2*inst.Capacity + 1),
		slots:       n - 1,
	}
	a.indexWidth = rev.BitsFor(a.slots)
	if err = a.buildTables(); err != nil {
		return nil, err
	}
	if bound, ok := a.worstCase(); !ok || bound > fixed.Max() {
		return nil, fmt.Errorf("accumulator %s at precision %d (max %.6g): %w",
			inst.Name, precision, fixed.Decode(fixed.Max()), ErrPrecisionOverflow)
	}
	a.forward = a.build()

	return a, nil
}

func (a *Accumulator) buildTables() error {
	var (
		n    = a.inst.CityAmount()
		i, j int
		d    float64
		q    uint64
		err  error
	)
	a.dist, _ = rev.NewTable("dist", n, n)
	a.depot, _ = rev.NewTable("dist_depot", n)
	a.demand, _ = rev.NewTable("demand", n)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if d, err = a.inst.Dist.At(i, j); err != nil {
				return err
			}
			if q, err = a.fixed.Encode(d); err != nil {
				return fmt.Errorf("d(%d,%d): %w", i, j, err)
			}
			_ = a.dist.Set(q, i, j)
			if i == 0 {
				_ = a.depot.Set(q, j)
			}
		}
		_ = a.demand.Set(uint64(a.inst.Demand[i]), i)
	}

	return nil
}

// worstCase bounds every raw route total from the quantised tables:
//
//	2·max d(0,i) + (n−2)·max(max d(i,j), 2·max d(0,i))
//
// Each consecutive pair adds either the direct leg or the two depot legs of
// a split. ok is false when the bound itself overflows uint64.
func (a *Accumulator) worstCase() (bound uint64, ok bool) {
	var (
		n                = a.inst.CityAmount()
		maxDepot, maxLeg uint64
		keys             = make([]uint64, 2)
	)
	for i := 1; i < n; i++ {
		keys[0] = uint64(i)
		d, _ := a.depot.Lookup(keys[:1])
		maxDepot = max(maxDepot, d)
		for j := 1; j < n; j++ {
			keys[1] = uint64(j)
			d, _ = a.dist.Lookup(keys)
			maxLeg = max(maxLeg, d)
		}
	}
	step := max(maxLeg, 2*maxDepot)
	hi, rest := bits.Mul64(uint64(n-2), step)
	if hi != 0 {
		return 0, false
	}
	bound, carry := bits.Add64(rest, 2*maxDepot, 0)

	return bound, carry == 0
}

// build assembles the forward program:
//
//	distance += d(0,it[0]) + d(it[last],0)
//	counter[0] += demand[it[0]]
//	for each pair (cur, next):
//	  city_demand += demand[next]
//	  split ^= counter[idx] + city_demand > capacity
//	  if split: idx += 1; counter[idx] += city_demand; distance += d(0,cur) + d(0,next)
//	  else:     counter[idx] += city_demand; distance += d(cur,next)
//	  split ^= witness(idx, counter, city_demand)   // back to zero on both paths
//	  city_demand -= demand[next]
func (a *Accumulator) build() *rev.Program {
	var (
		n     = a.inst.CityAmount()
		last  = n - 2
		it    = func(k int) rev.Ref { return rev.At(perm.ItineraryReg, k) }
		res   = rev.Scalar(DistanceReg)
		idx   = rev.Scalar(IndexerReg)
		cdem  = rev.Scalar(CityDemandReg)
		split = rev.Scalar(SplitReg)
		bound = uint64(a.inst.Capacity)
		i     int
	)
	p := rev.NewProgram("distance",
		rev.Alloc{Name: DistanceReg, Width: a.fixed.Width()},
		rev.Alloc{Name: CounterReg, Width: a.demandWidth, Slots: a.slots},
		rev.Alloc{Name: IndexerReg, Width: a.indexWidth},
		rev.AddLookup{Dst: res, Table: a.depot, Keys: []rev.Ref{it(0)}},
		rev.AddLookup{Dst: res, Table: a.depot, Keys: []rev.Ref{it(last)}},
		rev.AddLookup{Dst: rev.At(CounterReg, 0), Table: a.demand, Keys: []rev.Ref{it(0)}},
	)
	for i = 0; i < n-2; i++ {
		cur, next := it(i), it(i+1)
		step := rev.NewProgram(fmt.Sprintf("leg %d", i),
			rev.Alloc{Name: CityDemandReg, Width: a.demandWidth},
			rev.AddLookup{Dst: cdem, Table: a.demand, Keys: []rev.Ref{next}},
			rev.Alloc{Name: SplitReg, Width: 1},
			rev.XorPredicate{Flag: split, Pred: rev.SumExceeds{Array: CounterReg, Index: idx, Addend: cdem, Bound: bound}},
			rev.MustBranch(split,
				[]rev.Op{
					rev.AddConst{Dst: idx, Delta: 1},
					rev.AddIndexed{Array: CounterReg, Index: idx, Src: cdem},
					rev.AddLookup{Dst: res, Table: a.depot, Keys: []rev.Ref{cur}},
					rev.AddLookup{Dst: res, Table: a.depot, Keys: []rev.Ref{next}},
				},
				[]rev.Op{
					rev.AddIndexed{Array: CounterReg, Index: idx, Src: cdem},
					rev.AddLookup{Dst: res, Table: a.dist, Keys: []rev.Ref{cur, next}},
				},
			),
			rev.XorPredicate{Flag: split, Pred: rev.SplitWitness{Array: CounterReg, Index: idx, Addend: cdem, Bound: bound}},
			rev.Free{Name: SplitReg, Width: 1, Verify: true},
			rev.AddLookup{Dst: cdem, Table: a.demand, Keys: []rev.Ref{next}, Neg: true},
			rev.Free{Name: CityDemandReg, Width: a.demandWidth, Verify: true},
		)
		p.Append(step)
	}

	return p
}

// Instance returns the compiled instance.
func (a *Accumulator) Instance() *Instance { return a.inst }

// Fixed returns the fixed-point format of the distance register.
func (a *Accumulator) Fixed() rev.FixedPoint { return a.fixed }

// Forward returns the DistanceAccumulator program. It reads the itinerary
// register and leaves distance, demand_counter and demand_indexer live.
func (a *Accumulator) Forward() *rev.Program { return a.forward }

// Backward returns the exact inverse of Forward; it returns every register
// to zero and frees it with verification.
func (a *Accumulator) Backward() *rev.Program { return a.forward.Reverse() }

// ForwardProgram compiles inst and returns its forward program.
func ForwardProgram(inst *Instance, precision int) (*rev.Program, error) {
	a, err := NewAccumulator(inst, precision)
	if err != nil {
		return nil, err
	}

	return a.Forward(), nil
}

// BackwardProgram compiles inst and returns its backward program.
func BackwardProgram(inst *Instance, precision int) (*rev.Program, error) {
	a, err := NewAccumulator(inst, precision)
	if err != nil {
		return nil, err
	}

	return a.Backward(), nil
}

// State is a snapshot of the accumulator registers.
type State struct {
	Distance uint64   // raw fixed-point value
	Counter  []uint64 // load per sub-route slot
	Indexer  uint64   // index of the last sub-route
}

// Accumulate runs the forward program on ctx, which must hold a
// materialised itinerary, and returns the live registers.
func (a *Accumulator) Accumulate(ctx *rev.Context) (State, error) {
	if err := a.forward.Apply(ctx); err != nil {
		return State{}, err
	}

	return a.Read(ctx)
}

// Read returns the current accumulator registers without changing them.
func (a *Accumulator) Read(ctx *rev.Context) (State, error) {
	var (
		s   State
		r   *rev.Register
		err error
	)
	if r, err = ctx.Reg(DistanceReg); err != nil {
		return State{}, err
	}
	s.Distance = r.Value()
	if r, err = ctx.Reg(CounterReg); err != nil {
		return State{}, err
	}
	s.Counter = r.Values()
	if r, err = ctx.Reg(IndexerReg); err != nil {
		return State{}, err
	}
	s.Indexer = r.Value()

	return s, nil
}
