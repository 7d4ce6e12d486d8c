package rev

import "fmt"

// Predicate is a pure boolean function of register contents.
type Predicate interface {
	Eval(ctx *Context) (bool, error)
	Reads() []string
	String() string
}

// AtMost holds when Reg ≤ Bound.
type AtMost struct {
	Reg   Ref
	Bound uint64
}

func (p AtMost) Eval(ctx *Context) (bool, error) {
	v, err := ctx.Read(p.Reg)
	if err != nil {
		return false, err
	}

	return v <= p.Bound, nil
}

func (p AtMost) Reads() []string { return []string{p.Reg.Reg} }
func (p AtMost) String() string  { return fmt.Sprintf("%s <= %d", p.Reg, p.Bound) }

// Equal holds when Reg == Value.
type Equal struct {
	Reg   Ref
	Value uint64
}

func (p Equal) Eval(ctx *Context) (bool, error) {
	v, err := ctx.Read(p.Reg)
	if err != nil {
		return false, err
	}

	return v == p.Value, nil
}

func (p Equal) Reads() []string { return []string{p.Reg.Reg} }
func (p Equal) String() string  { return fmt.Sprintf("%s == %d", p.Reg, p.Value) }

// SumExceeds holds when Array[Index] + Addend > Bound. The sum is evaluated
// exactly, without wrapping at the register width.
type SumExceeds struct {
	Array  string
	Index  Ref
	Addend Ref
	Bound  uint64
}

func (p SumExceeds) Eval(ctx *Context) (bool, error) {
	idx, err := ctx.Read(p.Index)
	if err != nil {
		return false, err
	}
	arr, err := ctx.Reg(p.Array)
	if err != nil {
		return false, err
	}
	cur, err := arr.Slot(int(idx))
	if err != nil {
		return false, err
	}
	add, err := ctx.Read(p.Addend)
	if err != nil {
		return false, err
	}

	return cur+add > p.Bound, nil
}

func (p SumExceeds) Reads() []string { return []string{p.Array, p.Index.Reg, p.Addend.Reg} }

func (p SumExceeds) String() string {
	return fmt.Sprintf("%s[%s] + %s > %d", p.Array, p.Index, p.Addend, p.Bound)
}

// SplitWitness holds when the current slot of an indexed counter was just
// opened by Addend: Index ≥ 1, Array[Index] == Addend and
// Array[Index−1] + Addend > Bound. After a capacity split it recomputes the
// split flag from the post-split state, so the flag can be uncomputed.
type SplitWitness struct {
	Array  string
	Index  Ref
	Addend Ref
	Bound  uint64
}

func (p SplitWitness) Eval(ctx *Context) (bool, error) {
	idx, err := ctx.Read(p.Index)
	if err != nil {
		return false, err
	}
	if idx == 0 {
		return false, nil
	}
	arr, err := ctx.Reg(p.Array)
	if err != nil {
		return false, err
	}
	cur, err := arr.Slot(int(idx))
	if err != nil {
		return false, err
	}
	prev, err := arr.Slot(int(idx) - 1)
	if err != nil {
		return false, err
	}
	add, err := ctx.Read(p.Addend)
	if err != nil {
		return false, err
	}

	return cur == add && prev+add > p.Bound, nil
}

func (p SplitWitness) Reads() []string { return []string{p.Array, p.Index.Reg, p.Addend.Reg} }

func (p SplitWitness) String() string {
	return fmt.Sprintf("split(%s, %s, %s, %d)", p.Array, p.Index, p.Addend, p.Bound)
}
