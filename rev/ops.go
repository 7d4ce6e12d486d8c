package rev

import (
	"fmt"
	"strings"
)

// Alloc allocates a zero register. Its inverse is a verifying Free.
type Alloc struct {
	Name  string
	Width uint
	Slots int
}

func (o Alloc) Apply(ctx *Context) error {
	slots := o.Slots
	if slots == 0 {
		slots = 1
	}
	_, err := ctx.Alloc(o.Name, o.Width, slots)

	return err
}

func (o Alloc) Inverse() Op {
	return Free{Name: o.Name, Width: o.Width, Slots: o.Slots, Verify: true}
}

func (o Alloc) Reads() []string  { return nil }
func (o Alloc) Writes() []string { return []string{o.Name} }

func (o Alloc) String() string {
	if o.Slots > 1 {
		return fmt.Sprintf("alloc %s[%d] (%d bit)", o.Name, o.Slots, o.Width)
	}

	return fmt.Sprintf("alloc %s (%d bit)", o.Name, o.Width)
}

// Free releases a register. Verify checks the register is zero first;
// unverified frees are reserved for registers zero by construction.
type Free struct {
	Name   string
	Width  uint
	Slots  int
	Verify bool
}

func (o Free) Apply(ctx *Context) error { return ctx.Free(o.Name, o.Verify) }

func (o Free) Inverse() Op { return Alloc{Name: o.Name, Width: o.Width, Slots: o.Slots} }

func (o Free) Reads() []string  { return nil }
func (o Free) Writes() []string { return []string{o.Name} }

func (o Free) String() string {
	if o.Verify {
		return "free " + o.Name + " (verified)"
	}

	return "free " + o.Name
}

// XorConst xors Values[i] into slot i of Reg. It is its own inverse and is
// used to load classical constants into freshly allocated registers.
type XorConst struct {
	Reg    string
	Values []uint64
}

func (o XorConst) Apply(ctx *Context) error {
	r, err := ctx.Reg(o.Reg)
	if err != nil {
		return err
	}
	if len(o.Values) > r.Len() {
		return fmt.Errorf("%s: %w", o, ErrSlotOutOfRange)
	}
	for i, v := range o.Values {
		r.slots[i] = (r.slots[i] ^ v) & r.mask()
	}

	return nil
}

func (o XorConst) Inverse() Op      { return o }
func (o XorConst) Reads() []string  { return nil }
func (o XorConst) Writes() []string { return []string{o.Reg} }
func (o XorConst) String() string   { return fmt.Sprintf("%s ^= %v", o.Reg, o.Values) }

// AddConst performs Dst += Delta (or -= when Neg) modulo 2^width.
type AddConst struct {
	Dst   Ref
	Delta uint64
	Neg   bool
}

func (o AddConst) Apply(ctx *Context) error {
	r, err := ctx.Reg(o.Dst.Reg)
	if err != nil {
		return err
	}
	if _, err = r.Slot(o.Dst.Slot); err != nil {
		return err
	}
	if o.Neg {
		r.sub(o.Dst.Slot, o.Delta)
	} else {
		r.add(o.Dst.Slot, o.Delta)
	}

	return nil
}

func (o AddConst) Inverse() Op      { return AddConst{Dst: o.Dst, Delta: o.Delta, Neg: !o.Neg} }
func (o AddConst) Reads() []string  { return nil }
func (o AddConst) Writes() []string { return []string{o.Dst.Reg} }
func (o AddConst) String() string   { return fmt.Sprintf("%s %s %d", o.Dst, sign(o.Neg), o.Delta) }

// AddLookup performs Dst += Table[Keys...] (or -= when Neg). It stands for the
// compute-add-uncompute pattern of a quantum dictionary lookup: the looked-up
// value never lives in a separate register.
type AddLookup struct {
	Dst   Ref
	Table *Table
	Keys  []Ref
	Neg   bool
}

func (o AddLookup) Apply(ctx *Context) error {
	var (
		keys = make([]uint64, len(o.Keys))
		err  error
		i    int
	)
	for i = range o.Keys {
		if o.Keys[i].Reg == o.Dst.Reg {
			return fmt.Errorf("%s: %w", o, ErrAliasing)
		}
		if keys[i], err = ctx.Read(o.Keys[i]); err != nil {
			return err
		}
	}
	v, err := o.Table.Lookup(keys)
	if err != nil {
		return fmt.Errorf("%s: %w", o, err)
	}
	r, err := ctx.Reg(o.Dst.Reg)
	if err != nil {
		return err
	}
	if _, err = r.Slot(o.Dst.Slot); err != nil {
		return err
	}
	if o.Neg {
		r.sub(o.Dst.Slot, v)
	} else {
		r.add(o.Dst.Slot, v)
	}

	return nil
}

func (o AddLookup) Inverse() Op {
	o.Neg = !o.Neg

	return o
}

func (o AddLookup) Reads() []string {
	out := make([]string, 0, len(o.Keys))
	for _, k := range o.Keys {
		if !contains(out, k.Reg) {
			out = append(out, k.Reg)
		}
	}

	return out
}

func (o AddLookup) Writes() []string { return []string{o.Dst.Reg} }

func (o AddLookup) String() string {
	keys := make([]string, len(o.Keys))
	for i, k := range o.Keys {
		keys[i] = k.String()
	}

	return fmt.Sprintf("%s %s %s[%s]", o.Dst, sign(o.Neg), o.Table.Name, strings.Join(keys, ","))
}

// AddIndexed performs Array[Index] += Src (or -= when Neg), where Index is
// itself a register value. Index and Src must live outside Array.
type AddIndexed struct {
	Array string
	Index Ref
	Src   Ref
	Neg   bool
}

func (o AddIndexed) Apply(ctx *Context) error {
	if o.Index.Reg == o.Array || o.Src.Reg == o.Array {
		return fmt.Errorf("%s: %w", o, ErrAliasing)
	}
	idx, err := ctx.Read(o.Index)
	if err != nil {
		return err
	}
	src, err := ctx.Read(o.Src)
	if err != nil {
		return err
	}
	arr, err := ctx.Reg(o.Array)
	if err != nil {
		return err
	}
	if idx >= uint64(arr.Len()) {
		return fmt.Errorf("%s: index %d: %w", o, idx, ErrSlotOutOfRange)
	}
	if o.Neg {
		arr.sub(int(idx), src)
	} else {
		arr.add(int(idx), src)
	}

	return nil
}

func (o AddIndexed) Inverse() Op      { return AddIndexed{Array: o.Array, Index: o.Index, Src: o.Src, Neg: !o.Neg} }
func (o AddIndexed) Reads() []string  { return []string{o.Index.Reg, o.Src.Reg} }
func (o AddIndexed) Writes() []string { return []string{o.Array} }

func (o AddIndexed) String() string {
	return fmt.Sprintf("%s[%s] %s %s", o.Array, o.Index, sign(o.Neg), o.Src)
}

// SwapSelected swaps Array[Base] with Array[Base+Selector]. Offsets that fall
// outside the array leave it unchanged. The op is its own inverse.
type SwapSelected struct {
	Array    string
	Base     int
	Selector Ref
}

func (o SwapSelected) Apply(ctx *Context) error {
	if o.Selector.Reg == o.Array {
		return fmt.Errorf("%s: %w", o, ErrAliasing)
	}
	sel, err := ctx.Read(o.Selector)
	if err != nil {
		return err
	}
	arr, err := ctx.Reg(o.Array)
	if err != nil {
		return err
	}
	if o.Base < 0 || o.Base >= arr.Len() {
		return fmt.Errorf("%s: %w", o, ErrSlotOutOfRange)
	}
	j := uint64(o.Base) + sel
	if j >= uint64(arr.Len()) {
		return nil
	}
	arr.slots[o.Base], arr.slots[j] = arr.slots[j], arr.slots[o.Base]

	return nil
}

func (o SwapSelected) Inverse() Op      { return o }
func (o SwapSelected) Reads() []string  { return []string{o.Selector.Reg} }
func (o SwapSelected) Writes() []string { return []string{o.Array} }

func (o SwapSelected) String() string {
	return fmt.Sprintf("swap %s[%d] <-> %s[%d+%s]", o.Array, o.Base, o.Array, o.Base, o.Selector)
}

// XorPredicate computes Flag ^= Pred. Flag must be a 1-bit register that the
// predicate does not read. It is its own inverse.
type XorPredicate struct {
	Flag Ref
	Pred Predicate
}

func (o XorPredicate) Apply(ctx *Context) error {
	if contains(o.Pred.Reads(), o.Flag.Reg) {
		return fmt.Errorf("%s: %w", o, ErrAliasing)
	}
	r, err := ctx.Reg(o.Flag.Reg)
	if err != nil {
		return err
	}
	if r.Width() != 1 {
		return fmt.Errorf("%s: %w", o, ErrNotFlag)
	}
	if _, err = r.Slot(o.Flag.Slot); err != nil {
		return err
	}
	ok, err := o.Pred.Eval(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", o, err)
	}
	if ok {
		r.slots[o.Flag.Slot] ^= 1
	}

	return nil
}

func (o XorPredicate) Inverse() Op      { return o }
func (o XorPredicate) Reads() []string  { return o.Pred.Reads() }
func (o XorPredicate) Writes() []string { return []string{o.Flag.Reg} }
func (o XorPredicate) String() string   { return fmt.Sprintf("%s ^= (%s)", o.Flag, o.Pred) }

// Not flips a 1-bit flag. It is its own inverse.
type Not struct {
	Flag Ref
}

func (o Not) Apply(ctx *Context) error {
	r, err := ctx.Reg(o.Flag.Reg)
	if err != nil {
		return err
	}
	if r.Width() != 1 {
		return fmt.Errorf("%s: %w", o, ErrNotFlag)
	}
	if _, err = r.Slot(o.Flag.Slot); err != nil {
		return err
	}
	r.slots[o.Flag.Slot] ^= 1

	return nil
}

func (o Not) Inverse() Op      { return o }
func (o Not) Reads() []string  { return nil }
func (o Not) Writes() []string { return []string{o.Flag.Reg} }
func (o Not) String() string   { return "flip " + o.Flag.String() }

// PhaseFlip multiplies the global phase by -1 when Flag is set (a Z gate on
// the flag qubit). It does not change any register and is its own inverse.
type PhaseFlip struct {
	Flag Ref
}

func (o PhaseFlip) Apply(ctx *Context) error {
	v, err := ctx.Read(o.Flag)
	if err != nil {
		return err
	}
	if v == 1 {
		ctx.FlipPhase()
	}

	return nil
}

func (o PhaseFlip) Inverse() Op      { return o }
func (o PhaseFlip) Reads() []string  { return []string{o.Flag.Reg} }
func (o PhaseFlip) Writes() []string { return nil }
func (o PhaseFlip) String() string   { return "z " + o.Flag.String() }

func sign(neg bool) string {
	if neg {
		return "-="
	}

	return "+="
}
