package rev

import "fmt"

// Branch executes Then when Flag is 1 and Else when Flag is 0.
//
// It models conditional execution scoped by a quantum predicate as a tagged
// variant: each body is inverted on its own, and the flag, which neither
// body may write, selects the same body on the way back.
type Branch struct {
	Flag Ref
	Then []Op
	Else []Op
}

// NewBranch builds a Branch and rejects bodies that write the flag register.
func NewBranch(flag Ref, then, els []Op) (*Branch, error) {
	b := &Branch{Flag: flag, Then: then, Else: els}
	if contains(b.Writes(), flag.Reg) {
		return nil, fmt.Errorf("branch on %s: %w", flag, ErrFlagWritten)
	}

	return b, nil
}

// MustBranch is NewBranch for statically known bodies; it panics on a flag
// write, which is a programming error in the caller.
func MustBranch(flag Ref, then, els []Op) *Branch {
	b, err := NewBranch(flag, then, els)
	if err != nil {
		panic(err)
	}

	return b
}

func (b *Branch) Apply(ctx *Context) error {
	r, err := ctx.Reg(b.Flag.Reg)
	if err != nil {
		return err
	}
	if r.Width() != 1 {
		return fmt.Errorf("branch on %s: %w", b.Flag, ErrNotFlag)
	}
	v, err := r.Slot(b.Flag.Slot)
	if err != nil {
		return err
	}
	body := b.Else
	if v == 1 {
		body = b.Then
	}
	for _, op := range body {
		if err = ctx.apply(op); err != nil {
			return err
		}
	}
	if after, _ := ctx.Read(b.Flag); after != v {
		return fmt.Errorf("branch on %s: %w", b.Flag, ErrFlagWritten)
	}

	return nil
}

func (b *Branch) Inverse() Op {
	return &Branch{Flag: b.Flag, Then: invertOps(b.Then), Else: invertOps(b.Else)}
}

func (b *Branch) Reads() []string {
	reads := unionOf(b.bodies(), Op.Reads)
	if !contains(reads, b.Flag.Reg) {
		reads = append(reads, b.Flag.Reg)
	}

	return reads
}

func (b *Branch) Writes() []string { return unionOf(b.bodies(), Op.Writes) }

func (b *Branch) bodies() []Op {
	ops := make([]Op, 0, len(b.Then)+len(b.Else))

	return append(append(ops, b.Then...), b.Else...)
}

func (b *Branch) String() string {
	return fmt.Sprintf("if %s (then %d ops, else %d ops)", b.Flag, len(b.Then), len(b.Else))
}
