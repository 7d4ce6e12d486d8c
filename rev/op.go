package rev

import (
	"sort"
	"strings"
)

// Op is a single reversible operation on a Context.
//
// Inverse must return the exact algebraic inverse: applying an op and then
// its inverse leaves every register and the phase unchanged.
type Op interface {
	Apply(ctx *Context) error
	Inverse() Op
	// Reads lists registers the op reads without modifying.
	Reads() []string
	// Writes lists registers the op modifies (including allocation).
	Writes() []string
	String() string
}

// Program is an ordered sequence of ops. A Program is itself an Op, so
// programs nest; its inverse runs the inverted ops in reverse order.
type Program struct {
	Name string
	Ops  []Op
}

// NewProgram returns a Program holding ops.
func NewProgram(name string, ops ...Op) *Program {
	return &Program{Name: name, Ops: ops}
}

// Append adds ops to the end of the program.
func (p *Program) Append(ops ...Op) { p.Ops = append(p.Ops, ops...) }

// Len returns the number of top-level ops.
func (p *Program) Len() int { return len(p.Ops) }

// Apply runs every op in order and stops at the first error.
func (p *Program) Apply(ctx *Context) error {
	for _, op := range p.Ops {
		if err := ctx.apply(op); err != nil {
			return err
		}
	}

	return nil
}

// Inverse returns the program that undoes p.
func (p *Program) Inverse() Op {
	name := p.Name
	if strings.HasSuffix(name, "⁻¹") {
		name = strings.TrimSuffix(name, "⁻¹")
	} else {
		name += "⁻¹"
	}

	return &Program{Name: name, Ops: invertOps(p.Ops)}
}

// Reverse is Inverse with a concrete return type.
func (p *Program) Reverse() *Program { return p.Inverse().(*Program) }

// Reads returns the sorted union of the ops' read sets.
func (p *Program) Reads() []string {
	return unionOf(p.Ops, Op.Reads)
}

// Writes returns the sorted union of the ops' write sets.
func (p *Program) Writes() []string {
	return unionOf(p.Ops, Op.Writes)
}

func (p *Program) String() string { return "program " + p.Name }

// Walk calls fn for every op in p in execution order, descending into nested
// programs and both bodies of branches. depth is the nesting level.
func (p *Program) Walk(fn func(op Op, depth int)) {
	walkOps(p.Ops, 0, fn)
}

func walkOps(ops []Op, depth int, fn func(op Op, depth int)) {
	for _, op := range ops {
		fn(op, depth)
		switch o := op.(type) {
		case *Program:
			walkOps(o.Ops, depth+1, fn)
		case *Branch:
			walkOps(o.Then, depth+1, fn)
			walkOps(o.Else, depth+1, fn)
		}
	}
}

// invertOps reverses ops and inverts each one.
func invertOps(ops []Op) []Op {
	out := make([]Op, len(ops))
	var i int
	for i = range ops {
		out[len(ops)-1-i] = ops[i].Inverse()
	}

	return out
}

func unionOf(ops []Op, get func(Op) []string) []string {
	seen := make(map[string]struct{})
	for _, op := range ops {
		for _, r := range get(op) {
			seen[r] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)

	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
