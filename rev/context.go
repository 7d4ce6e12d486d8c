package rev

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/log"
)

// Context owns the register file of one reversible evaluation.
//
// A Context replaces any notion of an ambient "current session": every
// Program runs against the Context it is handed, and two Contexts never share
// state. A Context is not safe for concurrent use; evaluate basis states in
// parallel with one Context each.
type Context struct {
	regs  map[string]*Register
	phase int

	ops      int
	liveBits int
	peakBits int

	logger log.Logger
	trace  bool
}

// Stats summarises resource usage of a Context.
type Stats struct {
	Ops      int // ops applied, including nested ones
	LiveBits int // qubits currently allocated
	PeakBits int // maximum qubits allocated at any time
}

// NewContext returns an empty Context with phase +1.
// A nil logger falls back to log.Root().
func NewContext(logger log.Logger) *Context {
	if logger == nil {
		logger = log.Root()
	}

	return &Context{regs: make(map[string]*Register), phase: 1, logger: logger}
}

// SetTrace enables per-op trace logging.
func (c *Context) SetTrace(on bool) { c.trace = on }

// Logger returns the context logger.
func (c *Context) Logger() log.Logger { return c.logger }

// Phase returns the global phase, +1 or -1.
func (c *Context) Phase() int { return c.phase }

// FlipPhase multiplies the global phase by -1.
func (c *Context) FlipPhase() { c.phase = -c.phase }

// Stats returns a snapshot of the resource counters.
func (c *Context) Stats() Stats {
	return Stats{Ops: c.ops, LiveBits: c.liveBits, PeakBits: c.peakBits}
}

// Alloc creates a zero-initialised register.
//
// Errors: ErrBadWidth for width ∉ [1..64] or slots < 1, ErrRegisterExists.
func (c *Context) Alloc(name string, width uint, slots int) (*Register, error) {
	if width == 0 || width > 64 || slots < 1 {
		return nil, fmt.Errorf("alloc %s(w=%d,n=%d): %w", name, width, slots, ErrBadWidth)
	}
	if _, ok := c.regs[name]; ok {
		return nil, fmt.Errorf("alloc %s: %w", name, ErrRegisterExists)
	}
	r := &Register{name: name, width: width, slots: make([]uint64, slots)}
	c.regs[name] = r
	c.liveBits += r.Bits()
	if c.liveBits > c.peakBits {
		c.peakBits = c.liveBits
	}

	return r, nil
}

// Init allocates a register and loads classical values into it.
// Values are reduced modulo 2^width. It is used for input registers such as
// permutation selectors; ancillas are always allocated zero.
func (c *Context) Init(name string, width uint, values ...uint64) (*Register, error) {
	r, err := c.Alloc(name, width, len(values))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		r.slots[i] = v & r.mask()
	}

	return r, nil
}

// Free releases a register. With verify set, a non-zero register is not
// released and ErrAncillaNotZero is returned.
func (c *Context) Free(name string, verify bool) error {
	r, ok := c.regs[name]
	if !ok {
		return fmt.Errorf("free %s: %w", name, ErrUnknownRegister)
	}
	if verify && !r.IsZero() {
		c.logger.Error("Ancilla not returned to zero", "register", name, "values", r.Values())
		return fmt.Errorf("free %s=%v: %w", name, r.Values(), ErrAncillaNotZero)
	}
	delete(c.regs, name)
	c.liveBits -= r.Bits()

	return nil
}

// Reg returns the live register called name.
func (c *Context) Reg(name string) (*Register, error) {
	r, ok := c.regs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownRegister)
	}

	return r, nil
}

// Read returns the value addressed by ref.
func (c *Context) Read(ref Ref) (uint64, error) {
	r, err := c.Reg(ref.Reg)
	if err != nil {
		return 0, err
	}

	return r.Slot(ref.Slot)
}

// Live returns the names of all live registers in sorted order.
func (c *Context) Live() []string {
	names := make([]string, 0, len(c.regs))
	for name := range c.regs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// apply runs a single op and keeps the op counter.
func (c *Context) apply(op Op) error {
	c.ops++
	if c.trace {
		c.logger.Trace("Apply reversible op", "op", op.String())
	}

	return op.Apply(c)
}
