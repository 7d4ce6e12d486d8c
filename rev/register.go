package rev

import "fmt"

// Register is a named fixed-width register with one or more slots.
// A register with a single slot behaves as a scalar; multi-slot registers
// model arrays (itineraries, indexed counters).
type Register struct {
	name  string
	width uint
	slots []uint64
}

// Name returns the register name.
func (r *Register) Name() string { return r.name }

// Width returns the bit width of every slot.
func (r *Register) Width() uint { return r.width }

// Len returns the number of slots.
func (r *Register) Len() int { return len(r.slots) }

// Value returns slot 0.
func (r *Register) Value() uint64 { return r.slots[0] }

// Slot returns slot i, or ErrSlotOutOfRange.
func (r *Register) Slot(i int) (uint64, error) {
	if i < 0 || i >= len(r.slots) {
		return 0, fmt.Errorf("%s[%d]: %w", r.name, i, ErrSlotOutOfRange)
	}

	return r.slots[i], nil
}

// Values returns a copy of all slots.
func (r *Register) Values() []uint64 {
	out := make([]uint64, len(r.slots))
	copy(out, r.slots)

	return out
}

// IsZero reports whether every slot is zero.
func (r *Register) IsZero() bool {
	for _, v := range r.slots {
		if v != 0 {
			return false
		}
	}

	return true
}

// Bits returns the number of qubits the register occupies.
func (r *Register) Bits() int { return int(r.width) * len(r.slots) }

func (r *Register) mask() uint64 {
	if r.width >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << r.width) - 1
}

// add performs slot += delta modulo 2^width.
func (r *Register) add(i int, delta uint64) {
	r.slots[i] = (r.slots[i] + delta) & r.mask()
}

// sub performs slot -= delta modulo 2^width.
func (r *Register) sub(i int, delta uint64) {
	r.slots[i] = (r.slots[i] - delta) & r.mask()
}

// Ref addresses one slot of a named register.
type Ref struct {
	Reg  string
	Slot int
}

// At is shorthand for Ref{Reg: reg, Slot: slot}.
func At(reg string, slot int) Ref { return Ref{Reg: reg, Slot: slot} }

// Scalar is shorthand for slot 0 of reg.
func Scalar(reg string) Ref { return Ref{Reg: reg} }

func (r Ref) String() string {
	if r.Slot == 0 {
		return r.Reg
	}

	return fmt.Sprintf("%s[%d]", r.Reg, r.Slot)
}

// BitsFor returns the register width needed to hold values 0..n-1 (at least 1).
func BitsFor(n int) uint {
	var w uint = 1
	for (1 << w) < n {
		w++
	}

	return w
}
