package rev

import (
	"fmt"
	"math"
)

// FixedPoint describes an unsigned fixed-point register with Precision
// fractional bits and Precision integer bits (2·Precision bits in total).
// Representable values are k·2^−Precision for k ∈ [0, 2^(2·Precision)).
type FixedPoint struct {
	Precision uint
}

// NewFixedPoint validates precision ∈ [1..31].
func NewFixedPoint(precision int) (FixedPoint, error) {
	if precision < 1 || precision > 31 {
		return FixedPoint{}, fmt.Errorf("precision %d: %w", precision, ErrPrecision)
	}

	return FixedPoint{Precision: uint(precision)}, nil
}

// Width returns the register width in bits.
func (f FixedPoint) Width() uint { return 2 * f.Precision }

// Max returns the largest raw value.
func (f FixedPoint) Max() uint64 { return (uint64(1) << f.Width()) - 1 }

// Step returns the resolution 2^−Precision.
func (f FixedPoint) Step() float64 { return math.Ldexp(1, -int(f.Precision)) }

// Encode rounds x to the nearest representable value and saturates at Max.
func (f FixedPoint) Encode(x float64) (uint64, error) {
	if math.IsNaN(x) || x < 0 {
		return 0, fmt.Errorf("encode %v: %w", x, ErrNotRepresentable)
	}
	scaled := math.Round(math.Ldexp(x, int(f.Precision)))
	if scaled >= float64(f.Max()) {
		return f.Max(), nil
	}

	return uint64(scaled), nil
}

// Decode converts a raw register value back to a real number.
func (f FixedPoint) Decode(v uint64) float64 {
	return math.Ldexp(float64(v), -int(f.Precision))
}
