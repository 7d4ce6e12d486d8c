package perm

import (
	"fmt"

	"github.com/katalvlaran/qvrp/rev"
)

// MinCities is the smallest city amount with at least one selector.
const MinCities = 3

// ItineraryReg is the register holding the materialised itinerary.
const ItineraryReg = "itinerary"

// Domains returns the selector domain sizes city_amount−1, …, 2.
//
// Complexity: O(n).
func Domains(cityAmount int) ([]int, error) {
	if cityAmount < MinCities {
		return nil, fmt.Errorf("domains(%d): %w", cityAmount, ErrTooFewCities)
	}
	out := make([]int, cityAmount-2)
	for k := range out {
		out[k] = cityAmount - 1 - k
	}

	return out, nil
}

// Count returns the size of the selector domain product, (city_amount−1)!.
func Count(cityAmount int) (int, error) {
	doms, err := Domains(cityAmount)
	if err != nil {
		return 0, err
	}
	total := 1
	for _, d := range doms {
		total *= d
	}

	return total, nil
}

// SelectorName returns the register name of selector k (0-based).
func SelectorName(k int) string { return fmt.Sprintf("sel%d", k+1) }

// SelectorRefs returns references to all selector registers.
func SelectorRefs(cityAmount int) ([]rev.Ref, error) {
	doms, err := Domains(cityAmount)
	if err != nil {
		return nil, err
	}
	refs := make([]rev.Ref, len(doms))
	for k := range doms {
		refs[k] = rev.Scalar(SelectorName(k))
	}

	return refs, nil
}

// Bits returns the total selector width, the number of qubits a
// superposition over all selectors occupies.
func Bits(cityAmount int) (int, error) {
	doms, err := Domains(cityAmount)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, d := range doms {
		total += int(rev.BitsFor(d))
	}

	return total, nil
}

// Validate checks that selectors is a tuple inside the selector domains.
func Validate(cityAmount int, selectors []int) error {
	doms, err := Domains(cityAmount)
	if err != nil {
		return err
	}
	if len(selectors) != len(doms) {
		return fmt.Errorf("got %d selectors, want %d: %w", len(selectors), len(doms), ErrSelectorOutOfDomain)
	}
	for k, s := range selectors {
		if s < 0 || s >= doms[k] {
			return fmt.Errorf("selector %d = %d not in [0,%d): %w", k, s, doms[k], ErrSelectorOutOfDomain)
		}
	}

	return nil
}

// NewSelectors allocates the selector registers on ctx and loads the literal
// init sequence. A nil init loads all zeros. The registers are inputs of the
// oracle and are never modified by it.
func NewSelectors(ctx *rev.Context, cityAmount int, init []int) ([]rev.Ref, error) {
	doms, err := Domains(cityAmount)
	if err != nil {
		return nil, err
	}
	if init == nil {
		init = make([]int, len(doms))
	}
	if err = Validate(cityAmount, init); err != nil {
		return nil, err
	}
	refs := make([]rev.Ref, len(doms))
	for k, d := range doms {
		if _, err = ctx.Init(SelectorName(k), rev.BitsFor(d), uint64(init[k])); err != nil {
			return nil, err
		}
		refs[k] = rev.Scalar(SelectorName(k))
	}

	return refs, nil
}

// FreeSelectors releases the selector registers without verification.
func FreeSelectors(ctx *rev.Context, cityAmount int) error {
	doms, err := Domains(cityAmount)
	if err != nil {
		return err
	}
	for k := range doms {
		if err = ctx.Free(SelectorName(k), false); err != nil {
			return err
		}
	}

	return nil
}

// FromIndex returns the selector tuple with mixed-radix rank k; selector 0
// is the most significant digit.
//
// Complexity: O(n).
func FromIndex(cityAmount, k int) ([]int, error) {
	total, err := Count(cityAmount)
	if err != nil {
		return nil, err
	}
	if k < 0 || k >= total {
		return nil, fmt.Errorf("index %d not in [0,%d): %w", k, total, ErrIndexOutOfRange)
	}
	doms, _ := Domains(cityAmount)
	out := make([]int, len(doms))
	for i := len(doms) - 1; i >= 0; i-- {
		out[i] = k % doms[i]
		k /= doms[i]
	}

	return out, nil
}

// Index is the inverse of FromIndex.
func Index(cityAmount int, selectors []int) (int, error) {
	if err := Validate(cityAmount, selectors); err != nil {
		return 0, err
	}
	doms, _ := Domains(cityAmount)
	k := 0
	for i, s := range selectors {
		k = k*doms[i] + s
	}

	return k, nil
}
