package perm

import (
	"fmt"

	"github.com/katalvlaran/qvrp/rev"
)

// EvalProgram returns the reversible program that materialises the
// itinerary register from the selector registers:
//
//	alloc itinerary[n−1]; itinerary ^= [1 … n−1]
//	for k in 0 … n−3: swap itinerary[k] <-> itinerary[k+sel_k]
//
// Its inverse undoes the swaps in reverse order, clears the ascending
// constants and frees the itinerary with verification.
//
// Complexity: O(n) ops.
func EvalProgram(cityAmount int) (*rev.Program, error) {
	doms, err := Domains(cityAmount)
	if err != nil {
		return nil, err
	}
	var (
		width = rev.BitsFor(cityAmount)
		init  = make([]uint64, cityAmount-1)
		k     int
	)
	for k = range init {
		init[k] = uint64(k + 1)
	}
	p := rev.NewProgram("eval_perm",
		rev.Alloc{Name: ItineraryReg, Width: width, Slots: cityAmount - 1},
		rev.XorConst{Reg: ItineraryReg, Values: init},
	)
	for k = range doms {
		p.Append(rev.SwapSelected{Array: ItineraryReg, Base: k, Selector: rev.Scalar(SelectorName(k))})
	}

	return p, nil
}

// Decode applies the same swap sequence classically and returns the visiting
// order of the customers (the depot is implicit at both ends).
//
// Complexity: O(n).
func Decode(cityAmount int, selectors []int) ([]int, error) {
	if err := Validate(cityAmount, selectors); err != nil {
		return nil, err
	}
	it := make([]int, cityAmount-1)
	for k := range it {
		it[k] = k + 1
	}
	for k, s := range selectors {
		it[k], it[k+s] = it[k+s], it[k]
	}

	return it, nil
}

// Itinerary reads the materialised itinerary from ctx.
func Itinerary(ctx *rev.Context) ([]int, error) {
	r, err := ctx.Reg(ItineraryReg)
	if err != nil {
		return nil, fmt.Errorf("itinerary: %w", err)
	}
	vals := r.Values()
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}

	return out, nil
}

// Encode returns the selector tuple that Decode maps to itinerary.
// itinerary must be a permutation of 1 … city_amount−1.
func Encode(itinerary []int) ([]int, error) {
	n := len(itinerary) + 1
	if n < MinCities {
		return nil, fmt.Errorf("encode %v: %w", itinerary, ErrTooFewCities)
	}
	var (
		cur = make([]int, n-1)
		pos = make([]int, n) // pos[city] = index in cur
		sel = make([]int, n-2)
		k   int
	)
	for k = range cur {
		cur[k] = k + 1
		pos[k+1] = k
	}
	for k = range sel {
		c := itinerary[k]
		if c < 1 || c >= n || pos[c] < k {
			return nil, fmt.Errorf("encode %v: %w", itinerary, ErrSelectorOutOfDomain)
		}
		j := pos[c]
		sel[k] = j - k
		cur[k], cur[j] = cur[j], cur[k]
		pos[cur[k]], pos[cur[j]] = k, j
	}
	if cur[n-2] != itinerary[n-2] {
		return nil, fmt.Errorf("encode %v: %w", itinerary, ErrSelectorOutOfDomain)
	}

	return sel, nil
}
