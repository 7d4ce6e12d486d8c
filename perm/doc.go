// Package perm builds permutations of cities as reversible programs.
//
// A route over city_amount cities starts and ends at the depot (city 0), so
// only the order of the customers 1 … city_amount−1 is enumerated. The order is
// encoded by city_amount−2 selectors, a mixed-radix number whose digit k
// ranges over [0, city_amount−1−k):
//
//	domains(5) = [4 3 2]      Count(5) = 24 = 4!
//
// The evaluator starts from the ascending itinerary [1 … city_amount−1] and,
// for every position k, swaps element k with element k+selector[k]. This is a
// Fisher–Yates shuffle driven by the selectors, hence a bijection between
// selector tuples and permutations of the customers. Every swap is its own
// inverse, so the inverse program restores the ascending itinerary.
//
// Two renditions are provided and kept consistent by tests:
//   - EvalProgram: the reversible program run by the oracle on a rev.Context.
//   - Decode: the classical mirror used for reporting.
package perm
