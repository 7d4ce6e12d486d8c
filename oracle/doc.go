// Package oracle marks capacitated routes whose distance is at most a
// threshold.
//
// One oracle call is a cycle over five states:
//
//	Idle → PermutationMaterialized → DistanceComputed → ThresholdMarked → Uncomputed → Idle
//
// The transitions run, in order: the permutation evaluator, the distance
// accumulator, the marking step (flag = distance ≤ threshold, Z on the flag,
// flag uncomputed and freed), the accumulator's inverse, and the evaluator's
// inverse. Cycle enforces the order and returns ErrBadTransition for any
// other sequence; an ancilla that is not back to zero surfaces as
// rev.ErrAncillaNotZero and leaves the cycle Failed.
//
// An Oracle is immutable once built and may be shared between goroutines;
// each goroutine evaluates basis states on its own rev.Context.
package oracle
