// Package rev is a small runtime for reversible computations on basis states.
//
// A reversible computation is described once, as a Program of Ops, and run
// against an explicit Context that owns every register. Each Op knows its
// exact algebraic inverse, so the uncomputation of a Program is derived from
// the same description instead of being written by hand:
//
//	fwd := rev.NewProgram("distance", ops...)
//	_ = fwd.Apply(ctx)           // compute
//	_ = fwd.Inverse().Apply(ctx) // uncompute, ancillas verified back to zero
//
// The building blocks are:
//
//   - Context: register file, global phase (±1), op and qubit accounting.
//     There is no package-level default context.
//   - Register: named, fixed-width, one or more slots; arithmetic wraps
//     modulo 2^width.
//   - Alloc / Free: ancilla lifecycle. Free with verification fails with
//     ErrAncillaNotZero when a register was not returned to zero, which
//     always signals a logic defect in the surrounding program.
//   - Branch: conditional execution scoped by a 1-bit flag, with one body
//     per flag value. Neither body may write the flag.
//   - Predicates: pure reads (AtMost, Equal, SumExceeds) used by XorPredicate
//     to compute comparison flags.
//   - FixedPoint / Table: fixed-point encoding and classical lookup tables
//     addressed by register contents.
//
// Every state the runtime handles is a single basis state, so running a
// Program costs O(len(ops)) and superposition is simulated by the caller
// (see package grover) by running the same Program once per basis state.
package rev
