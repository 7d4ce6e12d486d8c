// Package grover simulates amplitude amplification over the selector
// domain of a routing oracle.
//
// The state is an explicit real amplitude vector over the N = (n−1)!
// selector tuples, initialised uniformly. Each iteration applies the oracle
// to every basis state, flipping the amplitude of marked states, and then
// inverts every amplitude about the mean. The iteration count is
// floor(π/4·√(N/M)) for an estimated M winners.
//
// The oracle is evaluated once per basis state per iteration on a fresh
// rev.Context, in parallel over a bounded worker pool. Measurement draws
// Shots samples from the final distribution with a seeded generator, so a
// search is reproducible for a fixed seed.
package grover
