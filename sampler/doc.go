// Package sampler draws low-energy assignments of a qubo.Model.
//
// Four samplers are registered by kind:
//
//	sim     simulated annealing on the local machine
//	qbsolv  energy-impact decomposition; sub-problems solved by annealing
//	direct  the remote QPU solver, num_reads = 250 by default
//	hybrid  the remote hybrid solver, time_limit = 5s by default
//
// The remote kinds talk to a SAPI-style REST service through Client. A
// problem is submitted once and polled until it reaches a terminal status;
// failed calls are never retried.
//
// Every sampler returns a qubo.SampleSet whose energies are recomputed
// against the submitted model, sorted by ascending energy.
package sampler
