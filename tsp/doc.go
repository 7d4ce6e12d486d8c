// Package tsp solves the travelling salesman sub-problems left after a
// routing instance has been clustered by capacity.
//
// What:
//
//   - Exact: Held–Karp dynamic programming, optimal, O(n²·2ⁿ).
//   - NearestNeighbor + TwoOpt: deterministic construction and
//     first-improvement local search for clusters too large for Exact.
//   - Solve: picks Exact up to Options.MaxExact vertices, the heuristic above.
//   - TourCost: cost of a closed tour.
//
// Tours are closed: len(tour) == n+1, tour[0] == tour[n] == 0, vertex 0 is
// the depot of the cluster.
//
// The QUBO encoder in package qubo is cross-checked against Exact.
package tsp
