// Package cvrp evaluates capacitated vehicle routes as reversible programs.
//
// A route visits every customer once, starting and ending at the depot
// (city 0). Customers carry integer demands and the vehicle has an integer
// capacity. Walking the itinerary, the running load of the current sub-route
// is tracked; whenever the next customer would push it over capacity the
// vehicle returns to the depot first, so the direct leg cur→next is replaced
// by cur→0→next and a new sub-route starts with the next customer's demand.
//
// The DistanceAccumulator is a rev.Program over these registers:
//
//	distance        fixed point, 2·precision bits, precision fractional bits
//	demand_counter  one slot per possible sub-route, current load in slot[indexer]
//	demand_indexer  index of the current sub-route
//
// Its backward pass is the inverse of the same program, so the forward and
// backward step orders can never diverge. Every transient ancilla (the split
// flag and the looked-up city demand) is freed with verification inside each
// step.
//
// Distances are quantised to the fixed-point grid once, into lookup tables,
// and RouteCost evaluates the same tables classically; BruteForce therefore
// reproduces the oracle's marks exactly. The precision must leave room for
// the longest possible route, or NewAccumulator returns ErrPrecisionOverflow.
//
// The package also carries the classical tooling around the oracle: TSPLIB
// CVRP I/O, capacity-greedy or k-means clustering of large instances, and
// sub-instance extraction for per-cluster solving.
package cvrp
