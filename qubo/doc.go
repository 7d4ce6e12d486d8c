// Package qubo holds binary quadratic models and their file formats.
//
// A Model is the energy
//
//	E(x) = offset + Σ h_i·x_i + Σ_{i<j} J_ij·x_i·x_j,   x_i ∈ {0, 1}
//
// over integer variable labels. Labels are kept exactly as they appear in a
// COO file; no re-indexing happens on read or write.
//
// COO files are MatrixMarket-style coordinate lists, one "i j value" triple
// per line, upper triangular, with i == j carrying the linear bias.
//
// EncodeTSP turns a distance matrix into the position-assignment QUBO used by
// the samplers; DecodeTour reads the tour back out of a sample.
//
// Samplers do not walk the maps of a Model directly: Compile flattens it
// into index-addressed slices with adjacency lists, which is what the
// annealing inner loops consume.
package qubo
