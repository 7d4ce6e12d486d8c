// Package store archives solver runs in a bbolt file.
//
// Runs are keyed by start time and id, so a cursor walk returns them in
// chronological order.
package store
