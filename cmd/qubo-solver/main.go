// Command qubo-solver samples QUBO problems stored as COO files.
//
//	qubo-solver <coo_file> <sim|hybrid|qbsolv|direct> [--output-file FILE]
//
// With --output-file the best sample is written one binary value per line
// in variable order; otherwise its energy and assignment are printed.
// Subcommands encode TSPLIB CVRP instances, route them end to end, list
// archived runs and print the effective configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
