// Command qroute drives the reversible routing oracle.
//
//	qroute grover   amplitude amplification over every route of an instance
//	qroute brute    classical evaluation of every route with the oracle's tables
//	qroute cluster  capacity clustering with a classical tour per cluster
//	qroute dot      Graphviz rendering of the oracle's programs
//
// Without --tsplib the built-in four-city instance is used.
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
