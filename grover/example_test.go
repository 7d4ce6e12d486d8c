package grover_test

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/grover"
	"github.com/katalvlaran/qvrp/oracle"
)

// ExampleSearch amplifies the two routes of the default instance shorter
// than 8.
func ExampleSearch() {
	logger := log.NewLogger(log.DiscardHandler())
	oopts := oracle.DefaultOptions()
	oopts.Threshold = 8
	oopts.Logger = logger
	o, err := oracle.New(cvrp.DefaultInstance(), oopts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	opts := grover.DefaultOptions()
	opts.Winners = 2
	opts.Logger = logger
	res, err := grover.Search(context.Background(), o, opts)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("iterations=%d success=%.3f\n", res.Iterations, res.Success)
	for _, out := range res.Outcomes[:2] {
		fmt.Printf("%v p=%.3f\n", out.Itinerary, out.Probability)
	}
	// Output:
	// iterations=1 success=0.926
	// [1 2 3] p=0.463
	// [2 1 3] p=0.463
}
