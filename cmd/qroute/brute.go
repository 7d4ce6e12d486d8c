package main

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newBruteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "brute",
		Short: "Evaluate every route classically with the oracle's quantised tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			acc, err := cvrp.NewAccumulator(e.inst, e.cfg.Oracle.Precision)
			if err != nil {
				return err
			}
			routes, err := acc.BruteForce()
			if err != nil {
				return err
			}
			thr, err := acc.Threshold(e.cfg.Oracle.Threshold)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"itinerary", "tours", "loads", "raw", "distance", "exact", "marked"})
			for _, r := range routes {
				table.Append([]string{
					fmt.Sprint(r.Itinerary), fmt.Sprint(r.Tours), fmt.Sprint(r.Loads), strconv.FormatUint(r.Raw, 10),
					fmt.Sprintf("%.5f", r.Distance), fmt.Sprintf("%.5f", r.Exact), strconv.FormatBool(r.Raw <= thr),
				})
			}
			table.Render()

			if best, ok := cvrp.Best(routes); ok {
				fmt.Fprintf(out, "best %v distance %.5f, %d of %d routes marked\n",
					best.Itinerary, best.Distance, len(cvrp.Below(routes, thr)), len(routes))
			}

			return nil
		},
	}
}
