package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/katalvlaran/qvrp/grover"
	"github.com/katalvlaran/qvrp/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newGroverCmd(e *env) *cobra.Command {
	var (
		opts grover.Options
		top  int
	)
	cmd := &cobra.Command{
		Use:   "grover",
		Short: "Amplify the routes below the threshold and sample them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := e.oracle()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("shots") {
				opts.Shots = e.cfg.Oracle.Shots
			}
			if !cmd.Flags().Changed("seed") {
				opts.Seed = e.cfg.Oracle.Seed
			}
			if !cmd.Flags().Changed("workers") {
				opts.Workers = e.cfg.Oracle.Workers
			}
			opts.Logger = e.logger

			started := time.Now()
			res, err := grover.Search(cmd.Context(), o, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "instance %s: %d cities, %d routes, %d marked at threshold %v\n",
				e.inst.Name, e.inst.CityAmount(), res.States, res.Marked, e.cfg.Oracle.Threshold)
			fmt.Fprintf(out, "iterations %d (winners %.3g), success probability %.4f\n",
				res.Iterations, res.Winners, res.Success)

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"selectors", "itinerary", "marked", "distance", "probability", "hits"})
			fixed := o.Accumulator().Fixed()
			for i, oc := range res.Outcomes {
				if top > 0 && i == top {
					break
				}
				table.Append([]string{
					fmt.Sprint(oc.Selectors), fmt.Sprint(oc.Itinerary), strconv.FormatBool(oc.Marked),
					fmt.Sprintf("%.5f", fixed.Decode(oc.Distance)), fmt.Sprintf("%.4f", oc.Probability),
					strconv.Itoa(oc.Count),
				})
			}
			table.Render()

			return e.archiveRun(&store.Run{
				Kind:    "grover",
				Source:  e.inst.Name,
				Started: started,
				Elapsed: time.Since(started),
				Energy:  res.Success,
				Info: map[string]any{
					"states":     res.States,
					"marked":     res.Marked,
					"iterations": res.Iterations,
					"threshold":  e.cfg.Oracle.Threshold,
					"best":       res.Outcomes[0].Itinerary,
				},
			})
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Iterations, "iterations", 0, "override the computed iteration count")
	f.Float64Var(&opts.Winners, "winners", 0, "estimated number of marked routes (0: N/(n-2)!)")
	f.IntVar(&opts.Shots, "shots", grover.DefaultShots, "measurement samples")
	f.Int64Var(&opts.Seed, "seed", 0, "measurement seed")
	f.IntVar(&opts.Workers, "workers", 0, "parallel oracle evaluations (0: all CPUs)")
	f.IntVar(&top, "top", 10, "outcomes to print (0 prints all)")

	return cmd
}
