package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/katalvlaran/qvrp/qubo"
	"github.com/katalvlaran/qvrp/store"
	"github.com/katalvlaran/qvrp/tsp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newRouteCmd(e *env) *cobra.Command {
	var cf clusterFlags
	cmd := &cobra.Command{
		Use:   "route <tsplib_file> <type>",
		Short: "Cluster a CVRP instance, sample one tour per cluster and compare with the classical solver",
		Args:  cobra.MatchAll(cobra.ExactArgs(2), validKind(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := readInstance(args[0])
			if err != nil {
				return err
			}
			subs, err := split(inst, cf, e.seed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"cluster", "tour", "sampled", "reference", "gap"})

			var sampledTotal, referenceTotal float64
			for k, sub := range subs {
				started := time.Now()
				m, err := qubo.EncodeTSP(sub.inst.Dist, qubo.DefaultEncodeOptions())
				if err != nil {
					return err
				}
				label := fmt.Sprintf("%s.%d", filepath.Base(args[0]), k+1)
				set, err := e.sample(cmd.Context(), out, m, args[1], label, func() {})
				if err != nil {
					return err
				}
				ref, err := tsp.Solve(sub.inst.Dist, tsp.DefaultOptions())
				if err != nil {
					return err
				}

				row := []string{strconv.Itoa(k + 1), "invalid sample", "-", fmt.Sprintf("%.3f", ref.Cost), "-"}
				cost := ref.Cost
				order, err := qubo.DecodeTour(set.Assignment(0), sub.inst.CityAmount())
				if err == nil {
					local := qubo.ClosedTour(order)
					if cost, err = tsp.TourCost(sub.inst.Dist, local); err != nil {
						return err
					}
					row[1] = fmt.Sprint(globalTour(sub.customers, local))
					row[2] = fmt.Sprintf("%.3f", cost)
					row[4] = fmt.Sprintf("%+.3f", cost-ref.Cost)
				} else {
					e.logger.Warn("Sample violates the tour constraints, using the classical tour", "cluster", k+1, "err", err)
				}
				sampledTotal += cost
				referenceTotal += ref.Cost
				table.Append(row)

				first, _ := set.First()
				if err = e.archiveRun(&store.Run{
					Kind:      "route:" + args[1],
					Source:    label,
					Started:   started,
					Elapsed:   time.Since(started),
					Variables: len(set.Variables),
					Energy:    first.Energy,
					Values:    first.Values,
					Info:      set.Info,
				}); err != nil {
					return err
				}
			}
			table.SetFooter([]string{"", "total", fmt.Sprintf("%.3f", sampledTotal), fmt.Sprintf("%.3f", referenceTotal),
				fmt.Sprintf("%+.3f", sampledTotal-referenceTotal)})
			table.Render()

			return nil
		},
	}
	cf.register(cmd)

	return cmd
}

// globalTour maps a cluster-local closed tour back to instance city ids.
func globalTour(customers, local []int) []int {
	tour := make([]int, len(local))
	for i, c := range local {
		if c > 0 {
			tour[i] = customers[c-1]
		}
	}

	return tour
}
