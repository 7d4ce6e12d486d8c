package main

import (
	"fmt"
	"strconv"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/tsp"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newClusterCmd(e *env) *cobra.Command {
	var (
		method   string
		clusters int
		seed     int64
	)
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Split the instance into clusters and solve each cluster's tour classically",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := cvrp.Cluster(e.inst, method, clusters, seed)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"cluster", "customers", "demand", "tour", "cost", "exact"})

			var total float64
			for k, g := range groups {
				sub, err := e.inst.Sub(fmt.Sprintf("%s.%d", e.inst.Name, k+1), g)
				if err != nil {
					return err
				}
				res, err := tsp.Solve(sub.Dist, tsp.DefaultOptions())
				if err != nil {
					return err
				}
				tour := make([]int, len(res.Tour))
				for i, c := range res.Tour {
					if c > 0 {
						tour[i] = g[c-1]
					}
				}
				total += res.Cost
				table.Append([]string{
					strconv.Itoa(k + 1), fmt.Sprint(g), strconv.Itoa(sub.TotalDemand()),
					fmt.Sprint(tour), fmt.Sprintf("%.3f", res.Cost), strconv.FormatBool(res.Exact),
				})
			}
			table.Render()
			fmt.Fprintf(out, "%s: %d clusters, total distance %.3f\n", method, len(groups), total)

			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&method, "method", cvrp.MethodCapacity, fmt.Sprintf("clustering method %v", cvrp.ClusterMethods()))
	f.IntVar(&clusters, "clusters", cvrp.DefaultClusters, "k-means cluster count")
	f.Int64Var(&seed, "seed", 1, "k-means seed")

	return cmd
}
