package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/qubo"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newEncodeCmd(e *env) *cobra.Command {
	var (
		outDir string
		open   bool
		tsplib bool
		cf     clusterFlags
	)
	cmd := &cobra.Command{
		Use:   "encode <tsplib_file>",
		Short: "Cluster a TSPLIB CVRP instance and write one COO QUBO per cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := readInstance(args[0])
			if err != nil {
				return err
			}
			subs, err := split(inst, cf, e.seed)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Dir(args[0])
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"cluster", "customers", "demand", "variables", "file"})
			for k, sub := range subs {
				m, err := qubo.EncodeTSP(sub.inst.Dist, qubo.EncodeOptions{Cyclic: !open})
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, fmt.Sprintf("%s.%d.coo", base, k+1))
				if err = writeFile(path, func(f *os.File) error { return qubo.WriteCOO(f, m) }); err != nil {
					return err
				}
				if tsplib {
					vrp := filepath.Join(outDir, fmt.Sprintf("%s.%d.vrp", base, k+1))
					err = writeFile(vrp, func(f *os.File) error {
						return cvrp.WriteTSPLIB(f, sub.inst, "cluster of "+inst.Name)
					})
					if err != nil {
						return err
					}
				}
				table.Append([]string{
					strconv.Itoa(k + 1), fmt.Sprint(sub.customers), strconv.Itoa(sub.inst.TotalDemand()),
					strconv.Itoa(m.NumVariables()), path,
				})
				e.logger.Debug("Cluster encoded", "cluster", k+1, "file", path)
			}
			table.Render()

			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for the COO files (default: next to the input)")
	cmd.Flags().BoolVar(&open, "open", false, "encode open paths instead of closed tours")
	cmd.Flags().BoolVar(&tsplib, "tsplib", false, "also write each cluster as a TSPLIB instance")
	cf.register(cmd)

	return cmd
}

// cluster is one sub-instance with the original ids of its customers.
type cluster struct {
	customers []int
	inst      *cvrp.Instance
}

// clusterFlags selects the clustering of encode and route.
type clusterFlags struct {
	method string
	k      int
}

func (cf *clusterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cf.method, "method", cvrp.MethodCapacity, fmt.Sprintf("clustering method %v", cvrp.ClusterMethods()))
	cmd.Flags().IntVar(&cf.k, "clusters", cvrp.DefaultClusters, "k-means cluster count")
}

// split clusters inst with cf. The capacity method keeps the whole instance
// when one vehicle can serve it.
func split(inst *cvrp.Instance, cf clusterFlags, seed int64) ([]cluster, error) {
	groups := [][]int{make([]int, 0, inst.CityAmount()-1)}
	if cf.method == cvrp.MethodCapacity && inst.TotalDemand() <= inst.Capacity {
		for c := 1; c < inst.CityAmount(); c++ {
			groups[0] = append(groups[0], c)
		}
	} else {
		var err error
		if groups, err = cvrp.Cluster(inst, cf.method, cf.k, seed); err != nil {
			return nil, err
		}
	}
	out := make([]cluster, len(groups))
	for k, g := range groups {
		sub, err := inst.Sub(fmt.Sprintf("%s.%d", inst.Name, k+1), g)
		if err != nil {
			return nil, err
		}
		out[k] = cluster{customers: g, inst: sub}
	}

	return out, nil
}

func readInstance(path string) (*cvrp.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := cvrp.ReadTSPLIB(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return inst, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = write(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
