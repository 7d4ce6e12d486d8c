package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/qvrp/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errNoArchive = errors.New("no archive configured: pass --archive or set QVRP_ARCHIVE")

func newHistoryCmd(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if e.cfg.Archive == "" {
				return errNoArchive
			}
			s, err := store.Open(e.cfg.Archive)
			if err != nil {
				return err
			}
			defer s.Close()
			runs, err := s.List(limit)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"id", "kind", "source", "started", "elapsed", "variables", "energy"})
			for _, r := range runs {
				table.Append([]string{
					r.ID[:8], r.Kind, r.Source, r.Started.Format("2006-01-02 15:04:05"), r.Elapsed.String(),
					strconv.Itoa(r.Variables), fmt.Sprint(r.Energy),
				})
			}
			table.Render()

			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs (0 lists all)")

	return cmd
}

func newConfigCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := e.cfg.Redacted().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}
}
