package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/perm"
	"github.com/katalvlaran/qvrp/rev"
	"github.com/spf13/cobra"
)

func newDotCmd(e *env) *cobra.Command {
	var (
		part string
		out  string
	)
	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Render a program as a Graphviz DOT graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				p   *rev.Program
				err error
			)
			switch part {
			case "oracle":
				o, oerr := e.oracle()
				if oerr != nil {
					return oerr
				}
				p = o.Program()
			case "forward":
				p, err = cvrp.ForwardProgram(e.inst, e.cfg.Oracle.Precision)
			case "backward":
				p, err = cvrp.BackwardProgram(e.inst, e.cfg.Oracle.Precision)
			case "eval":
				p, err = perm.EvalProgram(e.inst.CityAmount())
			default:
				return fmt.Errorf("unknown part %q: want oracle, forward, backward or eval", part)
			}
			if err != nil {
				return err
			}

			if out == "" {
				return rev.WriteDOT(cmd.OutOrStdout(), p)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err = rev.WriteDOT(f, p); err != nil {
				_ = f.Close()
				return err
			}
			e.logger.Info("DOT written", "part", part, "file", out, "ops", p.Len())

			return f.Close()
		},
	}
	cmd.Flags().StringVar(&part, "part", "oracle", "oracle, forward, backward or eval")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")

	return cmd
}
