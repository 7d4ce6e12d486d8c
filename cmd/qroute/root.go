package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/config"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/oracle"
	"github.com/katalvlaran/qvrp/store"
	"github.com/spf13/cobra"
)

// env is the state every subcommand shares after flag parsing.
type env struct {
	cfg    config.Config
	logger log.Logger
	inst   *cvrp.Instance

	configPath string
	logLevel   string
	archive    string
	tsplib     string
	precision  int
	threshold  float64
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:           "qroute",
		Short:         "Evaluate capacitated routes with a reversible threshold oracle",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&e.logLevel, "log-level", "", "trace, debug, info, warn, error or crit")
	pf.StringVar(&e.archive, "archive", "", "bbolt file archiving every search")
	pf.StringVar(&e.tsplib, "tsplib", "", "TSPLIB CVRP instance (default: built-in triangle)")
	pf.IntVar(&e.precision, "precision", 0, "fractional bits of the distance register")
	pf.Float64Var(&e.threshold, "threshold", 0, "mark routes with distance ≤ threshold")

	root.AddCommand(newGroverCmd(e), newBruteCmd(e), newClusterCmd(e), newDotCmd(e))

	return root
}

func (e *env) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(e.configPath)
	if err != nil {
		return err
	}
	if e.logLevel != "" {
		cfg.LogLevel = e.logLevel
	}
	if e.archive != "" {
		cfg.Archive = e.archive
	}
	if e.precision != 0 {
		cfg.Oracle.Precision = e.precision
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Oracle.Threshold = e.threshold
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if e.logger, err = config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}
	e.cfg = cfg

	if e.tsplib == "" {
		e.inst = cvrp.DefaultInstance()
		return nil
	}
	f, err := os.Open(e.tsplib)
	if err != nil {
		return err
	}
	defer f.Close()
	if e.inst, err = cvrp.ReadTSPLIB(f); err != nil {
		return fmt.Errorf("%s: %w", e.tsplib, err)
	}

	return nil
}

func (e *env) oracle() (*oracle.Oracle, error) {
	return oracle.New(e.inst, oracle.Options{
		Precision: e.cfg.Oracle.Precision,
		Threshold: e.cfg.Oracle.Threshold,
		Logger:    e.logger,
	})
}

func (e *env) archiveRun(r *store.Run) error {
	if e.cfg.Archive == "" {
		return nil
	}
	s, err := store.Open(e.cfg.Archive)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.Put(r)
}
