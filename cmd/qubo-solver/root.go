package main

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/config"
	"github.com/katalvlaran/qvrp/sampler"
	"github.com/spf13/cobra"
)

// env is the state every subcommand shares after flag parsing.
type env struct {
	cfg    config.Config
	logger log.Logger

	configPath string
	logLevel   string
	archive    string
	seed       int64
	numReads   int
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var outputFile string

	root := &cobra.Command{
		Use:   "qubo-solver <coo_file> <type>",
		Short: "Sample a COO-encoded QUBO with a local or remote sampler",
		Long: "Sample a COO-encoded QUBO. type is one of " + fmt.Sprint(sampler.Kinds()) + ".\n" +
			"Remote samplers read DWAVE_API_ENDPOINT, DWAVE_API_TOKEN, DWAVE_API_SOLVER and DWAVE_HYBRID_SOLVER.\n" +
			"A COO file named like a subcommand (route, encode, history, config) must be given with a path, e.g. ./route.",
		Args:          cobra.MatchAll(cobra.ExactArgs(2), validKind(1)),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.solve(cmd, args[0], args[1], outputFile)
		},
	}
	root.Flags().StringVar(&outputFile, "output-file", "", "write the best sample, one value per line")

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&e.logLevel, "log-level", "", "trace, debug, info, warn, error or crit")
	pf.StringVar(&e.archive, "archive", "", "bbolt file archiving every run")
	pf.Int64Var(&e.seed, "seed", 0, "sampler seed")
	pf.IntVar(&e.numReads, "num-reads", 0, "sampler reads (0 keeps the sampler default)")

	root.AddCommand(newRouteCmd(e), newEncodeCmd(e), newHistoryCmd(e), newConfigCmd(e))

	return root
}

// setup layers defaults, file, environment and flags.
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
	if e.seed != 0 {
		cfg.Sampler.Seed = e.seed
	}
	if e.numReads != 0 {
		cfg.Sampler.NumReads = e.numReads
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if e.logger, err = config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel); err != nil {
		return err
	}
	e.cfg = cfg

	return nil
}

// validKind checks that args[pos] names a registered sampler.
func validKind(pos int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if pos < len(args) && !slices.Contains(sampler.Kinds(), args[pos]) {
			return fmt.Errorf("invalid type %q: choose from %v: %w", args[pos], sampler.Kinds(), sampler.ErrUnknownSampler)
		}
		return nil
	}
}
