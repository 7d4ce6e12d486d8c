package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/katalvlaran/qvrp/qubo"
	"github.com/katalvlaran/qvrp/sampler"
	"github.com/katalvlaran/qvrp/store"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// solve is the root command: read, sample, report, archive.
func (e *env) solve(cmd *cobra.Command, file, kind, outputFile string) error {
	model, err := readCOO(file)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	label := filepath.Base(file)

	last := time.Now()
	fmt.Fprintln(out, "started")
	set, err := e.sample(cmd.Context(), out, model, kind, label, func() {
		fmt.Fprintf(out, "connected after %s. starting solver\n", time.Since(last))
	})
	if err != nil {
		return err
	}
	info, err := json.Marshal(set.Info)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(info))
	fmt.Fprintf(out, "ended %s\n", time.Since(last))

	first, err := set.First()
	if err != nil {
		return err
	}
	if outputFile != "" {
		if err = writeValues(outputFile, first.Values); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, first.Energy)
		printSample(out, set.Variables, first.Values)
	}
	fmt.Fprintf(out, "connection closed after %s\n", time.Since(last))

	return e.archiveRun(&store.Run{
		Kind:      kind,
		Source:    file,
		Started:   last,
		Elapsed:   time.Since(last),
		Variables: len(set.Variables),
		Energy:    first.Energy,
		Values:    first.Values,
		Info:      set.Info,
	})
}

// sample creates the sampler, connects remote ones and runs it. connected
// is called once the sampler is ready.
func (e *env) sample(ctx context.Context, out io.Writer, m *qubo.Model, kind, label string, connected func()) (*qubo.SampleSet, error) {
	created := time.Now()
	s, err := sampler.New(kind, sampler.Options{Cloud: e.cfg.CloudOptions(), Logger: e.logger})
	if err != nil {
		return nil, err
	}
	if conn, ok := s.(sampler.Connector); ok {
		if err = conn.Connect(ctx); err != nil {
			return nil, err
		}
		defer conn.Close()
	}
	connected()
	fmt.Fprintf(out, "sampler created took %s\n", time.Since(created))

	p := e.cfg.Params()
	p.Label = label
	e.logger.Info("Sampling", "sampler", kind, "vars", m.NumVariables(), "interactions", m.NumInteractions())

	return s.Sample(ctx, m, p)
}

func readCOO(path string) (*qubo.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := qubo.ReadCOO(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

func writeValues(path string, values []int8) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, v := range values {
		fmt.Fprintln(w, v)
	}
	if err = w.Flush(); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func printSample(out io.Writer, vars []int, values []int8) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"variable", "value"})
	for i, v := range vars {
		table.Append([]string{strconv.Itoa(v), strconv.Itoa(int(values[i]))})
	}
	table.Render()
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
	if err = s.Put(r); err != nil {
		return err
	}
	e.logger.Debug("Run archived", "id", r.ID, "archive", e.cfg.Archive)

	return nil
}
