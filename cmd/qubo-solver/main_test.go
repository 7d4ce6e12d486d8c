package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/qvrp/config"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/qubo"
	"github.com/katalvlaran/qvrp/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with a clean environment.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{config.EnvArchive, config.EnvLogLevel, config.EnvToken} {
		t.Setenv(name, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

// pairFile writes a model whose ground state sets both variables (E = -3).
func pairFile(t *testing.T) string {
	t.Helper()
	m := qubo.NewModel()
	m.AddLinear(1, 1)
	m.AddLinear(2, 1)
	m.AddQuadratic(1, 2, -5)
	path := filepath.Join(t.TempDir(), "pair.coo")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, qubo.WriteCOO(f, m))
	require.NoError(t, f.Close())

	return path
}

func TestSolveWritesOutputFile(t *testing.T) {
	file := pairFile(t)
	outFile := filepath.Join(t.TempDir(), "pair.bin")
	out, err := run(t, file, "sim", "--output-file", outFile, "--seed", "3")
	require.NoError(t, err)

	for _, line := range []string{"started", "connected after", "sampler created took", "ended", "connection closed after"} {
		assert.Contains(t, out, line)
	}
	assert.Contains(t, out, `"num_reads":10`)

	raw, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "1\n1\n", string(raw))
}

func TestSolvePrintsBestSample(t *testing.T) {
	out, err := run(t, pairFile(t), "qbsolv")
	require.NoError(t, err)
	assert.Contains(t, out, "\n-3\n")
	assert.Contains(t, out, "VARIABLE")
}

func TestArgumentErrors(t *testing.T) {
	_, err := run(t, pairFile(t), "annealer")
	require.ErrorIs(t, err, sampler.ErrUnknownSampler)

	_, err = run(t, pairFile(t))
	require.Error(t, err)

	_, err = run(t, filepath.Join(t.TempDir(), "missing.coo"), "sim")
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, pairFile(t), "direct", "--log-level", "error")
	require.ErrorIs(t, err, sampler.ErrNoToken)
}

func TestArchiveAndHistory(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "runs.db")
	file := pairFile(t)
	_, err := run(t, file, "sim", "--archive", archive)
	require.NoError(t, err)
	_, err = run(t, file, "qbsolv", "--archive", archive)
	require.NoError(t, err)

	out, err := run(t, "history", "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "qbsolv")
	assert.Contains(t, out, "sim")
	assert.Less(t, strings.Index(out, "qbsolv"), strings.Index(out, "| sim"))

	_, err = run(t, "history")
	require.ErrorIs(t, err, errNoArchive)
}

func writeInstance(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.vrp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, cvrp.WriteTSPLIB(f, cvrp.DefaultInstance(), "test"))
	require.NoError(t, f.Close())

	return path
}

func TestEncodeWritesOneFilePerCluster(t *testing.T) {
	vrp := writeInstance(t)
	dir := t.TempDir()
	out, err := run(t, "encode", vrp, "--out-dir", dir, "--tsplib")
	require.NoError(t, err)

	for _, name := range []string{"tri.1.coo", "tri.2.coo", "tri.1.vrp", "tri.2.vrp"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "tri.3.coo"))
	assert.Contains(t, out, "[1 2]")

	f, err := os.Open(filepath.Join(dir, "tri.1.coo"))
	require.NoError(t, err)
	defer f.Close()
	m, err := qubo.ReadCOO(f)
	require.NoError(t, err)
	assert.Equal(t, 9, m.NumVariables())
}

func TestRouteMatchesReference(t *testing.T) {
	out, err := run(t, "route", writeInstance(t), "sim", "--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "REFERENCE")
	assert.NotContains(t, out, "invalid sample")
	assert.Contains(t, out, "+0.000")
}

func TestConfigIsRedacted(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "qvrp.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("cloud:\n  token: secret\n"), 0o600))
	out, err := run(t, "config", "--config", cfgFile)
	require.NoError(t, err)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "****")
}

func TestEncodeKMeans(t *testing.T) {
	vrp := writeInstance(t)
	dir := t.TempDir()
	_, err := run(t, "encode", vrp, "--out-dir", dir, "--method", "kmeans", "--clusters", "3")
	require.NoError(t, err)
	for _, name := range []string{"tri.1.coo", "tri.2.coo", "tri.3.coo"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	_, err = run(t, "encode", vrp, "--out-dir", dir, "--method", "spectral")
	require.ErrorIs(t, err, cvrp.ErrClusterMethod)
	_, err = run(t, "encode", vrp, "--out-dir", dir, "--method", "kmeans", "--clusters", "0")
	require.ErrorIs(t, err, cvrp.ErrClusterCount)
}

func TestRouteKMeans(t *testing.T) {
	out, err := run(t, "route", writeInstance(t), "sim", "--method", "kmeans", "--clusters", "1", "--seed", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "invalid sample")
	assert.Contains(t, out, "[0 ")
}

func TestFlagOverlaysAreValidated(t *testing.T) {
	_, err := run(t, pairFile(t), "sim", "--num-reads", "-1")
	require.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "encode", writeInstance(t), "--num-reads", "-3")
	require.ErrorIs(t, err, config.ErrInvalid)
}

// TestFileNamedLikeSubcommand solves a COO file called "route" given as
// ./route from its own directory.
func TestFileNamedLikeSubcommand(t *testing.T) {
	dir := t.TempDir()
	raw, err := os.ReadFile(pairFile(t))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "route"), raw, 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := run(t, "./route", "sim")
	require.NoError(t, err)
	assert.Contains(t, out, "\n-3\n")

	help, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, help, "./route")
}
