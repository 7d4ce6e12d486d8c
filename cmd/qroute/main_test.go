package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/qvrp/config"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, name := range []string{config.EnvArchive, config.EnvLogLevel} {
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

func TestGroverDefaultInstance(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "runs.db")
	out, err := run(t, "grover", "--threshold", "8", "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "instance triangle: 4 cities, 6 routes, 2 marked at threshold 8")
	assert.Contains(t, out, "iterations 1")
	assert.Contains(t, out, "ITINERARY")

	s, err := store.Open(archive)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.List(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "grover", runs[0].Kind)
	assert.Equal(t, "triangle", runs[0].Source)
}

func TestGroverTopLimitsRows(t *testing.T) {
	out, err := run(t, "grover", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "6 marked at threshold 11")
	assert.Contains(t, out, "success probability 1.0000")
}

func TestBruteMarksBelowThreshold(t *testing.T) {
	out, err := run(t, "brute", "--threshold", "8")
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 6 routes marked")
	assert.Contains(t, out, "best [")
}

func TestClusterSplitsByCapacity(t *testing.T) {
	out, err := run(t, "cluster")
	require.NoError(t, err)
	assert.Contains(t, out, "2 clusters")
	assert.Contains(t, out, "[1 2]")
}

func TestDotParts(t *testing.T) {
	for _, part := range []string{"oracle", "forward", "backward", "eval"} {
		out, err := run(t, "dot", "--part", part)
		require.NoError(t, err, part)
		assert.Contains(t, out, "digraph", part)
	}

	_, err := run(t, "dot", "--part", "nope")
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "oracle.dot")
	_, err = run(t, "dot", "-o", file)
	require.NoError(t, err)
	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "digraph")
}

func TestTSPLIBInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.vrp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, cvrp.WriteTSPLIB(f, cvrp.DefaultInstance(), "test"))
	require.NoError(t, f.Close())

	out, err := run(t, "brute", "--tsplib", path)
	require.NoError(t, err)
	assert.Contains(t, out, "6 of 6 routes marked")

	_, err = run(t, "brute", "--tsplib", filepath.Join(t.TempDir(), "missing.vrp"))
	require.Error(t, err)
}

func TestBadPrecision(t *testing.T) {
	_, err := run(t, "brute", "--precision", "40")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestLargeInstanceNeedsPrecision(t *testing.T) {
	base := cvrp.DefaultInstance()
	coords := make([][]float64, len(base.Coords))
	for i, c := range base.Coords {
		coords[i] = []float64{10 * c[0], 10 * c[1]}
	}
	inst, err := cvrp.NewEuclideanInstance("wide", coords, base.Demand, base.Capacity)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "wide.vrp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, cvrp.WriteTSPLIB(f, inst, "test"))
	require.NoError(t, f.Close())

	_, err = run(t, "brute", "--tsplib", path)
	require.ErrorIs(t, err, cvrp.ErrPrecisionOverflow)
	_, err = run(t, "grover", "--tsplib", path, "--threshold", "19.5")
	require.ErrorIs(t, err, cvrp.ErrPrecisionOverflow)

	out, err := run(t, "brute", "--tsplib", path, "--precision", "7", "--threshold", "19.5")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of 6 routes marked")
}

func TestClusterKMeans(t *testing.T) {
	out, err := run(t, "cluster", "--method", "kmeans", "--clusters", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "kmeans: 3 clusters")

	_, err = run(t, "cluster", "--method", "sweep")
	require.ErrorIs(t, err, cvrp.ErrClusterMethod)
}
