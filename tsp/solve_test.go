package tsp_test

import (
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/katalvlaran/qvrp/tsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveDispatch(t *testing.T) {
	gofakeit.Seed(3)
	m := randomPoints(t, 8)

	opts := tsp.DefaultOptions()
	exact, err := tsp.Solve(m, opts)
	require.NoError(t, err)
	assert.True(t, exact.Exact)

	opts.MaxExact = 4
	heur, err := tsp.Solve(m, opts)
	require.NoError(t, err)
	assert.False(t, heur.Exact)
	require.NoError(t, tsp.ValidateTour(heur.Tour, 8))
	assert.GreaterOrEqual(t, heur.Cost, exact.Cost-1e-9)
}

func TestSolveHeuristicDeterministic(t *testing.T) {
	gofakeit.Seed(5)
	m := randomPoints(t, 25)
	opts := tsp.DefaultOptions()
	opts.Seed = 42

	a, err := tsp.Solve(m, opts)
	require.NoError(t, err)
	b, err := tsp.Solve(m, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
