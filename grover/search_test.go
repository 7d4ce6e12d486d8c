package grover_test

import (
	"context"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/cvrp"
	"github.com/katalvlaran/qvrp/grover"
	"github.com/katalvlaran/qvrp/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = log.NewLogger(log.DiscardHandler())

func defaultOracle(t *testing.T, threshold float64) *oracle.Oracle {
	t.Helper()
	opts := oracle.DefaultOptions()
	opts.Threshold = threshold
	opts.Logger = quiet
	o, err := oracle.New(cvrp.DefaultInstance(), opts)
	require.NoError(t, err)

	return o
}

func TestIterations(t *testing.T) {
	assert.Equal(t, 1, grover.Iterations(6, 2))
	assert.Equal(t, 1, grover.Iterations(6, 3))
	assert.Equal(t, 3, grover.Iterations(24, 1))
	assert.Equal(t, 0, grover.Iterations(6, 6))
	assert.Equal(t, 0, grover.Iterations(6, 0))

	w, err := grover.DefaultWinners(4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, w)
	w, err = grover.DefaultWinners(5)
	require.NoError(t, err)
	assert.Equal(t, 4.0, w)
}

// TestSearchAmplifiesMarkedRoutes uses threshold 8 on the default instance:
// two of six routes are marked, one iteration lifts their total probability
// from 1/3 to sin²(3θ) with sin²θ = 1/3.
func TestSearchAmplifiesMarkedRoutes(t *testing.T) {
	o := defaultOracle(t, 8)
	opts := grover.DefaultOptions()
	opts.Winners = 2
	opts.Seed = 7
	opts.Workers = 3
	opts.Logger = quiet

	res, err := grover.Search(context.Background(), o, opts)
	require.NoError(t, err)
	assert.Equal(t, 6, res.States)
	assert.Equal(t, 1, res.Iterations)
	assert.Equal(t, 2, res.Marked)

	theta := math.Asin(math.Sqrt(1.0 / 3))
	want := math.Pow(math.Sin(3*theta), 2)
	assert.InDelta(t, want, res.Success, 1e-9)

	require.Len(t, res.Outcomes, 6)
	top := res.Outcomes[:2]
	for _, out := range top {
		assert.True(t, out.Marked)
		assert.InDelta(t, want/2, out.Probability, 1e-9)
	}
	assert.Equal(t, []int{1, 2, 3}, top[0].Itinerary)
	assert.Equal(t, []int{2, 1, 3}, top[1].Itinerary)

	var hits, total int
	var prob float64
	for _, out := range res.Outcomes {
		total += out.Count
		prob += out.Probability
		if out.Marked {
			hits += out.Count
		}
	}
	assert.Equal(t, opts.Shots, total)
	assert.InDelta(t, 1.0, prob, 1e-9)
	assert.Greater(t, hits, opts.Shots*8/10)
}

func TestSearchIsReproducible(t *testing.T) {
	o := defaultOracle(t, 8.4)
	opts := grover.DefaultOptions()
	opts.Seed = 99
	opts.Logger = quiet

	a, err := grover.Search(context.Background(), o, opts)
	require.NoError(t, err)
	b, err := grover.Search(context.Background(), o, opts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSearchAllMarkedIsUniform(t *testing.T) {
	res, err := grover.Search(context.Background(), defaultOracle(t, 11), grover.Options{Logger: quiet, Shots: 10})
	require.NoError(t, err)
	assert.Equal(t, 6, res.Marked)
	assert.InDelta(t, 1.0, res.Success, 1e-9)
	for _, out := range res.Outcomes {
		assert.InDelta(t, 1.0/6, out.Probability, 1e-9)
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := grover.Search(ctx, defaultOracle(t, 8), grover.Options{Logger: quiet, Winners: 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearchValidates(t *testing.T) {
	_, err := grover.Search(context.Background(), nil, grover.DefaultOptions())
	require.ErrorIs(t, err, grover.ErrNilOracle)
	_, err = grover.Search(context.Background(), defaultOracle(t, 8), grover.Options{Shots: -1})
	require.ErrorIs(t, err, grover.ErrBadOptions)
}
