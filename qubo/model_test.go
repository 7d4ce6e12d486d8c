package qubo_test

import (
	"testing"

	"github.com/brianvoe/gofakeit"
	"github.com/katalvlaran/qvrp/qubo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallModel() *qubo.Model {
	m := qubo.NewModel()
	m.AddLinear(1, -1)
	m.AddLinear(2, 0.5)
	m.AddQuadratic(2, 1, 2)
	m.AddQuadratic(3, 3, -0.25)
	m.AddQuadratic(1, 3, 1)
	m.Offset = 0.5

	return m
}

func TestModelVariablesAndFolding(t *testing.T) {
	m := smallModel()
	assert.Equal(t, []int{1, 2, 3}, m.Variables())
	assert.Equal(t, 2, m.NumInteractions())
	assert.Equal(t, 2.0, m.Quadratic[qubo.Pair{I: 1, J: 2}])
	assert.Equal(t, -0.25, m.Linear[3])
}

func TestModelEnergy(t *testing.T) {
	m := smallModel()
	e, err := m.Energy(map[int]int8{1: 1, 2: 1, 3: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.5-1+0.5+2, e)

	_, err = m.Energy(map[int]int8{1: 1, 2: 1})
	require.ErrorIs(t, err, qubo.ErrMissingVariable)
	_, err = m.Energy(map[int]int8{1: 2, 2: 1, 3: 0})
	require.ErrorIs(t, err, qubo.ErrNotBinary)
}

func TestCompiledAgreesWithModel(t *testing.T) {
	gofakeit.Seed(21)
	m := qubo.NewModel()
	for i := 0; i < 40; i++ {
		a, b := gofakeit.Number(0, 11), gofakeit.Number(0, 11)
		m.AddQuadratic(a, b, float64(gofakeit.Number(-50, 50))/10)
	}
	c := m.Compile()
	x := make([]int8, c.Len())
	for trial := 0; trial < 50; trial++ {
		for k := range x {
			x[k] = int8(gofakeit.Number(0, 1))
		}
		want, err := m.Energy(c.Assignment(x))
		require.NoError(t, err)
		got := c.Energy(x)
		assert.InDelta(t, want, got, 1e-9)

		k := gofakeit.Number(0, c.Len()-1)
		delta := c.FlipDelta(x, k)
		x[k] ^= 1
		assert.InDelta(t, got+delta, c.Energy(x), 1e-9)
	}
}

func TestCompiledIndex(t *testing.T) {
	c := smallModel().Compile()
	k, ok := c.Index(3)
	require.True(t, ok)
	assert.Equal(t, 2, k)
	_, ok = c.Index(9)
	assert.False(t, ok)
}

func TestSampleSetAggregates(t *testing.T) {
	s := qubo.NewSampleSet([]int{1, 2})
	s.Add([]int8{1, 0}, 3, 1)
	s.Add([]int8{0, 1}, -1, 2)
	s.Add([]int8{1, 0}, 3, 4)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 7, s.Reads())

	s.Sort()
	first, err := s.First()
	require.NoError(t, err)
	assert.Equal(t, -1.0, first.Energy)
	assert.Equal(t, map[int]int8{1: 0, 2: 1}, s.Assignment(0))

	s.Add([]int8{0, 1}, -1, 1)
	assert.Equal(t, 3, s.Samples[0].Occurrences)

	_, err = qubo.NewSampleSet(nil).First()
	require.ErrorIs(t, err, qubo.ErrEmptySampleSet)
}
