package qubo

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
)

// Pair keys a quadratic bias; I < J always holds.
type Pair struct {
	I, J int
}

// Model is a binary quadratic model.
type Model struct {
	Linear    map[int]float64
	Quadratic map[Pair]float64
	Offset    float64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Linear:    make(map[int]float64),
		Quadratic: make(map[Pair]float64),
	}
}

// AddLinear adds bias to h_v, registering v if needed.
func (m *Model) AddLinear(v int, bias float64) {
	m.Linear[v] += bias
}

// AddQuadratic adds bias to J_ij. i == j folds into the linear term since
// x² = x for binary variables.
func (m *Model) AddQuadratic(i, j int, bias float64) {
	if i == j {
		m.AddLinear(i, bias)
		return
	}
	if i > j {
		i, j = j, i
	}
	m.Linear[i] += 0
	m.Linear[j] += 0
	m.Quadratic[Pair{I: i, J: j}] += bias
}

// Variables returns every label of the model in ascending order.
func (m *Model) Variables() []int {
	set := mapset.NewSet(maps.Keys(m.Linear)...)
	for p := range m.Quadratic {
		set.Add(p.I)
		set.Add(p.J)
	}
	vars := set.ToSlice()
	slices.Sort(vars)

	return vars
}

// NumVariables returns the number of distinct labels.
func (m *Model) NumVariables() int { return len(m.Variables()) }

// NumInteractions returns the number of quadratic terms.
func (m *Model) NumInteractions() int { return len(m.Quadratic) }

// Energy evaluates the model on a labelled assignment.
func (m *Model) Energy(assign map[int]int8) (float64, error) {
	e := m.Offset
	for v, h := range m.Linear {
		x, err := value(assign, v)
		if err != nil {
			return 0, err
		}
		e += h * float64(x)
	}
	for p, w := range m.Quadratic {
		xi, err := value(assign, p.I)
		if err != nil {
			return 0, err
		}
		xj, err := value(assign, p.J)
		if err != nil {
			return 0, err
		}
		e += w * float64(xi*xj)
	}

	return e, nil
}

func value(assign map[int]int8, v int) (int8, error) {
	x, ok := assign[v]
	if !ok {
		return 0, fmt.Errorf("variable %d: %w", v, ErrMissingVariable)
	}
	if x != 0 && x != 1 {
		return 0, fmt.Errorf("variable %d = %d: %w", v, x, ErrNotBinary)
	}

	return x, nil
}
