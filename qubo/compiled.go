package qubo

// Neighbor is one entry of a variable's adjacency list.
type Neighbor struct {
	V int     // dense index of the other variable
	W float64 // J between the two
}

// Compiled is a Model flattened to dense indices. Index k addresses
// Vars[k], Linear[k] and Adj[k].
type Compiled struct {
	Vars   []int
	Linear []float64
	Adj    [][]Neighbor
	Offset float64

	index map[int]int
}

// Compile flattens m. Later changes to m are not reflected.
func (m *Model) Compile() *Compiled {
	vars := m.Variables()
	c := &Compiled{
		Vars:   vars,
		Linear: make([]float64, len(vars)),
		Adj:    make([][]Neighbor, len(vars)),
		Offset: m.Offset,
		index:  make(map[int]int, len(vars)),
	}
	for k, v := range vars {
		c.index[v] = k
		c.Linear[k] = m.Linear[v]
	}
	for p, w := range m.Quadratic {
		if w == 0 {
			continue
		}
		i, j := c.index[p.I], c.index[p.J]
		c.Adj[i] = append(c.Adj[i], Neighbor{V: j, W: w})
		c.Adj[j] = append(c.Adj[j], Neighbor{V: i, W: w})
	}

	return c
}

// Len returns the number of variables.
func (c *Compiled) Len() int { return len(c.Vars) }

// Index returns the dense index of label v.
func (c *Compiled) Index(v int) (int, bool) {
	k, ok := c.index[v]
	return k, ok
}

// Energy evaluates a dense assignment of length Len.
func (c *Compiled) Energy(x []int8) float64 {
	e := c.Offset
	for i, h := range c.Linear {
		if x[i] == 0 {
			continue
		}
		e += h
		for _, nb := range c.Adj[i] {
			if nb.V > i && x[nb.V] == 1 {
				e += nb.W
			}
		}
	}

	return e
}

// Field returns h_k + Σ_j J_kj·x_j.
func (c *Compiled) Field(x []int8, k int) float64 {
	f := c.Linear[k]
	for _, nb := range c.Adj[k] {
		if x[nb.V] == 1 {
			f += nb.W
		}
	}

	return f
}

// FlipDelta returns the energy change of flipping x_k.
func (c *Compiled) FlipDelta(x []int8, k int) float64 {
	f := c.Field(x, k)
	if x[k] == 1 {
		return -f
	}

	return f
}

// Assignment maps a dense assignment back to labels.
func (c *Compiled) Assignment(x []int8) map[int]int8 {
	out := make(map[int]int8, len(x))
	for k, v := range c.Vars {
		out[v] = x[k]
	}

	return out
}
