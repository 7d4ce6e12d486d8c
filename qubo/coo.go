package qubo

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// COOHeader opens every written COO file.
const COOHeader = "%%MatrixMarket matrix coordinate real general"

// offsetComment carries the model offset, which has no coordinate form.
const offsetComment = "% offset:"

// ReadCOO parses a coordinate file. Blank lines and lines starting with
// '%' or '#' are skipped, except the offset comment written by WriteCOO.
// Repeated coordinates accumulate.
func ReadCOO(r io.Reader) (*Model, error) {
	var (
		m    = NewModel()
		sc   = bufio.NewScanner(r)
		line int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if rest, ok := strings.CutPrefix(text, offsetComment); ok {
			off, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: offset %q: %w", line, rest, ErrCOO)
			}
			m.Offset += off
			continue
		}
		if text == "" || text[0] == '%' || text[0] == '#' {
			continue
		}
		f := strings.Fields(text)
		if len(f) != 3 {
			return nil, fmt.Errorf("line %d: want \"i j value\", got %q: %w", line, text, ErrCOO)
		}
		i, erri := strconv.Atoi(f[0])
		j, errj := strconv.Atoi(f[1])
		v, errv := strconv.ParseFloat(f[2], 64)
		if erri != nil || errj != nil || errv != nil {
			return nil, fmt.Errorf("line %d: %q: %w", line, text, ErrCOO)
		}
		m.AddQuadratic(i, j, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return m, nil
}

// WriteCOO writes m in row-major upper-triangular order, skipping zero
// biases. A non-zero offset is kept in a comment line.
func WriteCOO(w io.Writer, m *Model) error {
	type entry struct {
		i, j int
		v    float64
	}
	entries := make([]entry, 0, len(m.Linear)+len(m.Quadratic))
	for v, h := range m.Linear {
		if h != 0 {
			entries = append(entries, entry{v, v, h})
		}
	}
	for p, q := range m.Quadratic {
		if q != 0 {
			entries = append(entries, entry{p.I, p.J, q})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.i, b.i); c != 0 {
			return c
		}
		return cmp.Compare(a.j, b.j)
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, COOHeader)
	if m.Offset != 0 {
		fmt.Fprintln(bw, offsetComment, strconv.FormatFloat(m.Offset, 'g', -1, 64))
	}
	for _, e := range entries {
		fmt.Fprintf(bw, "%d %d %s\n", e.i, e.j, strconv.FormatFloat(e.v, 'g', -1, 64))
	}

	return bw.Flush()
}
