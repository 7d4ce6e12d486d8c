package cvrp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ReadTSPLIB parses a TSPLIB CVRP file with EUC_2D or EXACT_2D coordinates.
//
// Accepted keywords: NAME, TYPE (CVRP), COMMENT, DIMENSION, CAPACITY,
// EDGE_WEIGHT_TYPE, NODE_COORD_SECTION, DEMAND_SECTION, DEPOT_SECTION, EOF.
// Other keywords are ignored. Section headers may carry a
// trailing colon. Distances are the unrounded Euclidean norms.
//
// The first depot becomes city 0; the remaining nodes keep their file order.
func ReadTSPLIB(r io.Reader) (*Instance, error) {
	var (
		sc       = bufio.NewScanner(r)
		name     string
		dim      = -1
		capacity = -1
		coords   = make(map[int][]float64)
		demands  = make(map[int]int)
		depots   []int
		order    []int
		section  string
		line     int
	)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if text == "EOF" {
			break
		}
		key, value, isKey := splitKeyword(text)
		if isKey {
			section = ""
			switch key {
			case "NAME":
				name = value
			case "TYPE":
				if value != "CVRP" {
					return nil, fmt.Errorf("line %d: type %q: %w", line, value, ErrTSPLIB)
				}
			case "DIMENSION":
				n, err := strconv.Atoi(value)
				if err != nil || n < 1 {
					return nil, fmt.Errorf("line %d: dimension %q: %w", line, value, ErrTSPLIB)
				}
				dim = n
			case "CAPACITY":
				c, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("line %d: capacity %q: %w", line, value, ErrTSPLIB)
				}
				capacity = c
			case "EDGE_WEIGHT_TYPE":
				if value != "EUC_2D" && value != "EXACT_2D" {
					return nil, fmt.Errorf("line %d: edge weight type %q: %w", line, value, ErrTSPLIB)
				}
			case "NODE_COORD_SECTION", "DEMAND_SECTION", "DEPOT_SECTION":
				section = key
			}
			continue
		}

		fields := strings.Fields(text)
		switch section {
		case "NODE_COORD_SECTION":
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: coordinates %q: %w", line, text, ErrTSPLIB)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: node id %q: %w", line, fields[0], ErrTSPLIB)
			}
			pt := make([]float64, 2)
			for k := 0; k < 2; k++ {
				if pt[k], err = strconv.ParseFloat(fields[k+1], 64); err != nil {
					return nil, fmt.Errorf("line %d: coordinate %q: %w", line, fields[k+1], ErrTSPLIB)
				}
			}
			if _, dup := coords[id]; !dup {
				order = append(order, id)
			}
			coords[id] = pt
		case "DEMAND_SECTION":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: demand %q: %w", line, text, ErrTSPLIB)
			}
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: node id %q: %w", line, fields[0], ErrTSPLIB)
			}
			d, err := parseDemand(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			demands[id] = d
		case "DEPOT_SECTION":
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("line %d: depot %q: %w", line, fields[0], ErrTSPLIB)
			}
			if id >= 0 {
				depots = append(depots, id)
			}
		default:
			return nil, fmt.Errorf("line %d: unexpected data %q: %w", line, text, ErrTSPLIB)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if dim < 0 || capacity < 0 || len(coords) != dim {
		return nil, fmt.Errorf("%s: dimension %d, capacity %d, %d coordinates: %w", name, dim, capacity, len(coords), ErrTSPLIB)
	}
	depot := order[0]
	if len(depots) > 0 {
		depot = depots[0]
	}
	if _, ok := coords[depot]; !ok {
		return nil, fmt.Errorf("%s: depot %d has no coordinates: %w", name, depot, ErrTSPLIB)
	}
	ids := []int{depot}
	for _, id := range order {
		if id != depot {
			ids = append(ids, id)
		}
	}
	pts := make([][]float64, dim)
	dem := make([]int, dim)
	for i, id := range ids {
		pts[i] = coords[id]
		dem[i] = demands[id]
	}

	return NewEuclideanInstance(name, pts, dem, capacity)
}

// splitKeyword recognises "KEY: value", "KEY : value" and bare section
// headers ("NODE_COORD_SECTION", optionally followed by a colon).
func splitKeyword(text string) (key, value string, ok bool) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:]), true
	}
	if strings.HasSuffix(text, "_SECTION") {
		return text, "", true
	}

	return "", "", false
}

func parseDemand(s string) (int, error) {
	if d, err := strconv.Atoi(s); err == nil {
		return d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("demand %q: %w", s, ErrTSPLIB)
	}

	return int(f), nil
}

// WriteTSPLIB writes inst as a TSPLIB CVRP file. Node ids are 1-based and
// node 1 is the depot.
func WriteTSPLIB(w io.Writer, inst *Instance, comment string) error {
	if inst.Coords == nil {
		return fmt.Errorf("write %s: %w", inst.Name, ErrNoCoords)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME: %s\n", inst.Name)
	fmt.Fprintf(bw, "TYPE: CVRP\n")
	fmt.Fprintf(bw, "COMMENT: %s\n", comment)
	fmt.Fprintf(bw, "DIMENSION: %d\n", inst.CityAmount())
	fmt.Fprintf(bw, "CAPACITY: %d\n", inst.Capacity)
	fmt.Fprintf(bw, "EDGE_WEIGHT_TYPE: EXACT_2D\n")
	fmt.Fprintf(bw, "NODE_COORD_SECTION\n")
	for i, p := range inst.Coords {
		fmt.Fprintf(bw, "%d %s %s\n", i+1, formatFloat(p[0]), formatFloat(p[1]))
	}
	fmt.Fprintf(bw, "DEMAND_SECTION\n")
	for i, d := range inst.Demand {
		fmt.Fprintf(bw, "%d %d\n", i+1, d)
	}
	fmt.Fprintf(bw, "DEPOT_SECTION\n1\n-1\nEOF\n")

	return bw.Flush()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

