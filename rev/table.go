package rev

import "fmt"

// Table is a classical lookup table addressed by register contents, the
// classical side of a quantum dictionary. Values are stored row-major.
type Table struct {
	Name   string
	dims   []int
	values []uint64
}

// NewTable allocates a zero table with the given dimensions.
func NewTable(name string, dims ...int) (*Table, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("table %s: %w", name, ErrBadWidth)
	}
	size := 1
	for _, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("table %s: %w", name, ErrBadWidth)
		}
		size *= d
	}
	dc := make([]int, len(dims))
	copy(dc, dims)

	return &Table{Name: name, dims: dc, values: make([]uint64, size)}, nil
}

// Dims returns a copy of the table dimensions.
func (t *Table) Dims() []int {
	out := make([]int, len(t.dims))
	copy(out, t.dims)

	return out
}

// Set stores v at keys.
func (t *Table) Set(v uint64, keys ...int) error {
	k := make([]uint64, len(keys))
	for i, key := range keys {
		if key < 0 {
			return fmt.Errorf("table %s%v: %w", t.Name, keys, ErrLookupMiss)
		}
		k[i] = uint64(key)
	}
	off, err := t.offset(k)
	if err != nil {
		return err
	}
	t.values[off] = v

	return nil
}

// Lookup returns the value stored at keys.
func (t *Table) Lookup(keys []uint64) (uint64, error) {
	off, err := t.offset(keys)
	if err != nil {
		return 0, err
	}

	return t.values[off], nil
}

func (t *Table) offset(keys []uint64) (int, error) {
	if len(keys) != len(t.dims) {
		return 0, fmt.Errorf("table %s%v: %w", t.Name, keys, ErrLookupMiss)
	}
	off := 0
	for i, k := range keys {
		if k >= uint64(t.dims[i]) {
			return 0, fmt.Errorf("table %s%v: %w", t.Name, keys, ErrLookupMiss)
		}
		off = off*t.dims[i] + int(k)
	}

	return off, nil
}
