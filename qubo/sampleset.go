package qubo

import (
	"cmp"
	"slices"
)

// Sample is one distinct assignment. Values align with SampleSet.Variables.
type Sample struct {
	Values      []int8  `json:"values"`
	Energy      float64 `json:"energy"`
	Occurrences int     `json:"num_occurrences"`
}

// SampleSet aggregates the reads of one sampler run.
type SampleSet struct {
	Variables []int          `json:"variables"`
	Samples   []Sample       `json:"samples"`
	Info      map[string]any `json:"info,omitempty"`

	seen map[string]int
}

// NewSampleSet returns an empty set over vars.
func NewSampleSet(vars []int) *SampleSet {
	return &SampleSet{
		Variables: slices.Clone(vars),
		Info:      make(map[string]any),
		seen:      make(map[string]int),
	}
}

// Add records occurrences reads of values; duplicates are merged.
// values is copied.
func (s *SampleSet) Add(values []int8, energy float64, occurrences int) {
	if s.seen == nil {
		s.seen = make(map[string]int, len(s.Samples))
		for k, smp := range s.Samples {
			s.seen[key(smp.Values)] = k
		}
	}
	k := key(values)
	if at, ok := s.seen[k]; ok {
		s.Samples[at].Occurrences += occurrences
		return
	}
	s.seen[k] = len(s.Samples)
	s.Samples = append(s.Samples, Sample{Values: slices.Clone(values), Energy: energy, Occurrences: occurrences})
}

// Sort orders samples by ascending energy, keeping insertion order on ties.
func (s *SampleSet) Sort() {
	slices.SortStableFunc(s.Samples, func(a, b Sample) int { return cmp.Compare(a.Energy, b.Energy) })
	s.seen = nil
}

// Len returns the number of distinct samples.
func (s *SampleSet) Len() int { return len(s.Samples) }

// Reads returns the total number of reads.
func (s *SampleSet) Reads() int {
	n := 0
	for _, smp := range s.Samples {
		n += smp.Occurrences
	}

	return n
}

// First returns the lowest-energy sample.
func (s *SampleSet) First() (Sample, error) {
	if len(s.Samples) == 0 {
		return Sample{}, ErrEmptySampleSet
	}
	best := 0
	for k, smp := range s.Samples {
		if smp.Energy < s.Samples[best].Energy {
			best = k
		}
	}

	return s.Samples[best], nil
}

// Assignment returns sample k keyed by label.
func (s *SampleSet) Assignment(k int) map[int]int8 {
	out := make(map[int]int8, len(s.Variables))
	for i, v := range s.Variables {
		out[v] = s.Samples[k].Values[i]
	}

	return out
}

func key(values []int8) string {
	b := make([]byte, len(values))
	for i, v := range values {
		b[i] = byte(v)
	}

	return string(b)
}
