package sampler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/katalvlaran/qvrp/qubo"
)

// CloudSampler is the "direct" and "hybrid" sampler.
type CloudSampler struct {
	kind   string
	solver string
	client *Client
	logger log.Logger
}

func newCloudSampler(kind, solver string, o Options) (*CloudSampler, error) {
	client, err := NewClient(o.Cloud, o.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s sampler: %w", kind, err)
	}

	return &CloudSampler{kind: kind, solver: solver, client: client, logger: o.Logger}, nil
}

// Name implements Sampler.
func (s *CloudSampler) Name() string { return s.kind }

// Solver returns the remote solver name.
func (s *CloudSampler) Solver() string { return s.solver }

// Connect checks that the remote solver is reachable.
func (s *CloudSampler) Connect(ctx context.Context) error {
	info, err := s.client.Solver(ctx, s.solver)
	if err != nil {
		return err
	}
	s.logger.Debug("Solver available", "solver", info.ID, "status", info.Status)

	return nil
}

// Close closes the underlying client.
func (s *CloudSampler) Close() error { return s.client.Close() }

// ProblemLabel returns the label attached to a submission of file.
func ProblemLabel(kind string, p Params, file string) string {
	p = p.withDefaults(kind)
	if kind == KindHybrid {
		return fmt.Sprintf("LeapHybridSampler time_limit=%g: %s", p.TimeLimit.Seconds(), file)
	}

	return fmt.Sprintf("DWaveSampler with embedding num_reads=%d %s", p.NumReads, file)
}

// Sample implements Sampler.
func (s *CloudSampler) Sample(ctx context.Context, m *qubo.Model, p Params) (*qubo.SampleSet, error) {
	p = p.withDefaults(s.kind)
	start := time.Now()

	prob := Problem{
		Solver: s.solver,
		Type:   "qubo",
		Label:  ProblemLabel(s.kind, p, p.Label),
		Data:   problemData(m),
		Params: map[string]any{},
	}
	if s.kind == KindHybrid {
		prob.Params["time_limit"] = p.TimeLimit.Seconds()
	} else {
		prob.Params["num_reads"] = p.NumReads
	}

	st, err := s.client.Submit(ctx, prob)
	if err != nil {
		return nil, err
	}
	if st, err = s.client.Wait(ctx, st); err != nil {
		return nil, err
	}
	set, err := answerSet(m, st.Answer)
	if err != nil {
		return nil, fmt.Errorf("problem %s: %w", st.ID, err)
	}
	set.Info["problem_id"] = st.ID
	set.Info["problem_label"] = prob.Label
	set.Info["solver"] = s.solver
	if st.Answer.Timing != nil {
		set.Info["timing"] = st.Answer.Timing
	}
	s.logger.Debug("Problem solved", "id", st.ID, "samples", set.Len(), "elapsed", time.Since(start))

	return set, nil
}

func problemData(m *qubo.Model) ProblemData {
	d := ProblemData{Format: "coo", Offset: m.Offset}
	for v, h := range m.Linear {
		if h != 0 {
			d.Terms = append(d.Terms, Term{I: v, J: v, V: h})
		}
	}
	for p, w := range m.Quadratic {
		if w != 0 {
			d.Terms = append(d.Terms, Term{I: p.I, J: p.J, V: w})
		}
	}
	slices.SortFunc(d.Terms, func(a, b Term) int {
		if a.I != b.I {
			return a.I - b.I
		}
		return a.J - b.J
	})

	return d
}

// answerSet rebuilds a sample set over every model variable; variables the
// service left inactive read 0. Energies are recomputed from m.
func answerSet(m *qubo.Model, ans *Answer) (*qubo.SampleSet, error) {
	if ans == nil {
		return nil, fmt.Errorf("no answer: %w", ErrBadAnswer)
	}
	c := m.Compile()
	pos := make([]int, len(ans.ActiveVariables))
	for i, v := range ans.ActiveVariables {
		k, ok := c.Index(v)
		if !ok {
			return nil, fmt.Errorf("unknown variable %d: %w", v, ErrBadAnswer)
		}
		pos[i] = k
	}
	if len(ans.Occurrences) != 0 && len(ans.Occurrences) != len(ans.Solutions) {
		return nil, fmt.Errorf("%d occurrences for %d solutions: %w", len(ans.Occurrences), len(ans.Solutions), ErrBadAnswer)
	}

	set := qubo.NewSampleSet(c.Vars)
	x := make([]int8, c.Len())
	for r, sol := range ans.Solutions {
		if len(sol) != len(pos) {
			return nil, fmt.Errorf("solution %d has %d values for %d variables: %w", r, len(sol), len(pos), ErrBadAnswer)
		}
		clear(x)
		for i, v := range sol {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("solution %d: value %d: %w", r, v, ErrBadAnswer)
			}
			x[pos[i]] = v
		}
		occ := 1
		if len(ans.Occurrences) != 0 {
			occ = ans.Occurrences[r]
		}
		set.Add(x, c.Energy(x), occ)
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("no solutions: %w", ErrBadAnswer)
	}
	set.Sort()

	return set, nil
}
