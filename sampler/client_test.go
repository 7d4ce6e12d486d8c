package sampler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/katalvlaran/qvrp/qubo"
	"github.com/katalvlaran/qvrp/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSAPI answers every problem with the all-ones and all-zeros solutions
// after pollsBeforeDone status requests.
type fakeSAPI struct {
	mu              sync.Mutex
	pollsBeforeDone int
	finalStatus     string
	omitID          bool
	submitted       []sampler.Problem
	polls           int
}

func (f *fakeSAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sapi/solvers/remote/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sapi/solvers/remote/"), "/")
		if name != "qpu" && name != "hybrid_v1" {
			http.Error(w, "no such solver", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(sampler.SolverInfo{ID: name, Status: "ONLINE"})
	})
	mux.HandleFunc("/sapi/problems/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(sampler.AuthHeader) != "secret" {
			http.Error(w, "bad token", http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method == http.MethodPost {
			var probs []sampler.Problem
			if err := json.NewDecoder(r.Body).Decode(&probs); err != nil || len(probs) != 1 {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			f.submitted = append(f.submitted, probs...)
			st := sampler.ProblemStatus{ID: probs[0].ID, Status: sampler.StatusPending}
			if f.omitID {
				st.ID = ""
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode([]sampler.ProblemStatus{st})
			return
		}
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/sapi/problems/"), "/")
		f.polls++
		st := sampler.ProblemStatus{ID: id, Status: sampler.StatusInProgress}
		if f.polls > f.pollsBeforeDone {
			st.Status = f.finalStatus
			if st.Status == sampler.StatusCompleted {
				st.Answer = &sampler.Answer{
					ActiveVariables: []int{2, 1},
					Solutions:       [][]int8{{1, 1}, {0, 0}},
					Occurrences:     []int{3, 1},
					Timing:          map[string]float64{"qpu_access_time": 1234},
				}
			} else {
				st.ErrorMessage = "solver exploded"
			}
		}
		_ = json.NewEncoder(w).Encode(st)
	})

	return mux
}

func cloudOptions(url string) sampler.CloudOptions {
	return sampler.CloudOptions{
		Endpoint:     url + "/sapi",
		Token:        "secret",
		Solver:       "qpu",
		HybridSolver: "hybrid_v1",
		PollInterval: time.Millisecond,
	}
}

func twoVarModel() *qubo.Model {
	m := qubo.NewModel()
	m.AddLinear(1, 1)
	m.AddLinear(2, 1)
	m.AddQuadratic(1, 2, -5)
	m.AddLinear(3, 0.5)

	return m
}

func TestCloudSamplerDirect(t *testing.T) {
	fake := &fakeSAPI{pollsBeforeDone: 2, finalStatus: sampler.StatusCompleted}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s, err := sampler.New(sampler.KindDirect, sampler.Options{Logger: quiet, Cloud: cloudOptions(srv.URL)})
	require.NoError(t, err)
	conn, ok := s.(sampler.Connector)
	require.True(t, ok)
	require.NoError(t, conn.Connect(context.Background()))

	set, err := s.Sample(context.Background(), twoVarModel(), sampler.Params{Label: "cluster1.coo"})
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	require.Len(t, fake.submitted, 1)
	sub := fake.submitted[0]
	assert.Equal(t, "qpu", sub.Solver)
	assert.Equal(t, "DWaveSampler with embedding num_reads=250 cluster1.coo", sub.Label)
	assert.EqualValues(t, 250, sub.Params["num_reads"])
	assert.NotEmpty(t, sub.ID)
	assert.Len(t, sub.Data.Terms, 4)

	assert.Equal(t, []int{1, 2, 3}, set.Variables)
	first, err := set.First()
	require.NoError(t, err)
	assert.Equal(t, -3.0, first.Energy)
	assert.Equal(t, []int8{1, 1, 0}, first.Values)
	assert.Equal(t, 3, first.Occurrences)
	assert.Equal(t, sub.ID, set.Info["problem_id"])

	_, err = s.Sample(context.Background(), twoVarModel(), sampler.Params{})
	require.ErrorIs(t, err, sampler.ErrClientClosed)
}

func TestCloudSamplerHybridKeepsClientID(t *testing.T) {
	fake := &fakeSAPI{finalStatus: sampler.StatusCompleted, omitID: true}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s, err := sampler.New(sampler.KindHybrid, sampler.Options{Logger: quiet, Cloud: cloudOptions(srv.URL)})
	require.NoError(t, err)
	set, err := s.Sample(context.Background(), twoVarModel(), sampler.Params{Label: "x.coo"})
	require.NoError(t, err)

	sub := fake.submitted[0]
	assert.Equal(t, "hybrid_v1", sub.Solver)
	assert.Equal(t, "LeapHybridSampler time_limit=5: x.coo", sub.Label)
	assert.EqualValues(t, 5, sub.Params["time_limit"])
	assert.Equal(t, sub.ID, set.Info["problem_id"])
}

func TestCloudSamplerFailures(t *testing.T) {
	fake := &fakeSAPI{finalStatus: sampler.StatusFailed}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	s, err := sampler.New(sampler.KindDirect, sampler.Options{Logger: quiet, Cloud: cloudOptions(srv.URL)})
	require.NoError(t, err)
	_, err = s.Sample(context.Background(), twoVarModel(), sampler.Params{})
	require.ErrorIs(t, err, sampler.ErrProblemFailed)

	opts := cloudOptions(srv.URL)
	opts.Token = "wrong"
	s, err = sampler.New(sampler.KindDirect, sampler.Options{Logger: quiet, Cloud: opts})
	require.NoError(t, err)
	_, err = s.Sample(context.Background(), twoVarModel(), sampler.Params{})
	require.ErrorIs(t, err, sampler.ErrHTTPStatus)
	assert.Len(t, fake.submitted, 1, "no retry after a rejected submission")

	opts = cloudOptions(srv.URL)
	opts.Solver = "gone"
	s, err = sampler.New(sampler.KindDirect, sampler.Options{Logger: quiet, Cloud: opts})
	require.NoError(t, err)
	require.ErrorIs(t, s.(sampler.Connector).Connect(context.Background()), sampler.ErrHTTPStatus)
}

func TestClientWaitHonoursContext(t *testing.T) {
	fake := &fakeSAPI{pollsBeforeDone: 1 << 30, finalStatus: sampler.StatusCompleted}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c, err := sampler.NewClient(cloudOptions(srv.URL), quiet)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	st, err := c.Submit(ctx, sampler.Problem{Solver: "qpu", Type: "qubo"})
	require.NoError(t, err)
	_, err = c.Wait(ctx, st)
	require.Error(t, err)
}
