package sampler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"github.com/tevino/abool"
)

// AuthHeader carries the API token.
const AuthHeader = "X-Auth-Token"

// Problem statuses reported by the service.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusCancelled  = "CANCELLED"
)

// CloudOptions configures the remote samplers.
type CloudOptions struct {
	Endpoint     string
	Token        string
	Solver       string // used by "direct"
	HybridSolver string // used by "hybrid"

	PollInterval time.Duration
	HTTPClient   *http.Client
}

// Term is one COO entry of a submitted problem.
type Term struct {
	I int     `json:"i"`
	J int     `json:"j"`
	V float64 `json:"v"`
}

// ProblemData is the model in coordinate form.
type ProblemData struct {
	Format string  `json:"format"`
	Terms  []Term  `json:"terms"`
	Offset float64 `json:"offset,omitempty"`
}

// Problem is a submission.
type Problem struct {
	ID     string         `json:"id"`
	Solver string         `json:"solver"`
	Type   string         `json:"type"`
	Label  string         `json:"label,omitempty"`
	Data   ProblemData    `json:"data"`
	Params map[string]any `json:"params,omitempty"`
}

// Answer holds the solutions of a completed problem. Solutions align with
// ActiveVariables.
type Answer struct {
	ActiveVariables []int              `json:"active_variables"`
	Solutions       [][]int8           `json:"solutions"`
	Energies        []float64          `json:"energies,omitempty"`
	Occurrences     []int              `json:"num_occurrences,omitempty"`
	Timing          map[string]float64 `json:"timing,omitempty"`
}

// ProblemStatus is the service's view of a submission.
type ProblemStatus struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Solver       string  `json:"solver,omitempty"`
	Label        string  `json:"label,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Answer       *Answer `json:"answer,omitempty"`
}

// Done reports whether the status is terminal.
func (s ProblemStatus) Done() bool {
	switch s.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}

	return false
}

// SolverInfo describes a remote solver.
type SolverInfo struct {
	ID          string         `json:"id"`
	Status      string         `json:"status,omitempty"`
	Description string         `json:"description,omitempty"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Client talks to a SAPI-style REST service. It is safe for concurrent use;
// after Close every call fails with ErrClientClosed.
type Client struct {
	base   *url.URL
	token  string
	poll   time.Duration
	http   *http.Client
	closed *abool.AtomicBool
	logger log.Logger
}

// NewClient validates opts and returns a client.
func NewClient(opts CloudOptions, logger log.Logger) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if opts.Token == "" {
		return nil, ErrNoToken
	}
	base, err := url.Parse(strings.TrimSuffix(opts.Endpoint, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("endpoint %q: %w", opts.Endpoint, err)
	}
	if logger == nil {
		logger = log.Root()
	}
	c := &Client{
		base:   base,
		token:  opts.Token,
		poll:   opts.PollInterval,
		http:   opts.HTTPClient,
		closed: abool.New(),
		logger: logger,
	}
	if c.poll <= 0 {
		c.poll = time.Second
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}

	return c, nil
}

// Solver fetches the description of a remote solver.
func (c *Client) Solver(ctx context.Context, name string) (SolverInfo, error) {
	var info SolverInfo
	err := c.do(ctx, http.MethodGet, "solvers/remote/"+url.PathEscape(name)+"/", nil, &info)

	return info, err
}

// Submit posts p and returns the service's status. The problem id is
// generated client-side when p.ID is empty and kept when the reply omits one.
func (c *Client) Submit(ctx context.Context, p Problem) (ProblemStatus, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	var reply []ProblemStatus
	if err := c.do(ctx, http.MethodPost, "problems/", []Problem{p}, &reply); err != nil {
		return ProblemStatus{}, err
	}
	if len(reply) != 1 {
		return ProblemStatus{}, fmt.Errorf("submit: %d statuses for one problem: %w", len(reply), ErrBadAnswer)
	}
	st := reply[0]
	if st.ID == "" {
		st.ID = p.ID
	}
	c.logger.Debug("Problem submitted", "id", st.ID, "solver", p.Solver, "status", st.Status)

	return st, nil
}

// Status fetches the current status of problem id.
func (c *Client) Status(ctx context.Context, id string) (ProblemStatus, error) {
	var st ProblemStatus
	if err := c.do(ctx, http.MethodGet, "problems/"+url.PathEscape(id)+"/", nil, &st); err != nil {
		return ProblemStatus{}, err
	}
	if st.ID == "" {
		st.ID = id
	}

	return st, nil
}

// Wait polls problem id until it reaches a terminal status. FAILED and
// CANCELLED are returned as ErrProblemFailed.
func (c *Client) Wait(ctx context.Context, st ProblemStatus) (ProblemStatus, error) {
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	var err error
	for !st.Done() {
		select {
		case <-ctx.Done():
			return st, ctx.Err()
		case <-ticker.C:
		}
		if st, err = c.Status(ctx, st.ID); err != nil {
			return st, err
		}
		c.logger.Trace("Problem polled", "id", st.ID, "status", st.Status)
	}
	if st.Status != StatusCompleted {
		return st, fmt.Errorf("problem %s %s: %s: %w", st.ID, st.Status, st.ErrorMessage, ErrProblemFailed)
	}

	return st, nil
}

// Close marks the client closed. Closing twice is a no-op.
func (c *Client) Close() error {
	if c.closed.SetToIf(false, true) {
		c.http.CloseIdleConnections()
	}

	return nil
}

// do sends one request; in and out are JSON bodies, either may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.closed.IsSet() {
		return ErrClientClosed
	}
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set(AuthHeader, c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: [%d] %s: %w", method, path, resp.StatusCode, strings.TrimSpace(string(msg)), ErrHTTPStatus)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}

	return nil
}
