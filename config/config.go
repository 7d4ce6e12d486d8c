package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ghodss/yaml"
	"github.com/katalvlaran/qvrp/sampler"
)

// Environment variable names.
const (
	EnvLogLevel     = "QVRP_LOG_LEVEL"
	EnvArchive      = "QVRP_ARCHIVE"
	EnvEndpoint     = "DWAVE_API_ENDPOINT"
	EnvToken        = "DWAVE_API_TOKEN"
	EnvSolver       = "DWAVE_API_SOLVER"
	EnvHybridSolver = "DWAVE_HYBRID_SOLVER"
)

// Config is the full settings tree.
type Config struct {
	LogLevel string  `json:"log_level"`
	Archive  string  `json:"archive,omitempty"`
	Cloud    Cloud   `json:"cloud"`
	Sampler  Sampler `json:"sampler"`
	Oracle   Oracle  `json:"oracle"`
}

// Cloud configures the remote samplers.
type Cloud struct {
	Endpoint     string   `json:"endpoint"`
	Token        string   `json:"token,omitempty"`
	Solver       string   `json:"solver"`
	HybridSolver string   `json:"hybrid_solver"`
	PollInterval Duration `json:"poll_interval"`
}

// Sampler overrides sampler parameters; zero keeps the kind's default.
type Sampler struct {
	NumReads       int      `json:"num_reads,omitempty"`
	Sweeps         int      `json:"sweeps,omitempty"`
	Seed           int64    `json:"seed,omitempty"`
	MaxIter        int      `json:"max_iter,omitempty"`
	MaxTime        Duration `json:"max_time,omitempty"`
	SubproblemSize int      `json:"subproblem_size,omitempty"`
	TimeLimit      Duration `json:"time_limit,omitempty"`
}

// Oracle configures the routing oracle and its search.
type Oracle struct {
	Precision int     `json:"precision"`
	Threshold float64 `json:"threshold"`
	Shots     int     `json:"shots"`
	Seed      int64   `json:"seed"`
	Workers   int     `json:"workers,omitempty"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Cloud: Cloud{
			Endpoint:     "https://cloud.dwavesys.com/sapi/",
			Solver:       "Advantage_system4.1",
			HybridSolver: "hybrid_binary_quadratic_model_version2",
			PollInterval: Duration(time.Second),
		},
		Oracle: Oracle{Precision: 5, Threshold: 11, Shots: 1000, Seed: 1},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err = yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.Getenv)

	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the variables getenv reports non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	for name, field := range map[string]*string{
		EnvLogLevel:     &c.LogLevel,
		EnvArchive:      &c.Archive,
		EnvEndpoint:     &c.Cloud.Endpoint,
		EnvToken:        &c.Cloud.Token,
		EnvSolver:       &c.Cloud.Solver,
		EnvHybridSolver: &c.Cloud.HybridSolver,
	} {
		if v := getenv(name); v != "" {
			*field = v
		}
	}
}

// Validate checks the values no layer may leave broken.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Oracle.Precision < 1 || c.Oracle.Precision > 31 {
		return fmt.Errorf("oracle.precision %d: %w", c.Oracle.Precision, ErrInvalid)
	}
	if c.Oracle.Shots < 0 || c.Sampler.NumReads < 0 || c.Sampler.Sweeps < 0 {
		return fmt.Errorf("negative count: %w", ErrInvalid)
	}

	return nil
}

// Params converts the sampler section.
func (c *Config) Params() sampler.Params {
	return sampler.Params{
		NumReads:       c.Sampler.NumReads,
		Sweeps:         c.Sampler.Sweeps,
		Seed:           c.Sampler.Seed,
		MaxIter:        c.Sampler.MaxIter,
		MaxTime:        time.Duration(c.Sampler.MaxTime),
		SubproblemSize: c.Sampler.SubproblemSize,
		TimeLimit:      time.Duration(c.Sampler.TimeLimit),
	}
}

// CloudOptions converts the cloud section.
func (c *Config) CloudOptions() sampler.CloudOptions {
	return sampler.CloudOptions{
		Endpoint:     c.Cloud.Endpoint,
		Token:        c.Cloud.Token,
		Solver:       c.Cloud.Solver,
		HybridSolver: c.Cloud.HybridSolver,
		PollInterval: time.Duration(c.Cloud.PollInterval),
	}
}

// Redacted returns a copy without the API token.
func (c Config) Redacted() Config {
	if c.Cloud.Token != "" {
		c.Cloud.Token = "****"
	}

	return c
}

// YAML renders c.
func (c Config) YAML() ([]byte, error) { return yaml.Marshal(c) }

// Duration is a time.Duration read from "1m30s" style strings or plain
// numbers of seconds.
type Duration time.Duration

// MarshalJSON writes the duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%q: %w", s, ErrBadDuration)
		}
		*d = Duration(v)
		return nil
	}
	secs, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("%s: %w", b, ErrBadDuration)
	}
	*d = Duration(secs * float64(time.Second))

	return nil
}
