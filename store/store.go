package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketRuns = []byte("runs")

// Run is one archived solver invocation.
type Run struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Source    string         `json:"source"`
	Started   time.Time      `json:"started"`
	Elapsed   time.Duration  `json:"elapsed"`
	Variables int            `json:"variables"`
	Energy    float64        `json:"energy"`
	Values    []int8         `json:"values,omitempty"`
	Info      map[string]any `json:"info,omitempty"`
}

// Store is an open archive.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRuns)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the archive.
func (s *Store) Close() error { return s.db.Close() }

// Put stores r, assigning an id and start time when missing.
func (s *Store) Put(r *Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Started.IsZero() {
		r.Started = time.Now()
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).Put(key(r), raw)
	})
}

// List returns up to limit runs, newest first; limit ≤ 0 returns all.
func (s *Store) List(limit int) ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(runs) == limit {
				break
			}
			var r Run
			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("run %s: %w", k, err)
			}
			runs = append(runs, r)
		}
		return nil
	})

	return runs, err
}

// Get returns the run with the given id or id prefix.
func (s *Store) Get(id string) (Run, error) {
	var (
		run   Run
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(k, v []byte) error {
			if found || !strings.HasPrefix(idOf(k), id) {
				return nil
			}
			found = true
			return json.Unmarshal(v, &run)
		})
	})
	if err != nil {
		return Run{}, err
	}
	if !found {
		return Run{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}

	return run, nil
}

func key(r *Run) []byte {
	return []byte(fmt.Sprintf("%020d/%s", r.Started.UnixNano(), r.ID))
}

func idOf(k []byte) string {
	_, id, _ := strings.Cut(string(k), "/")
	return id
}
