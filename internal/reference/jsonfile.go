package reference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// JSONFileStore keeps the learned mapping in a single JSON file with
// read-whole/write-whole semantics, matching the legacy store format.
// A process-wide mutex gives single-writer discipline inside one
// process; cross-process writers still race on the whole file, which is
// why SQLiteStore is the default backend.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileStore opens a file-backed store. A missing or corrupt file
// reads as an empty mapping; persistence is best-effort by contract.
func NewJSONFileStore(path string) *JSONFileStore {
	if path == "" {
		path = "learned_reference_ranges.json"
	}
	return &JSONFileStore{path: path}
}

func (s *JSONFileStore) Close() error { return nil }

// Path returns the mapping file path.
func (s *JSONFileStore) Path() string { return s.path }

func (s *JSONFileStore) Get(ctx context.Context, canonical string) (entity.LearnedRange, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.loadLocked()
	lr, ok := m[canonical]
	return lr, ok, nil
}

func (s *JSONFileStore) Upsert(ctx context.Context, canonical string, lr entity.LearnedRange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.loadLocked()
	m[canonical] = lr
	return s.saveLocked(m)
}

func (s *JSONFileStore) All(ctx context.Context) (map[string]entity.LearnedRange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(), nil
}

// loadLocked reads the whole mapping fresh from disk. Any I/O or decode
// failure is treated as "no learned ranges yet".
func (s *JSONFileStore) loadLocked() map[string]entity.LearnedRange {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]entity.LearnedRange{}
	}
	var m map[string]entity.LearnedRange
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]entity.LearnedRange{}
	}
	return m
}

func (s *JSONFileStore) saveLocked(m map[string]entity.LearnedRange) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode learned ranges: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write learned ranges: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		// best effort cleanup of the temp file
		rmErr := os.Remove(tmp)
		return errors.Join(fmt.Errorf("replace learned ranges file: %w", err), rmErr)
	}
	return nil
}
