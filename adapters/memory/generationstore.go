// Package memory provides in-memory store implementations for tests and
// for running the server without a database.
package memory

import (
	"context"
	"sync"

	"github.com/pychain/forge/domain/generation"
	"github.com/pychain/forge/ports"
)

// GenerationStore keeps generation records in memory, newest first.
type GenerationStore struct {
	mu   sync.RWMutex
	recs []generation.Record
}

// NewGenerationStore creates an empty in-memory generation store.
func NewGenerationStore() *GenerationStore {
	return &GenerationStore{}
}

// Save stores a record.
func (s *GenerationStore) Save(_ context.Context, rec generation.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append([]generation.Record{rec}, s.recs...)
	return nil
}

// Get retrieves a record by ID.
func (s *GenerationStore) Get(_ context.Context, id string) (generation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recs {
		if r.ID == id {
			return r, nil
		}
	}
	return generation.Record{}, ports.ErrNotFound
}

// List returns up to limit records, newest first. limit <= 0 returns all.
func (s *GenerationStore) List(_ context.Context, limit int) ([]generation.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.recs)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]generation.Record(nil), s.recs[:n]...), nil
}

// Ensure interface compliance.
var _ ports.GenerationStore = (*GenerationStore)(nil)
