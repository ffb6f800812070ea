package store

import (
	"context"
	"sync"

	"github.com/planfirst/strips/logic"
)

// MemoryStore implements Store with in-process maps. Useful for tests and
// single-run tools that want plan reuse without external infrastructure.
type MemoryStore struct {
	mu    sync.RWMutex
	plans map[string]PlanRecord
	facts map[string][]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans: make(map[string]PlanRecord),
		facts: make(map[string][]string),
	}
}

// SavePlan stores a plan record, replacing any existing one.
func (s *MemoryStore) SavePlan(_ context.Context, key string, rec PlanRecord) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	steps := make([]string, len(rec.Steps))
	copy(steps, rec.Steps)
	rec.Steps = steps
	s.plans[key] = rec
	return nil
}

// LoadPlan retrieves a plan record.
func (s *MemoryStore) LoadPlan(_ context.Context, key string) (*PlanRecord, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.plans[key]
	if !ok {
		return nil, ErrNotFound
	}
	steps := make([]string, len(rec.Steps))
	copy(steps, rec.Steps)
	rec.Steps = steps
	return &rec, nil
}

// SaveFacts stores a fact set in canonical text form.
func (s *MemoryStore) SaveFacts(_ context.Context, key string, facts []logic.Term) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts[key] = factStrings(facts)
	return nil
}

// LoadFacts retrieves a fact set.
func (s *MemoryStore) LoadFacts(_ context.Context, key string) ([]logic.Term, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	s.mu.RLock()
	raw, ok := s.facts[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return parseFacts(raw)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
