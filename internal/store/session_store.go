package store

import (
	"errors"
	"sync"
)

// Kind names an artifact family held by the session store.
type Kind string

const (
	KindForecast Kind = "forecast"
	KindPlan     Kind = "plan"
	KindScenario Kind = "scenario"
)

// ErrNotFound is returned when a referenced artifact id does not exist.
var ErrNotFound = errors.New("artifact not found")

// SessionStore owns every artifact created during the process lifetime, keyed
// by generated id. Artifacts are immutable after Put, so concurrent reads need
// no copying; only registration takes the write lock. List preserves insertion
// order, which the scenario engine relies on when inferring a base plan.
type SessionStore struct {
	mu    sync.RWMutex
	items map[Kind]map[string]any
	order map[Kind][]string
}

func New() *SessionStore {
	return &SessionStore{
		items: make(map[Kind]map[string]any),
		order: make(map[Kind][]string),
	}
}

// Put registers an artifact under the given kind and id. Ids are generated by
// the service layer, never by the store.
func (s *SessionStore) Put(kind Kind, id string, artifact any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items[kind] == nil {
		s.items[kind] = make(map[string]any)
	}
	if _, exists := s.items[kind][id]; !exists {
		s.order[kind] = append(s.order[kind], id)
	}
	s.items[kind][id] = artifact
}

func (s *SessionStore) Get(kind Kind, id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	artifact, ok := s.items[kind][id]
	return artifact, ok
}

// List returns all artifacts of a kind in insertion order.
func (s *SessionStore) List(kind Kind) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.order[kind]
	artifacts := make([]any, 0, len(ids))
	for _, id := range ids {
		artifacts = append(artifacts, s.items[kind][id])
	}
	return artifacts
}

func (s *SessionStore) Len(kind Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items[kind])
}
