// Package memory is the in-process store used for development and
// tests. A single mutex provides the per-record mutual exclusion the
// persistence boundary promises.
package memory

import (
	"context"
	"sync"

	"nestegg/internal/core"
	"nestegg/internal/store"
)

type record struct {
	profile          core.ClientProfile
	result           *core.AllocationResult
	allocatedVersion int64
}

type Store struct {
	mu      sync.Mutex
	records map[string]*record
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{records: map[string]*record{}}
}

func (s *Store) GetProfile(_ context.Context, clientID string) (core.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[clientID]
	if !ok {
		return core.ClientProfile{}, store.ErrNotFound
	}
	return rec.profile, nil
}

func (s *Store) SaveProfile(_ context.Context, p core.ClientProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[p.ID]
	if !ok {
		p.Version = 1
		s.records[p.ID] = &record{profile: p}
		return nil
	}
	p.Version = rec.profile.Version + 1
	rec.profile = p
	return nil
}

func (s *Store) WriteResult(_ context.Context, r core.AllocationResult, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[r.ClientID]
	if !ok {
		return store.ErrNotFound
	}
	if rec.profile.Version != expectedVersion {
		return store.ErrConflict
	}
	cp := deepCopy(r)
	rec.result = &cp
	rec.allocatedVersion = expectedVersion
	return nil
}

func (s *Store) ReadResult(_ context.Context, clientID string) (core.AllocationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[clientID]
	if !ok || rec.result == nil {
		return core.AllocationResult{}, store.ErrNotFound
	}
	return deepCopy(*rec.result), nil
}

func (s *Store) ListStale(_ context.Context, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for id, rec := range s.records {
		if rec.allocatedVersion < rec.profile.Version {
			out = append(out, id)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

// deepCopy clones the nested maps so callers never share state with
// the store.
func deepCopy(r core.AllocationResult) core.AllocationResult {
	out := core.NewResult(r.ClientID)
	for d, vehicles := range r.Domains {
		for name, a := range vehicles {
			out.Set(d, name, a)
		}
	}
	return out
}
