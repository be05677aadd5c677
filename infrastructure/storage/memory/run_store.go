package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// runEntry holds a deep copy of a run for storage.
type runEntry struct {
	data []byte
}

// RunStore is an in-memory implementation of agent.Store.
type RunStore struct {
	runs map[string]*runEntry
	mu   sync.RWMutex
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*runEntry),
	}
}

// Save persists a run, overwriting any existing run with the same ID.
func (s *RunStore) Save(ctx context.Context, r *agent.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if r.ID == "" {
		return agent.ErrRunNotFound
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = &runEntry{data: data}
	return nil
}

// Get retrieves a run by ID.
func (s *RunStore) Get(ctx context.Context, id string) (*agent.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.runs[id]
	if !ok {
		return nil, agent.ErrRunNotFound
	}

	var r agent.Run
	if err := json.Unmarshal(entry.data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns all stored runs sorted by ID.
func (s *RunStore) List(ctx context.Context) ([]*agent.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	runs := make([]*agent.Run, 0, len(ids))
	for _, id := range ids {
		var r agent.Run
		if err := json.Unmarshal(s.runs[id].data, &r); err != nil {
			return nil, err
		}
		runs = append(runs, &r)
	}
	return runs, nil
}

// Delete removes a run by ID.
func (s *RunStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return agent.ErrRunNotFound
	}
	delete(s.runs, id)
	return nil
}

// Count returns the number of stored runs.
func (s *RunStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.runs)
}

// Ensure RunStore implements agent.Store
var _ agent.Store = (*RunStore)(nil)
