// Package memstore provides an in-memory scenario store.
//
// Useful for tests and single-process tools. All scenarios are deep
// copied on the way in and out so callers can never alias stored state.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// Store is a mutex-guarded in-memory types.Store implementation.
type Store struct {
	mu        sync.RWMutex
	scenarios map[string]*types.Scenario
}

// Compile-time assertion that Store implements types.Store.
var _ types.Store = (*Store)(nil)

// New creates an empty in-memory store.
//
// Returns:
//   - *Store: A new store instance
func New() *Store {
	return &Store{scenarios: make(map[string]*types.Scenario)}
}

// Get returns a deep copy of the scenario with the given id.
//
// Returns:
//   - *types.Scenario: Deep copy of the stored scenario
//   - error: types.ErrNotFound when absent
func (s *Store) Get(_ context.Context, id string) (*types.Scenario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scn, ok := s.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: scenario %q", types.ErrNotFound, id)
	}

	return scn.Clone(), nil
}

// Save creates or replaces the scenario unconditionally.
func (s *Store) Save(_ context.Context, scn *types.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scenarios[scn.ID] = scn.Clone()

	return nil
}

// Update replaces an existing scenario.
//
// Returns:
//   - error: types.ErrNotFound when the scenario has never been saved
func (s *Store) Update(_ context.Context, scn *types.Scenario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenarios[scn.ID]; !ok {
		return fmt.Errorf("%w: scenario %q", types.ErrNotFound, scn.ID)
	}
	s.scenarios[scn.ID] = scn.Clone()

	return nil
}

// Len returns the number of stored scenarios.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.scenarios)
}
