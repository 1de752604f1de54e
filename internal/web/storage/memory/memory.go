// Package memory provides the in-memory session store used by tests and
// single-instance deployments without a configured storage path.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ministryofjustice/hmpps-contacts-ui-sub001/internal/web/storage"
)

// Store keeps session states in a process-local map.
type Store struct {
	mu     sync.Mutex
	states map[string]storage.SessionState
}

// NewStore builds an empty in-memory session store.
func NewStore() *Store {
	return &Store{states: make(map[string]storage.SessionState)}
}

// GetSessionState loads one session's journey state.
func (s *Store) GetSessionState(_ context.Context, sessionID string) (storage.SessionState, bool, error) {
	if s == nil {
		return storage.SessionState{}, false, fmt.Errorf("session store is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.SessionState{}, false, fmt.Errorf("session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[sessionID]
	return state, ok, nil
}

// PutSessionState upserts one session's journey state.
func (s *Store) PutSessionState(_ context.Context, state storage.SessionState) error {
	if s == nil {
		return fmt.Errorf("session store is not configured")
	}
	state.SessionID = strings.TrimSpace(state.SessionID)
	if state.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if state.UpdatedAt.IsZero() {
		state.UpdatedAt = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.SessionID] = state
	return nil
}

// DeleteSessionState removes one session's journey state.
func (s *Store) DeleteSessionState(_ context.Context, sessionID string) error {
	if s == nil {
		return fmt.Errorf("session store is not configured")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, strings.TrimSpace(sessionID))
	return nil
}

// Close releases nothing; it exists to satisfy the store contract.
func (s *Store) Close() error { return nil }
