package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and storeless deployments.
type MemoryStore struct {
	mu    sync.Mutex
	turns map[string][]Turn
	prefs map[string]Preferences
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		turns: make(map[string][]Turn),
		prefs: make(map[string]Preferences),
	}
}

// AppendTurn implements Store.
func (s *MemoryStore) AppendTurn(_ context.Context, conversationID string, turn Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns[conversationID] = append(s.turns[conversationID], turn)
	return nil
}

// Turns implements Store.
func (s *MemoryStore) Turns(_ context.Context, conversationID string, limit int) ([]Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.turns[conversationID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]Turn, len(all))
	copy(out, all)
	return out, nil
}

// SavePreferences implements Store.
func (s *MemoryStore) SavePreferences(_ context.Context, userID string, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = prefs
	return nil
}

// Preferences implements Store.
func (s *MemoryStore) Preferences(_ context.Context, userID string) (*Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, ok := s.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &prefs, nil
}

// Ensure MemoryStore implements the port at compile time.
var _ Store = (*MemoryStore)(nil)
