package state

import (
	"context"
	"errors"
	"sync"
)

var ErrStateNotFound = errors.New("session state not found")

// Store is the persistence contract used by the orchestrator.
type Store interface {
	Load(ctx context.Context, sessionID string) (*SessionState, error)
	Save(ctx context.Context, st *SessionState) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStore keeps sessions in process memory. It is the default store
// for the CLI and for tests; nothing outlives the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*SessionState)}
}

func (m *MemoryStore) Load(ctx context.Context, sessionID string) (*SessionState, error) {
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrStateNotFound
	}
	return st.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, st *SessionState) error {
	if st == nil {
		return ErrNilSessionState
	}
	if err := st.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[st.SessionID] = st.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, sessionID)
	return nil
}
