package repo

import (
	"context"
	"sync"

	"LeadBot/model"
)

// SessionStore is the process-wide owner of conversation sessions.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*model.Session, error)
	Create(ctx context.Context, s *model.Session) error
	Update(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, userID int64) error
	Len() int
}

// MemoryStore keeps sessions for the lifetime of the process. Sessions are
// copied on the way in and out, so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]*model.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]*model.Session)}
}

// Get returns model.ErrSessionNotFound when the user has no session.
func (m *MemoryStore) Get(ctx context.Context, userID int64) (*model.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Create stores s, replacing any session the user already had.
func (m *MemoryStore) Create(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = s.Clone()
	return nil
}

// Update overwrites an existing session.
func (m *MemoryStore) Update(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.UserID]; !ok {
		return model.ErrSessionNotFound
	}
	m.sessions[s.UserID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
