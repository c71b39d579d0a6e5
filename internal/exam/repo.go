package exam

import (
	"errors"
	"sync"
)

// ErrSessionNotFound is returned for lookups of unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists session state between calls. Sessions are
// self-contained values; Put replaces the stored copy wholesale.
type SessionStore interface {
	Put(s Session) error
	Get(id string) (Session, error)
	Delete(id string) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewInMemoryStore returns a SessionStore backed by a process-local map.
// Sessions are transient by design; durable progress goes through the
// progress store once an answer is recorded.
func NewInMemoryStore() SessionStore {
	return &memoryStore{sessions: map[string]Session{}}
}

func (m *memoryStore) Put(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s, nil
}

func (m *memoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
