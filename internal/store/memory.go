package store

import (
	"sync"
	"time"

	"github.com/avoronin/interviewd/internal/domain"
)

// MemoryStore keeps sessions in a mutex-guarded map. Sessions do not survive
// process restarts; idle entries are reclaimed by the TTL worker.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*domain.Session)}
}

// Put stores a session under its id.
func (s *MemoryStore) Put(session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

// Get returns the session for the given id, or ErrNotFound.
func (s *MemoryStore) Get(id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return session, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Expired returns the ids of sessions idle for longer than ttl.
func (s *MemoryStore) Expired(ttl time.Duration) []string {
	cutoff := time.Now().Add(-ttl)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []string
	for id, session := range s.sessions {
		// Read through the session lock: a submission may be touching the
		// timestamp concurrently.
		if session.LastActive().Before(cutoff) {
			expired = append(expired, id)
		}
	}
	return expired
}

// Clear removes all sessions.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*domain.Session)
}
