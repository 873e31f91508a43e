package conversation

import (
	"context"
	"sync"
	"time"

	"bobbystable/models"
)

// SessionStore persists CallSession state between dialogue turns. A nil
// session from Get means the caller has no live session; the engine starts
// a fresh one at the greeting.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*models.CallSession, error)
	Set(ctx context.Context, session *models.CallSession) error
	Clear(ctx context.Context, sessionID string) error
}

// MemorySessionStore is the default single-process store: a TTL-expiring
// map. Sessions are exclusively owned by their call, so the lock only
// guards the map itself.
type MemorySessionStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	session   models.CallSession
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
	}
}

func (s *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.CallSession, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, nil
	}
	session := entry.session
	if entry.session.Draft != nil {
		draft := *entry.session.Draft
		session.Draft = &draft
	}
	return &session, nil
}

func (s *MemorySessionStore) Set(_ context.Context, session *models.CallSession) error {
	stored := *session
	if session.Draft != nil {
		draft := *session.Draft
		stored.Draft = &draft
	}
	s.mu.Lock()
	s.sessions[session.SessionID] = memoryEntry{
		session:   stored,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
