package memory

import (
	"sync"

	"quiz-game-app/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*app.Session
	newSession func(id string) *app.Session
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithFactory(app.NewSession)
}

// NewSessionStoreWithFactory lets tests control how sessions are built.
func NewSessionStoreWithFactory(newSession func(id string) *app.Session) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*app.Session),
		newSession: newSession,
	}
}

func (s *SessionStore) GetOrCreate(sessionID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[sessionID]; ok {
		return session
	}
	session := s.newSession(sessionID)
	s.sessions[sessionID] = session
	return session
}

func (s *SessionStore) Get(sessionID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	return session, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
