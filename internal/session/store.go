package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// MemoryStore implements SessionStore using in-memory storage. Sessions are
// copied on the way in and out so callers never share a stored value.
type MemoryStore struct {
	sessions map[string]Session
	mutex    sync.RWMutex
	logger   zerolog.Logger
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore(logger zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		logger:   logger.With().Str("component", "memory_store").Logger(),
	}
}

// Set stores a session with expiration
func (s *MemoryStore) Set(_ context.Context, sessionID string, session *Session) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.logger.Debug().
		Str("session_id", sessionID).
		Time("expires_at", session.ExpiresAt).
		Msg("Storing session")

	s.sessions[sessionID] = *session
	return nil
}

// Get retrieves a session by ID
func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, NewSessionNotFoundError(sessionID)
	}
	return &session, nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return NewSessionNotFoundError(sessionID)
	}

	delete(s.sessions, sessionID)
	s.logger.Debug().
		Str("session_id", sessionID).
		Msg("Session deleted")
	return nil
}

// List returns all stored sessions
func (s *MemoryStore) List(_ context.Context) ([]*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

// Count returns the number of stored sessions
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions), nil
}

// Close cleans up resources
func (s *MemoryStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sessionCount := len(s.sessions)
	s.sessions = make(map[string]Session)

	s.logger.Info().
		Int("cleared_sessions", sessionCount).
		Msg("Memory store closed and cleared")
	return nil
}
