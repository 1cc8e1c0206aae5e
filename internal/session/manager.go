package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSessionManager implements SessionManager on top of a SessionStore
type DefaultSessionManager struct {
	store    SessionStore
	timeout  time.Duration
	onExpire func(*Session)
	logger   zerolog.Logger
}

// ManagerConfig contains configuration for the session manager
type ManagerConfig struct {
	SessionTimeout time.Duration

	// OnExpire, when set, is called for every session removed because it
	// expired.
	OnExpire func(*Session)
}

// NewDefaultSessionManager creates a new session manager
func NewDefaultSessionManager(store SessionStore, config ManagerConfig, logger zerolog.Logger) *DefaultSessionManager {
	return &DefaultSessionManager{
		store:    store,
		timeout:  config.SessionTimeout,
		onExpire: config.OnExpire,
		logger:   logger.With().Str("component", "session_manager").Logger(),
	}
}

// CreateSession generates a new session ID and stores it
func (m *DefaultSessionManager) CreateSession(ctx context.Context, clientInfo ClientInfo, protocolVersion string) (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		m.logger.Error().
			Err(err).
			Str("remote_addr", clientInfo.RemoteAddr).
			Msg("Failed to generate session ID")
		return nil, NewSessionGenerationError(err)
	}

	now := time.Now()
	session := &Session{
		ID:              id.String(),
		ProtocolVersion: protocolVersion,
		CreatedAt:       now,
		LastAccess:      now,
		ExpiresAt:       now.Add(m.timeout),
		ClientInfo:      clientInfo,
	}

	if err := m.store.Set(ctx, session.ID, session); err != nil {
		m.logger.Error().
			Err(err).
			Str("session_id", session.ID).
			Msg("Failed to store session")
		return nil, NewSessionStorageError("create", err)
	}

	m.logger.Info().
		Str("session_id", session.ID).
		Str("client", clientInfo.Name).
		Str("client_version", clientInfo.Version).
		Str("remote_addr", clientInfo.RemoteAddr).
		Time("expires_at", session.ExpiresAt).
		Msg("Session created")

	return session, nil
}

// ValidateSession checks if a session ID is valid and active. An expired
// session is removed as a side effect.
func (m *DefaultSessionManager) ValidateSession(ctx context.Context, sessionID string) (*Session, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, NewSessionInvalidError(sessionID, err)
	}

	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		m.logger.Debug().
			Str("session_id", sessionID).
			Err(err).
			Msg("Session not found in store")
		return nil, err
	}

	if session.IsExpired() {
		m.logger.Debug().
			Str("session_id", sessionID).
			Time("expires_at", session.ExpiresAt).
			Msg("Session has expired")
		m.expire(ctx, session)
		return nil, NewSessionExpiredError(sessionID)
	}

	return session, nil
}

// RefreshSession updates the last activity timestamp
func (m *DefaultSessionManager) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := m.ValidateSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.Refresh(m.timeout)
	if err := m.store.Set(ctx, sessionID, session); err != nil {
		m.logger.Error().
			Err(err).
			Str("session_id", sessionID).
			Msg("Failed to refresh session")
		return NewSessionStorageError("refresh", err)
	}
	return nil
}

// DeleteSession removes a session from the store
func (m *DefaultSessionManager) DeleteSession(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return err
	}

	m.logger.Info().
		Str("session_id", sessionID).
		Msg("Session deleted")
	return nil
}

// CleanupExpiredSessions removes all expired sessions
func (m *DefaultSessionManager) CleanupExpiredSessions(ctx context.Context) (int, error) {
	sessions, err := m.store.List(ctx)
	if err != nil {
		m.logger.Error().
			Err(err).
			Msg("Failed to list sessions for cleanup")
		return 0, NewSessionStorageError("cleanup_list", err)
	}

	deleted := 0
	for _, session := range sessions {
		if !session.IsExpired() {
			continue
		}
		if m.expire(ctx, session) {
			deleted++
		}
	}

	if deleted > 0 {
		m.logger.Info().
			Int("deleted_count", deleted).
			Int("total_sessions", len(sessions)).
			Msg("Cleanup completed")
	}
	return deleted, nil
}

// ListSessions returns every stored session
func (m *DefaultSessionManager) ListSessions(ctx context.Context) ([]*Session, error) {
	sessions, err := m.store.List(ctx)
	if err != nil {
		return nil, NewSessionStorageError("list", err)
	}
	return sessions, nil
}

// GetActiveSessionCount returns the number of unexpired sessions
func (m *DefaultSessionManager) GetActiveSessionCount(ctx context.Context) (int, error) {
	sessions, err := m.store.List(ctx)
	if err != nil {
		m.logger.Error().
			Err(err).
			Msg("Failed to get active session count")
		return 0, NewSessionStorageError("count", err)
	}

	active := 0
	for _, session := range sessions {
		if !session.IsExpired() {
			active++
		}
	}
	return active, nil
}

// expire deletes an expired session and reports whether it was removed.
// Losing a race against another delete is not an error.
func (m *DefaultSessionManager) expire(ctx context.Context, session *Session) bool {
	if err := m.store.Delete(ctx, session.ID); err != nil {
		m.logger.Debug().
			Err(err).
			Str("session_id", session.ID).
			Msg("Failed to delete expired session")
		return false
	}
	if m.onExpire != nil {
		m.onExpire(session)
	}
	return true
}
