package telemetry

import (
	"context"
	"time"

	"web3-mcp/internal/session"
)

// SessionManagerWrapper wraps a session manager to add telemetry
type SessionManagerWrapper struct {
	session.SessionManager
	metrics *Metrics
}

// NewSessionManagerWrapper creates a new telemetry-aware session manager wrapper
func NewSessionManagerWrapper(manager session.SessionManager, metrics *Metrics) *SessionManagerWrapper {
	return &SessionManagerWrapper{
		SessionManager: manager,
		metrics:        metrics,
	}
}

// CreateSession wraps the underlying CreateSession to add telemetry
func (w *SessionManagerWrapper) CreateSession(ctx context.Context, clientInfo session.ClientInfo, protocolVersion string) (*session.Session, error) {
	sess, err := w.SessionManager.CreateSession(ctx, clientInfo, protocolVersion)
	if err == nil {
		w.metrics.RecordSessionCreated()
	}
	return sess, err
}

// DeleteSession wraps the underlying DeleteSession to add telemetry
func (w *SessionManagerWrapper) DeleteSession(ctx context.Context, sessionID string) error {
	// Look the session up first to know how long it lived
	sess, getErr := w.SessionManager.ValidateSession(ctx, sessionID)

	err := w.SessionManager.DeleteSession(ctx, sessionID)
	if err == nil && getErr == nil {
		w.metrics.RecordSessionDeleted(time.Since(sess.CreatedAt))
	}
	return err
}

// ExpiryRecorder returns a session.ManagerConfig OnExpire hook that records
// expirations.
func ExpiryRecorder(metrics *Metrics) func(*session.Session) {
	return func(s *session.Session) {
		metrics.RecordSessionExpired(time.Since(s.CreatedAt))
	}
}
