package session

import (
	"context"
	"time"
)

// HeaderName is the HTTP header carrying the MCP session id.
const HeaderName = "Mcp-Session-Id"

// Session represents an initialized MCP client session
type Session struct {
	ID              string     `json:"id"`
	ProtocolVersion string     `json:"protocol_version,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	LastAccess      time.Time  `json:"last_access"`
	ExpiresAt       time.Time  `json:"expires_at"`
	ClientInfo      ClientInfo `json:"client_info"`
}

// ClientInfo describes the client that opened the session. Name and Version
// come from the initialize request, the rest from the HTTP request.
type ClientInfo struct {
	Name       string `json:"name,omitempty"`
	Version    string `json:"version,omitempty"`
	RemoteAddr string `json:"remote_addr"`
	UserAgent  string `json:"user_agent"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Refresh updates the last access time and extends expiration
func (s *Session) Refresh(timeout time.Duration) {
	now := time.Now()
	s.LastAccess = now
	s.ExpiresAt = now.Add(timeout)
}

// SessionManager defines the interface for session management operations
type SessionManager interface {
	// CreateSession generates a new session ID and stores it
	CreateSession(ctx context.Context, clientInfo ClientInfo, protocolVersion string) (*Session, error)

	// ValidateSession checks if a session ID is valid and active
	ValidateSession(ctx context.Context, sessionID string) (*Session, error)

	// RefreshSession updates the last activity timestamp
	RefreshSession(ctx context.Context, sessionID string) error

	// DeleteSession removes a session from the store
	DeleteSession(ctx context.Context, sessionID string) error

	// CleanupExpiredSessions removes all expired sessions
	CleanupExpiredSessions(ctx context.Context) (int, error)

	// ListSessions returns every stored session, expired ones included
	ListSessions(ctx context.Context) ([]*Session, error)

	// GetActiveSessionCount returns the number of active sessions
	GetActiveSessionCount(ctx context.Context) (int, error)
}

// SessionStore defines the interface for session storage operations
type SessionStore interface {
	Set(ctx context.Context, sessionID string, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error

	// List returns copies of all stored sessions
	List(ctx context.Context) ([]*Session, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
