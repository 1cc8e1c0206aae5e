package session

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

// SessionMiddleware validates the session header of MCP requests
type SessionMiddleware struct {
	manager SessionManager
	logger  zerolog.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(manager SessionManager, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		manager: manager,
		logger:  logger.With().Str("component", "session_middleware").Logger(),
	}
}

type sessionContextKey struct{}

// Handler returns the HTTP middleware. A request carrying a session header
// must name a live session, which is refreshed and attached to the request
// context. Requests without the header pass through untouched so that
// initialize can open a session; whether a session is mandatory for other
// methods is decided by the MCP handler.
func (m *SessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(HeaderName)
		if sessionID == "" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.manager.ValidateSession(r.Context(), sessionID)
		if err != nil {
			m.logger.Debug().
				Err(err).
				Str("session_id", sessionID).
				Str("path", r.URL.Path).
				Msg("Session validation failed")
			_ = render.Render(w, r, NewErrResponse(err, sessionID))
			return
		}

		if err := m.manager.RefreshSession(r.Context(), sessionID); err != nil {
			m.logger.Warn().
				Err(err).
				Str("session_id", sessionID).
				Msg("Failed to refresh session")
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves the session attached by the middleware
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// SessionInfo represents session information for responses
type SessionInfo struct {
	ID              string `json:"id"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
	ClientName      string `json:"client_name,omitempty"`
	ClientVersion   string `json:"client_version,omitempty"`
	CreatedAt       string `json:"created_at"`
	ExpiresAt       string `json:"expires_at"`
	Expired         bool   `json:"expired"`
	RemoteAddr      string `json:"remote_addr"`
	UserAgent       string `json:"user_agent"`
}

// GetSessionInfo extracts session information for API responses
func GetSessionInfo(session *Session) SessionInfo {
	return SessionInfo{
		ID:              session.ID,
		ProtocolVersion: session.ProtocolVersion,
		ClientName:      session.ClientInfo.Name,
		ClientVersion:   session.ClientInfo.Version,
		CreatedAt:       session.CreatedAt.Format(time.RFC3339),
		ExpiresAt:       session.ExpiresAt.Format(time.RFC3339),
		Expired:         session.IsExpired(),
		RemoteAddr:      session.ClientInfo.RemoteAddr,
		UserAgent:       session.ClientInfo.UserAgent,
	}
}

// ErrResponse is the JSON body of a failed session request
type ErrResponse struct {
	HTTPStatusCode int `json:"-"`

	Success bool      `json:"success"`
	Error   ErrDetail `json:"error"`
}

// ErrDetail describes what went wrong
type ErrDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// NewErrResponse builds the response for a session error
func NewErrResponse(err error, sessionID string) *ErrResponse {
	return &ErrResponse{
		HTTPStatusCode: StatusCode(err),
		Error: ErrDetail{
			Code:      ErrorCode(err),
			Message:   err.Error(),
			SessionID: sessionID,
		},
	}
}

// Render implements render.Renderer
func (e *ErrResponse) Render(_ http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}
