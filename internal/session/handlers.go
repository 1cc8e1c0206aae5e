package session

import (
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"
)

// SessionHandler handles HTTP endpoints for session management
type SessionHandler struct {
	manager SessionManager
	logger  zerolog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager SessionManager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger.With().Str("component", "session_handler").Logger(),
	}
}

// Routes mounts the session endpoints:
//
//	GET    /      list sessions
//	GET    /{id}  session status
//	DELETE /{id}  terminate a session
func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListSessions)
	r.Get("/{sessionID}", h.GetSession)
	r.Delete("/{sessionID}", h.DeleteSession)
	return r
}

// SessionListResponse is the body of GET /sessions
type SessionListResponse struct {
	Success  bool          `json:"success"`
	Active   int           `json:"active"`
	Sessions []SessionInfo `json:"sessions"`
}

// SessionStatusResponse represents the response for session status
type SessionStatusResponse struct {
	Success bool        `json:"success"`
	Session SessionInfo `json:"session"`
	Message string      `json:"message"`
}

// ListSessions handles GET /sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.manager.ListSessions(r.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("Failed to list sessions")
		_ = render.Render(w, r, NewErrResponse(err, ""))
		return
	}

	slices.SortFunc(sessions, func(a, b *Session) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	resp := SessionListResponse{Success: true, Sessions: make([]SessionInfo, 0, len(sessions))}
	for _, s := range sessions {
		info := GetSessionInfo(s)
		if !info.Expired {
			resp.Active++
		}
		resp.Sessions = append(resp.Sessions, info)
	}
	render.JSON(w, r, resp)
}

// GetSession handles GET /sessions/{sessionID}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))

	session, err := h.manager.ValidateSession(r.Context(), sessionID)
	if err != nil {
		h.logger.Debug().
			Err(err).
			Str("session_id", sessionID).
			Msg("Session status lookup failed")
		_ = render.Render(w, r, NewErrResponse(err, sessionID))
		return
	}

	render.JSON(w, r, SessionStatusResponse{
		Success: true,
		Session: GetSessionInfo(session),
		Message: "Session is active",
	})
}

// DeleteSession handles DELETE /sessions/{sessionID}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "sessionID"))

	if err := h.manager.DeleteSession(r.Context(), sessionID); err != nil {
		h.logger.Debug().
			Err(err).
			Str("session_id", sessionID).
			Msg("Session deletion failed")
		_ = render.Render(w, r, NewErrResponse(err, sessionID))
		return
	}

	h.logger.Info().
		Str("session_id", sessionID).
		Str("remote_addr", r.RemoteAddr).
		Msg("Session terminated")

	render.JSON(w, r, map[string]any{
		"success":    true,
		"message":    "Session deleted successfully",
		"session_id": sessionID,
	})
}
