package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"snapvote/internal/api"
)

const (
	sessionHeaderKey  = "X-Session-ID"
	sessionCookieName = "snapvote_session"
	maxSessionIDLen   = 128
)

// sessionID extracts the caller's session id from the header or cookie.
// Session assignment itself is a serving-layer concern: browser clients
// get a cookie from POST /v1/sessions, API clients send the header.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(sessionHeaderKey)); id != "" && len(id) <= maxSessionIDLen {
		return id
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if id := strings.TrimSpace(cookie.Value); id != "" && len(id) <= maxSessionIDLen {
			return id
		}
	}
	return ""
}

func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := sessionID(r)
	if id == "" {
		err := badRequestCode(fmt.Errorf("session id is required (send %s or a %s cookie)", sessionHeaderKey, sessionCookieName), ErrCodeSessionRequired)
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return "", false
	}
	return id, true
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.writeJSON(w, http.StatusCreated, api.SessionResponse{SessionID: id})
}
