package server

import (
	"fmt"
	"net/http"
	"strings"

	"snapvote/internal/api"
	"snapvote/internal/auth"
)

const (
	confirmHeaderKey       = "X-Confirm"
	adminPasswordHeaderKey = "X-Admin-Password"
)

// handleAdminReset wipes all images, votes and session guards. The
// caller must confirm explicitly; when an admin password hash is
// configured the matching password is required as well.
func (s *Server) handleAdminReset(w http.ResponseWriter, r *http.Request) {
	if !strings.EqualFold(strings.TrimSpace(r.Header.Get(confirmHeaderKey)), "true") {
		err := badRequestCode(fmt.Errorf("reset requires %s: true", confirmHeaderKey), ErrCodeMissingRequired)
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	if s.opts.AdminPasswordHash != "" {
		if !auth.VerifyPassword(s.opts.AdminPasswordHash, r.Header.Get(adminPasswordHeaderKey)) {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("admin password mismatch")))
			return
		}
	}

	if err := s.service.Reset(r.Context()); err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, storeFailure(err))
		return
	}

	s.writeJSON(w, http.StatusOK, api.ResetResponse{Reset: true})
}
