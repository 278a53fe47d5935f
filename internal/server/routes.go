package server

import (
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check and info.
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /v1/info", s.handleInfo)

	// Sessions.
	mux.HandleFunc("POST /v1/sessions", s.handleNewSession)

	// Images collection.
	mux.HandleFunc("POST /v1/images", s.handleUpload)
	mux.HandleFunc("GET /v1/images", s.handleListImages)

	// Single image.
	mux.HandleFunc("GET /v1/images/{id}", s.handleGetImage)
	mux.HandleFunc("GET /v1/images/{id}/content", s.handleImageContent)

	// Voting.
	mux.HandleFunc("POST /v1/images/{id}/vote", s.handleVote)
	mux.HandleFunc("GET /v1/images/{id}/voted", s.handleHasVoted)

	// Ranking and export.
	mux.HandleFunc("GET /v1/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /v1/export", s.handleExport)

	// Admin.
	mux.HandleFunc("POST /v1/admin/reset", s.handleAdminReset)

	return mux
}
