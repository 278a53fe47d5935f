package server

import (
	"net/http"

	"snapvote/internal/api"
)

func (s *Server) handleVote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	count, err := s.service.Vote(r.Context(), session, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, api.VoteResponse{ID: id, Upvotes: count})
}

func (s *Server) handleHasVoted(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathIDOrBadRequest(w, r)
	if !ok {
		return
	}
	session, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	s.writeJSON(w, http.StatusOK, api.VotedResponse{ID: id, Voted: s.service.HasVoted(session, id)})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryIntDefault(r, "limit", s.opts.LeaderboardSize)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, err)
		return
	}

	entries := s.service.Leaderboard(r.Context(), limit)
	if entries == nil {
		entries = []api.LeaderboardEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}
