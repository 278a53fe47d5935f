package server

import (
	"net/http"

	"snapvote/internal/api"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info := api.InfoResponse{
		DBPath:     s.opts.DBPath,
		BlobRoot:   s.opts.BlobRoot,
		ImageCount: s.service.Count(),
		TotalVotes: s.service.TotalVotes(),
	}
	if s.records != nil {
		version, err := s.records.SchemaVersion()
		if err != nil {
			s.log().Warn("read schema version", "error", err)
		} else {
			info.SchemaVersion = version
		}
	}
	s.writeJSON(w, http.StatusOK, info)
}
