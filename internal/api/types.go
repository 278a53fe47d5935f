package api

import (
	"snapvote/internal/gallery"
	"snapvote/internal/models"
)

// ImageResponse is the wire form of one image record.
type ImageResponse = models.ImageRecord

// VoteResponse carries the new count after a successful vote.
type VoteResponse struct {
	ID      string `json:"id"`
	Upvotes int    `json:"upvotes"`
}

// VotedResponse reports whether the calling session voted on an image.
type VotedResponse struct {
	ID    string `json:"id"`
	Voted bool   `json:"voted"`
}

// LeaderboardEntry mirrors gallery.LeaderboardEntry on the wire.
type LeaderboardEntry = gallery.LeaderboardEntry

// SessionResponse carries a freshly minted session id.
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// ExportResponse is the full persisted record list.
type ExportResponse struct {
	Records []models.ImageRecord `json:"records"`
}

// InfoResponse describes the running server.
type InfoResponse struct {
	DBPath        string `json:"db_path"`
	BlobRoot      string `json:"blob_root"`
	SchemaVersion int    `json:"schema_version"`
	ImageCount    int    `json:"image_count"`
	TotalVotes    int    `json:"total_votes"`
}

// ResetResponse confirms a completed reset.
type ResetResponse struct {
	Reset bool `json:"reset"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}
