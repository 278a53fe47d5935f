package gallery

import "errors"

var (
	// ErrNotFound means no image record exists for the given id.
	ErrNotFound = errors.New("image not found")

	// ErrAlreadyVoted means the session has already voted on this image.
	// A rejected second vote is a normal outcome, not an exceptional one.
	ErrAlreadyVoted = errors.New("already voted")

	// ErrSessionRequired means a vote operation was called without a
	// session id. Session assignment is the serving layer's job.
	ErrSessionRequired = errors.New("session id is required")
)
