package store

import (
	"strings"

	"github.com/google/uuid"
)

const imageIDPrefix = "img_"

// NewImageID returns a fresh globally unique image id. Ids are never
// reused; a collision downstream is an invariant violation, not a retry.
func NewImageID() string {
	return imageIDPrefix + uuid.NewString()
}

// ValidImageID reports whether id looks like an id produced by NewImageID.
func ValidImageID(id string) bool {
	if !strings.HasPrefix(id, imageIDPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(id, imageIDPrefix))
	return err == nil
}
