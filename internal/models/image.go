package models

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxDisplayNameLength bounds user-supplied image names.
	MaxDisplayNameLength = 120
)

// ImageRecord is the persisted metadata for one uploaded image.
// The raw bytes live in the blob store under the same ID.
type ImageRecord struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Upvotes     int       `json:"upvotes"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

// NormalizeDisplayName trims a user-supplied name and validates its length.
// An empty result means the caller should fall back to a sequential name.
func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if len(name) > MaxDisplayNameLength {
		return "", fmt.Errorf("display name too long (max %d characters)", MaxDisplayNameLength)
	}
	return name, nil
}

// SequentialDisplayName returns the default name for the n-th upload (1-based).
func SequentialDisplayName(n int) string {
	return fmt.Sprintf("Image %d", n)
}
