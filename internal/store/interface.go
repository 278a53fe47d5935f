package store

import (
	"context"

	"snapvote/internal/models"
)

// RecordStore abstracts the persistent image record backend. Load must
// return an empty list for a fresh store; Save replaces the full list.
type RecordStore interface {
	Load(ctx context.Context) ([]models.ImageRecord, error)
	Save(ctx context.Context, records []models.ImageRecord) error
	Wipe(ctx context.Context) error
}

var _ RecordStore = (*Store)(nil)
