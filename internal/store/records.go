package store

import (
	"context"
	"fmt"
	"time"

	"snapvote/internal/models"
)

// Load returns every image record in upload order. A freshly created
// database yields an empty list.
func (s *Store) Load(ctx context.Context) ([]models.ImageRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store is not open")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, upvotes, size_bytes, created_at
		FROM images
		ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ImageRecord
	for rows.Next() {
		var rec models.ImageRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.DisplayName, &rec.Upvotes, &rec.SizeBytes, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Save atomically replaces the stored record list with records. The whole
// list is rewritten in one transaction; the last successful save wins.
func (s *Store) Save(ctx context.Context, records []models.ImageRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store is not open")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM images"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO images (id, display_name, upvotes, size_bytes, created_at, position)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range records {
		if rec.Upvotes < 0 {
			return fmt.Errorf("record %s has negative upvotes", rec.ID)
		}
		createdAt := rec.CreatedAt.UTC().Format(time.RFC3339Nano)
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.DisplayName, rec.Upvotes, rec.SizeBytes, createdAt, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Wipe removes every record. Used by reset.
func (s *Store) Wipe(ctx context.Context) error {
	return s.Save(ctx, nil)
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("store is not open")
	}
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM images").Scan(&count)
	return count, err
}
