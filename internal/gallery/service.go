package gallery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"snapvote/internal/blobstore"
	"snapvote/internal/models"
	"snapvote/internal/store"
)

// DefaultLeaderboardLimit is used when a caller asks for limit <= 0.
const DefaultLeaderboardLimit = 10

// LeaderboardEntry is one ranked row of the leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Votes       int    `json:"votes"`
}

// Service orchestrates uploads, votes, reset and ranking over the record
// store and blob store. It owns the in-memory record list, the derived
// vote ledger, and the per-session vote guard. Mutating operations hold
// the write lock across the whole read-modify-write-persist sequence;
// reads copy a consistent snapshot under the read lock.
type Service struct {
	records store.RecordStore
	blobs   blobstore.BlobStore
	logger  *slog.Logger

	mu       sync.RWMutex
	list     []models.ImageRecord
	ledger   *voteLedger
	sessions *sessionGuard
}

// New constructs a Service, loading current records from the store. The
// ledger is rebuilt from the loaded list so the two start in agreement.
func New(records store.RecordStore, blobs blobstore.BlobStore, logger *slog.Logger) (*Service, error) {
	if records == nil {
		return nil, fmt.Errorf("record store is required")
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	list, err := records.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	return &Service{
		records:  records,
		blobs:    blobs,
		logger:   logger,
		list:     list,
		ledger:   newVoteLedger(list),
		sessions: newSessionGuard(),
	}, nil
}

// Upload stores the image bytes and appends a new record with zero votes.
// If the bytes are stored but the metadata save fails, the blob is left
// orphaned and the error is surfaced; reset reclaims orphans.
func (s *Service) Upload(ctx context.Context, displayName string, r io.Reader) (models.ImageRecord, error) {
	var zero models.ImageRecord
	if r == nil {
		return zero, fmt.Errorf("image content is required")
	}
	name, err := models.NormalizeDisplayName(displayName)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = models.SequentialDisplayName(len(s.list) + 1)
	}

	id := store.NewImageID()
	size, err := s.blobs.Put(ctx, id, r)
	if err != nil {
		// A duplicate here would mean a uuid collision; log loudly
		// either way, the upload did not happen.
		s.logger.Error("store image bytes", "id", id, "error", err)
		return zero, fmt.Errorf("store image bytes: %w", err)
	}

	rec := models.ImageRecord{
		ID:          id,
		DisplayName: name,
		Upvotes:     0,
		SizeBytes:   size,
		CreatedAt:   time.Now().UTC(),
	}
	s.list = append(s.list, rec)
	s.ledger.add(id)

	if err := s.records.Save(ctx, s.list); err != nil {
		s.logger.Error("persist records after upload", "id", id, "error", err)
		return zero, fmt.Errorf("persist records: %w", err)
	}

	s.logger.Info("image uploaded", "id", id, "display_name", name, "size_bytes", size)
	return rec, nil
}

// Vote registers one vote from sessionID on image id and returns the new
// count. The in-memory count is updated optimistically: if the save
// fails the count is kept and the error surfaced, so a later reload may
// show the lower on-disk value.
func (s *Service) Vote(ctx context.Context, sessionID, id string) (int, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return 0, ErrSessionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions.hasVoted(sessionID, id) {
		return 0, ErrAlreadyVoted
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return 0, ErrNotFound
	}

	s.list[idx].Upvotes++
	s.ledger.increment(id)
	s.sessions.markVoted(sessionID, id)
	count := s.list[idx].Upvotes

	if err := s.records.Save(ctx, s.list); err != nil {
		s.logger.Error("persist records after vote", "id", id, "error", err)
		return count, fmt.Errorf("persist records: %w", err)
	}

	s.logger.Debug("vote recorded", "id", id, "upvotes", count)
	return count, nil
}

// HasVoted reports whether sessionID already voted on id.
func (s *Service) HasVoted(sessionID, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions.hasVoted(sessionID, id)
}

// Reset clears all images, votes, blobs and session guards.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.blobs.Clear(ctx); err != nil {
		return fmt.Errorf("clear blob store: %w", err)
	}
	if err := s.records.Wipe(ctx); err != nil {
		return fmt.Errorf("wipe record store: %w", err)
	}

	s.list = nil
	s.ledger.rebuild(nil)
	s.sessions.resetAll()

	s.logger.Info("gallery reset")
	return nil
}

// List returns a snapshot of all records, most recently uploaded first.
func (s *Service) List(ctx context.Context) []models.ImageRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ImageRecord, len(s.list))
	for i, rec := range s.list {
		out[len(s.list)-1-i] = rec
	}
	return out
}

// Get returns the record for id.
func (s *Service) Get(ctx context.Context, id string) (models.ImageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.ImageRecord{}, ErrNotFound
	}
	return s.list[idx], nil
}

// Votes returns the ledger count for id, 0 for unknown ids.
func (s *Service) Votes(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.get(id)
}

// OpenImage returns a reader over the stored bytes for id. A record whose
// blob is missing yields a typed error so callers can skip that one item
// and keep rendering the rest of the gallery.
func (s *Service) OpenImage(ctx context.Context, id string) (io.ReadCloser, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.blobs.Open(ctx, id)
}

// Leaderboard ranks records by votes descending, ties broken by upload
// order (earlier upload ranks higher). Recomputed fresh on every call.
func (s *Service) Leaderboard(ctx context.Context, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	s.mu.RLock()
	ranked := make([]models.ImageRecord, len(s.list))
	copy(ranked, s.list)
	s.mu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Upvotes > ranked[j].Upvotes
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, rec := range ranked {
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			ID:          rec.ID,
			DisplayName: rec.DisplayName,
			Votes:       rec.Upvotes,
		})
	}
	return entries
}

// Count returns the number of uploaded images.
func (s *Service) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// TotalVotes returns the sum of all vote counts.
func (s *Service) TotalVotes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, rec := range s.list {
		total += rec.Upvotes
	}
	return total
}

// indexOf must be called with at least the read lock held.
func (s *Service) indexOf(id string) int {
	for i, rec := range s.list {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
