package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"snapvote/internal/blobstore"
	"snapvote/internal/models"
	"snapvote/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "snapvote.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	blobs, err := blobstore.NewLocalDir(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatalf("new blob store: %v", err)
	}

	svc, err := New(st, blobs, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func mustUpload(t *testing.T, svc *Service, name, content string) models.ImageRecord {
	t.Helper()
	rec, err := svc.Upload(context.Background(), name, strings.NewReader(content))
	if err != nil {
		t.Fatalf("upload %q: %v", name, err)
	}
	return rec
}

func mustVote(t *testing.T, svc *Service, session, id string) int {
	t.Helper()
	count, err := svc.Vote(context.Background(), session, id)
	if err != nil {
		t.Fatalf("vote on %s from %s: %v", id, session, err)
	}
	return count
}

func TestUploadAssignsUniqueIDsAndSequentialNames(t *testing.T) {
	svc := newTestService(t)

	const n = 12
	seen := make(map[string]struct{})
	for i := 0; i < n; i++ {
		rec := mustUpload(t, svc, "", fmt.Sprintf("payload-%d", i))
		if _, dup := seen[rec.ID]; dup {
			t.Fatalf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = struct{}{}
		want := fmt.Sprintf("Image %d", i+1)
		if rec.DisplayName != want {
			t.Fatalf("expected default name %q, got %q", want, rec.DisplayName)
		}
	}

	if got := svc.Count(); got != n {
		t.Fatalf("expected %d records, got %d", n, got)
	}
	if got := len(svc.Leaderboard(context.Background(), n+5)); got != n {
		t.Fatalf("expected %d leaderboard entries, got %d", n, got)
	}
	if got := len(svc.Leaderboard(context.Background(), 3)); got != 3 {
		t.Fatalf("expected leaderboard truncated to 3, got %d", got)
	}
}

func TestUploadExplicitNameKept(t *testing.T) {
	svc := newTestService(t)

	rec := mustUpload(t, svc, "  Cat  ", "meow")
	if rec.DisplayName != "Cat" {
		t.Fatalf("expected trimmed explicit name, got %q", rec.DisplayName)
	}
	if rec.Upvotes != 0 {
		t.Fatalf("new upload must start at 0 votes, got %d", rec.Upvotes)
	}
}

func TestUploadRejectsOverlongName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), strings.Repeat("x", models.MaxDisplayNameLength+1), strings.NewReader("data"))
	if err == nil {
		t.Fatal("expected error for overlong display name")
	}
}

func TestVoteOncePerSession(t *testing.T) {
	svc := newTestService(t)
	rec := mustUpload(t, svc, "", "pixels")

	count := mustVote(t, svc, "session-a", rec.ID)
	if count != 1 {
		t.Fatalf("first vote should return 1, got %d", count)
	}

	_, err := svc.Vote(context.Background(), "session-a", rec.ID)
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if got := svc.Votes(rec.ID); got != 1 {
		t.Fatalf("count must be unchanged after rejected vote, got %d", got)
	}
}

func TestVoteFromDistinctSessions(t *testing.T) {
	svc := newTestService(t)
	rec := mustUpload(t, svc, "", "pixels")

	mustVote(t, svc, "session-a", rec.ID)
	count := mustVote(t, svc, "session-b", rec.ID)
	if count != 2 {
		t.Fatalf("two sessions should reach 2 votes, got %d", count)
	}
}

func TestVoteUnknownImage(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Vote(context.Background(), "session-a", "img_nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVoteRequiresSession(t *testing.T) {
	svc := newTestService(t)
	rec := mustUpload(t, svc, "", "pixels")

	_, err := svc.Vote(context.Background(), "  ", rec.ID)
	if !errors.Is(err, ErrSessionRequired) {
		t.Fatalf("expected ErrSessionRequired, got %v", err)
	}
}

func TestLedgerMatchesRecordsAfterMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := mustUpload(t, svc, "", "a")
	b := mustUpload(t, svc, "", "b")
	mustVote(t, svc, "s1", a.ID)
	mustVote(t, svc, "s2", a.ID)
	mustVote(t, svc, "s1", b.ID)

	for _, rec := range svc.List(ctx) {
		if got := svc.Votes(rec.ID); got != rec.Upvotes {
			t.Fatalf("ledger drift for %s: ledger=%d record=%d", rec.ID, got, rec.Upvotes)
		}
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Uploads A,B,C,D end up with votes [3,1,3,0]; the tie between A and
	// C must resolve by upload order: A, C, B, D.
	a := mustUpload(t, svc, "A", "a")
	b := mustUpload(t, svc, "B", "b")
	c := mustUpload(t, svc, "C", "c")
	mustUpload(t, svc, "D", "d")

	for _, session := range []string{"s1", "s2", "s3"} {
		mustVote(t, svc, session, a.ID)
		mustVote(t, svc, session, c.ID)
	}
	mustVote(t, svc, "s1", b.ID)

	entries := svc.Leaderboard(ctx, 10)
	wantNames := []string{"A", "C", "B", "D"}
	wantVotes := []int{3, 3, 1, 0}
	if len(entries) != len(wantNames) {
		t.Fatalf("expected %d entries, got %d", len(wantNames), len(entries))
	}
	for i, entry := range entries {
		if entry.DisplayName != wantNames[i] || entry.Votes != wantVotes[i] || entry.Rank != i+1 {
			t.Fatalf("entry %d = %+v, want name=%s votes=%d rank=%d", i, entry, wantNames[i], wantVotes[i], i+1)
		}
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t)

	first := mustUpload(t, svc, "first", "1")
	second := mustUpload(t, svc, "second", "2")

	list := svc.List(context.Background())
	if len(list) != 2 {
		t.Fatalf("expected 2 records, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %v then %v", list[0].DisplayName, list[1].DisplayName)
	}
}

func TestResetClearsEverything(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := mustUpload(t, svc, "", "pixels")
	mustVote(t, svc, "session-a", rec.ID)

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if got := len(svc.List(ctx)); got != 0 {
		t.Fatalf("expected empty gallery after reset, got %d", got)
	}
	if got := len(svc.Leaderboard(ctx, 10)); got != 0 {
		t.Fatalf("expected empty leaderboard after reset, got %d", got)
	}
	if _, err := svc.OpenImage(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected blob gone after reset, got %v", err)
	}

	// Numbering restarts and the old session can vote again on the new
	// image carrying the same displayed name.
	fresh := mustUpload(t, svc, "", "new pixels")
	if fresh.DisplayName != "Image 1" {
		t.Fatalf("numbering should restart at 1, got %q", fresh.DisplayName)
	}
	if count := mustVote(t, svc, "session-a", fresh.ID); count != 1 {
		t.Fatalf("expected re-vote to succeed with count 1, got %d", count)
	}
}

func TestOpenImageRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := mustUpload(t, svc, "", "raw image bytes")
	rc, err := svc.OpenImage(ctx, rec.ID)
	if err != nil {
		t.Fatalf("open image: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read image: %v", err)
	}
	if !bytes.Equal(data, []byte("raw image bytes")) {
		t.Fatalf("unexpected content %q", string(data))
	}
	if rec.SizeBytes != int64(len(data)) {
		t.Fatalf("recorded size %d != content size %d", rec.SizeBytes, len(data))
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "snapvote.db")
	blobRoot := filepath.Join(dir, "uploads")
	ctx := context.Background()

	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	blobs, err := blobstore.NewLocalDir(blobRoot)
	if err != nil {
		t.Fatalf("new blob store: %v", err)
	}
	svc, err := New(st, blobs, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	rec, err := svc.Upload(ctx, "Keeper", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if _, err := svc.Vote(ctx, "s1", rec.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	st2, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()
	svc2, err := New(st2, blobs, nil)
	if err != nil {
		t.Fatalf("new service after restart: %v", err)
	}

	got, err := svc2.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get after restart: %v", err)
	}
	if got.Upvotes != 1 || got.DisplayName != "Keeper" {
		t.Fatalf("state lost across restart: %+v", got)
	}
	// Session guards are ephemeral, so the same session may vote again
	// after a restart.
	if count, err := svc2.Vote(ctx, "s1", rec.ID); err != nil || count != 2 {
		t.Fatalf("expected re-vote after restart to reach 2, got count=%d err=%v", count, err)
	}
}

func TestConcurrentVotesDoNotLoseIncrements(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	rec := mustUpload(t, svc, "", "pixels")

	const voters = 20
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		go func(i int) {
			_, err := svc.Vote(ctx, fmt.Sprintf("session-%d", i), rec.ID)
			errs <- err
		}(i)
	}
	for i := 0; i < voters; i++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent vote: %v", err)
		}
	}

	if got := svc.Votes(rec.ID); got != voters {
		t.Fatalf("expected %d votes, got %d", voters, got)
	}
}
