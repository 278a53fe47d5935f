package gallery

import (
	"testing"

	"snapvote/internal/models"
)

func TestVoteLedgerRebuildAndGet(t *testing.T) {
	l := newVoteLedger([]models.ImageRecord{
		{ID: "img_a", Upvotes: 3},
		{ID: "img_b", Upvotes: 0},
	})

	if got := l.get("img_a"); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
	if got := l.get("img_unknown"); got != 0 {
		t.Fatalf("unknown id must read 0, got %d", got)
	}

	l.rebuild(nil)
	if got := l.get("img_a"); got != 0 {
		t.Fatalf("expected 0 after empty rebuild, got %d", got)
	}
}

func TestVoteLedgerIncrement(t *testing.T) {
	l := newVoteLedger(nil)
	l.add("img_a")

	l.increment("img_a")
	l.increment("img_a")
	if got := l.get("img_a"); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	// Incrementing an unknown id is a no-op.
	l.increment("img_ghost")
	if got := l.get("img_ghost"); got != 0 {
		t.Fatalf("unknown id must stay 0, got %d", got)
	}
}

func TestSessionGuard(t *testing.T) {
	g := newSessionGuard()

	if g.hasVoted("s1", "img_a") {
		t.Fatal("fresh guard must report not voted")
	}
	g.markVoted("s1", "img_a")
	g.markVoted("s1", "img_a") // idempotent
	if !g.hasVoted("s1", "img_a") {
		t.Fatal("expected voted after mark")
	}
	if g.hasVoted("s2", "img_a") {
		t.Fatal("sessions must be independent")
	}

	g.reset("s1")
	if g.hasVoted("s1", "img_a") {
		t.Fatal("expected cleared after reset")
	}

	g.markVoted("s1", "img_a")
	g.markVoted("s2", "img_b")
	g.resetAll()
	if g.hasVoted("s1", "img_a") || g.hasVoted("s2", "img_b") {
		t.Fatal("expected all sessions cleared")
	}
}
