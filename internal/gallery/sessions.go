package gallery

// sessionGuard tracks which images each session has voted on. State is
// ephemeral: it lives for the process lifetime only and is never
// persisted, because voters have no durable identity. A person with two
// sessions can vote twice; that is an accepted limitation.
type sessionGuard struct {
	voted map[string]map[string]struct{}
}

func newSessionGuard() *sessionGuard {
	return &sessionGuard{voted: make(map[string]map[string]struct{})}
}

func (g *sessionGuard) hasVoted(sessionID, imageID string) bool {
	_, ok := g.voted[sessionID][imageID]
	return ok
}

// markVoted records a vote. Idempotent.
func (g *sessionGuard) markVoted(sessionID, imageID string) {
	set, ok := g.voted[sessionID]
	if !ok {
		set = make(map[string]struct{})
		g.voted[sessionID] = set
	}
	set[imageID] = struct{}{}
}

// reset clears one session's voted set.
func (g *sessionGuard) reset(sessionID string) {
	delete(g.voted, sessionID)
}

// resetAll clears every session. Image ids are never reused, so this is
// observationally the same as resetting each session on global reset,
// and it bounds guard memory.
func (g *sessionGuard) resetAll() {
	g.voted = make(map[string]map[string]struct{})
}
