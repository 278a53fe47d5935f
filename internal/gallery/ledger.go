package gallery

import "snapvote/internal/models"

// voteLedger is an O(1) id -> upvotes index derived from the record list.
// It is a read-optimized cache, never independently authoritative: the
// service rebuilds it whenever records are reloaded and keeps it equal to
// the persisted truth after every mutation.
type voteLedger struct {
	counts map[string]int
}

func newVoteLedger(records []models.ImageRecord) *voteLedger {
	l := &voteLedger{}
	l.rebuild(records)
	return l
}

// rebuild replaces the ledger with counts derived from records.
func (l *voteLedger) rebuild(records []models.ImageRecord) {
	counts := make(map[string]int, len(records))
	for _, rec := range records {
		counts[rec.ID] = rec.Upvotes
	}
	l.counts = counts
}

// get returns the current vote count, 0 for unknown ids.
func (l *voteLedger) get(id string) int {
	return l.counts[id]
}

// add registers a new image with zero votes.
func (l *voteLedger) add(id string) {
	l.counts[id] = 0
}

// increment bumps the count by one. Unknown ids are ignored; under
// correct use the service never increments an id it did not add.
func (l *voteLedger) increment(id string) {
	if _, ok := l.counts[id]; !ok {
		return
	}
	l.counts[id]++
}
