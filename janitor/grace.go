package janitor

import (
	"time"

	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// Entry is the persisted grace state for one torrent. A hash with no entry
// is equivalent to a count of zero.
type Entry struct {
	Hash      string    `json:"hash"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	Reason    Reason    `json:"reason"`
	FirstSeen time.Time `json:"first_seen"`
	LastCheck time.Time `json:"last_check"`
}

// Tracker turns repeated removal candidates into removal verdicts. A torrent
// must report the same reason for graceChecks consecutive cycles before it
// is removed; any cycle that reports Keep, Protected or a different reason
// resets the count. Not safe for concurrent use; the orchestrator admits
// torrents one at a time.
type Tracker struct {
	entries map[string]*Entry
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[string]*Entry)}
}

// Admit converts a classification into this cycle's verdict and updates the
// grace state for the torrent.
//
// A Remove verdict does not clear the entry: the orchestrator forgets the
// hash only after the removal action succeeds, so a failed removal is
// re-attempted next cycle with grace already exhausted.
func (tr *Tracker) Admit(t *qbittorrent.Torrent, cl Classification, graceChecks int, now time.Time) Verdict {
	switch cl.Class {
	case ClassKeep:
		delete(tr.entries, t.Hash)
		return Verdict{Kind: VerdictKeep}

	case ClassProtected:
		delete(tr.entries, t.Hash)
		return Verdict{Kind: VerdictProtected, Protection: cl.Protection}
	}

	// Operator intent, not a transient symptom: no grace, no state.
	if cl.Reason == ReasonAutoCategory {
		return Verdict{Kind: VerdictRemove, Reason: cl.Reason, Checks: 1}
	}

	entry, ok := tr.entries[t.Hash]
	if !ok || entry.Reason != cl.Reason {
		// First sighting, or the failure mode changed. A torrent that
		// flips between reasons never accumulates grace for either.
		entry = &Entry{
			Hash:      t.Hash,
			Name:      t.Name,
			Count:     1,
			Reason:    cl.Reason,
			FirstSeen: now,
		}
		tr.entries[t.Hash] = entry
	} else {
		entry.Count++
	}
	entry.LastCheck = now

	if entry.Count >= graceChecks {
		return Verdict{Kind: VerdictRemove, Reason: cl.Reason, Checks: entry.Count}
	}

	return Verdict{Kind: VerdictPending, Reason: cl.Reason, Checks: entry.Count}
}

// Forget drops the grace state for a hash after a successful removal.
func (tr *Tracker) Forget(hash string) {
	delete(tr.entries, hash)
}

// Prune removes entries for torrents no longer present in the snapshot,
// returning how many were dropped. Run at the end of each cycle.
func (tr *Tracker) Prune(present map[string]struct{}) int {
	var dropped int
	for hash := range tr.entries {
		if _, ok := present[hash]; !ok {
			delete(tr.entries, hash)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of torrents currently under grace monitoring.
func (tr *Tracker) Len() int {
	return len(tr.entries)
}

// Entries returns a copy of the grace state, ordered arbitrarily, for
// persistence.
func (tr *Tracker) Entries() []Entry {
	out := make([]Entry, 0, len(tr.entries))
	for _, e := range tr.entries {
		out = append(out, *e)
	}
	return out
}

// Restore replaces the tracker state with previously persisted entries.
func (tr *Tracker) Restore(entries []Entry) {
	tr.entries = make(map[string]*Entry, len(entries))
	for _, e := range entries {
		entry := e
		tr.entries[entry.Hash] = &entry
	}
}
