package janitor

import (
	"time"

	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// StateCounts is the per-state torrent census for the most recent cycle.
// Refreshed every cycle, never accumulated.
type StateCounts struct {
	Total       int `json:"total"`
	Downloading int `json:"downloading"`
	Seeding     int `json:"seeding"`
	Queued      int `json:"queued"`
	Stalled     int `json:"stalled"`
	Metadata    int `json:"metadata"`
	Errored     int `json:"errored"`
	Paused      int `json:"paused"`
}

// CountStates tallies a snapshot into a per-state census. A torrent counts
// toward the first bucket it matches, seeding before stalled so stalled
// uploads land with the seeders like the cycle report expects.
func CountStates(torrents []qbittorrent.Torrent) StateCounts {
	var counts StateCounts
	counts.Total = len(torrents)
	for i := range torrents {
		t := &torrents[i]
		switch {
		case t.IsDownloading():
			counts.Downloading++
		case t.IsSeeding():
			counts.Seeding++
		case t.IsQueued():
			counts.Queued++
		case t.IsStalled():
			counts.Stalled++
		case t.IsFetchingMetadata():
			counts.Metadata++
		case t.IsErrored():
			counts.Errored++
		case t.IsPaused():
			counts.Paused++
		}
	}
	return counts
}

// Statistics accumulates counters across cycles and sessions. Lifetime
// counters survive restarts through the state store; session counters reset
// when a new session starts. Append-only except for States, which is
// replaced each cycle. Written only by the orchestrator goroutine.
type Statistics struct {
	SessionStarted time.Time `json:"session_started"`

	TorrentsSeen    int64 `json:"torrents_seen"`
	CyclesCompleted int64 `json:"cycles_completed"`

	Removed    int64 `json:"removed"`
	BytesFreed int64 `json:"bytes_freed"`

	SessionRemoved    int64 `json:"session_removed"`
	SessionBytesFreed int64 `json:"session_bytes_freed"`

	RemovalFailures int64 `json:"removal_failures"`

	RemovedByReason map[Reason]int64 `json:"removed_by_reason"`

	States StateCounts `json:"states"`
}

// NewStatistics returns zeroed statistics with the session started at now.
func NewStatistics(now time.Time) *Statistics {
	return &Statistics{
		SessionStarted:  now,
		RemovedByReason: make(map[Reason]int64),
	}
}

// StartSession begins a new session: lifetime counters are kept, session
// counters reset.
func (s *Statistics) StartSession(now time.Time) {
	s.SessionStarted = now
	s.SessionRemoved = 0
	s.SessionBytesFreed = 0
	s.RemovalFailures = 0
	if s.RemovedByReason == nil {
		s.RemovedByReason = make(map[Reason]int64)
	}
}

// RecordCycle notes a completed cycle and refreshes the per-state census.
func (s *Statistics) RecordCycle(counts StateCounts) {
	s.CyclesCompleted++
	s.TorrentsSeen += int64(counts.Total)
	s.States = counts
}

// RecordRemoval accounts for one removed torrent. Dry runs record the same
// would-remove accounting, keeping their output a faithful preview.
func (s *Statistics) RecordRemoval(reason Reason, size int64) {
	s.Removed++
	s.SessionRemoved++
	s.BytesFreed += size
	s.SessionBytesFreed += size
	s.RemovedByReason[reason]++
}

// RecordRemovalFailure accounts for a removal attempt that failed.
func (s *Statistics) RecordRemovalFailure() {
	s.RemovalFailures++
}
