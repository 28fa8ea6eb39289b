package qbittorrent

import "time"

// State is the lifecycle state reported by qBittorrent for a torrent.
type State string

// Known qBittorrent torrent states.
const (
	StateError              State = "error"
	StateMissingFiles       State = "missingFiles"
	StateUploading          State = "uploading"
	StatePausedUP           State = "pausedUP"
	StateStoppedUP          State = "stoppedUP"
	StateQueuedUP           State = "queuedUP"
	StateStalledUP          State = "stalledUP"
	StateCheckingUP         State = "checkingUP"
	StateForcedUP           State = "forcedUP"
	StateAllocating         State = "allocating"
	StateDownloading        State = "downloading"
	StateMetaDL             State = "metaDL"
	StateForcedMetaDL       State = "forcedMetaDL"
	StatePausedDL           State = "pausedDL"
	StateStoppedDL          State = "stoppedDL"
	StateQueuedDL           State = "queuedDL"
	StateStalledDL          State = "stalledDL"
	StateCheckingDL         State = "checkingDL"
	StateForcedDL           State = "forcedDL"
	StateCheckingResumeData State = "checkingResumeData"
	StateMoving             State = "moving"
	StateUnknown            State = "unknown"
)

// Torrent is a point-in-time snapshot of a single torrent. It is built once
// per cycle from the qBittorrent API response and is read-only afterwards.
type Torrent struct {
	Hash         string
	Name         string
	State        State
	Size         int64
	Progress     float64 // 0.0 - 1.0
	DlSpeed      int64   // bytes/s
	Ratio        float64
	NumSeeds     int64
	AddedOn      time.Time
	LastActivity time.Time
	Category     string
	Tags         []string
	Tracker      string
	Private      bool
}

// Age returns how long ago the torrent was added.
func (t *Torrent) Age(now time.Time) time.Duration {
	return now.Sub(t.AddedOn)
}

// Inactive returns the time since the torrent last saw any transfer activity.
func (t *Torrent) Inactive(now time.Time) time.Duration {
	if t.LastActivity.IsZero() {
		return t.Age(now)
	}
	return now.Sub(t.LastActivity)
}

// IsSeeding reports whether the torrent is in a seeding state.
func (t *Torrent) IsSeeding() bool {
	switch t.State {
	case StateUploading, StateStalledUP, StateQueuedUP, StateForcedUP:
		return true
	}
	return false
}

// IsDownloading reports whether the torrent is actively downloading.
func (t *Torrent) IsDownloading() bool {
	return t.State == StateDownloading || t.State == StateForcedDL
}

// IsStalled reports whether qBittorrent considers the torrent stalled.
func (t *Torrent) IsStalled() bool {
	return t.State == StateStalledDL || t.State == StateStalledUP
}

// IsErrored reports whether the torrent is in an error state or has lost
// its payload on disk.
func (t *Torrent) IsErrored() bool {
	return t.State == StateError || t.State == StateMissingFiles
}

// IsQueued reports whether the torrent is waiting in the download queue.
func (t *Torrent) IsQueued() bool {
	return t.State == StateQueuedDL
}

// IsFetchingMetadata reports whether the torrent is still resolving its
// metadata (magnet links that have not located peers yet).
func (t *Torrent) IsFetchingMetadata() bool {
	return t.State == StateMetaDL || t.State == StateForcedMetaDL
}

// IsPaused reports whether the torrent is paused or stopped.
func (t *Torrent) IsPaused() bool {
	switch t.State {
	case StatePausedDL, StatePausedUP, StateStoppedDL, StateStoppedUP:
		return true
	}
	return false
}
