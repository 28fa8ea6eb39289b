package qbittorrent

import (
	"testing"
	"time"
)

func TestTorrentStatePredicates(t *testing.T) {
	tests := []struct {
		state       State
		seeding     bool
		downloading bool
		stalled     bool
		errored     bool
		queued      bool
		metadata    bool
		paused      bool
	}{
		{state: StateUploading, seeding: true},
		{state: StateStalledUP, seeding: true, stalled: true},
		{state: StateQueuedUP, seeding: true},
		{state: StateForcedUP, seeding: true},
		{state: StateDownloading, downloading: true},
		{state: StateForcedDL, downloading: true},
		{state: StateStalledDL, stalled: true},
		{state: StateError, errored: true},
		{state: StateMissingFiles, errored: true},
		{state: StateQueuedDL, queued: true},
		{state: StateMetaDL, metadata: true},
		{state: StateForcedMetaDL, metadata: true},
		{state: StatePausedDL, paused: true},
		{state: StatePausedUP, paused: true},
		{state: StateStoppedDL, paused: true},
		{state: StateStoppedUP, paused: true},
		{state: StateCheckingDL},
		{state: StateMoving},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			tor := Torrent{State: tt.state}
			if got := tor.IsSeeding(); got != tt.seeding {
				t.Errorf("IsSeeding() = %v, want %v", got, tt.seeding)
			}
			if got := tor.IsDownloading(); got != tt.downloading {
				t.Errorf("IsDownloading() = %v, want %v", got, tt.downloading)
			}
			if got := tor.IsStalled(); got != tt.stalled {
				t.Errorf("IsStalled() = %v, want %v", got, tt.stalled)
			}
			if got := tor.IsErrored(); got != tt.errored {
				t.Errorf("IsErrored() = %v, want %v", got, tt.errored)
			}
			if got := tor.IsQueued(); got != tt.queued {
				t.Errorf("IsQueued() = %v, want %v", got, tt.queued)
			}
			if got := tor.IsFetchingMetadata(); got != tt.metadata {
				t.Errorf("IsFetchingMetadata() = %v, want %v", got, tt.metadata)
			}
			if got := tor.IsPaused(); got != tt.paused {
				t.Errorf("IsPaused() = %v, want %v", got, tt.paused)
			}
		})
	}
}

func TestTorrentAge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tor := Torrent{AddedOn: now.Add(-48 * time.Hour)}

	if got := tor.Age(now); got != 48*time.Hour {
		t.Errorf("Age() = %v, want %v", got, 48*time.Hour)
	}
}

func TestTorrentInactive(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tor := Torrent{
		AddedOn:      now.Add(-48 * time.Hour),
		LastActivity: now.Add(-2 * time.Hour),
	}
	if got := tor.Inactive(now); got != 2*time.Hour {
		t.Errorf("Inactive() = %v, want %v", got, 2*time.Hour)
	}

	// No recorded activity falls back to age.
	tor.LastActivity = time.Time{}
	if got := tor.Inactive(now); got != 48*time.Hour {
		t.Errorf("Inactive() without activity = %v, want %v", got, 48*time.Hour)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "keep", want: []string{"keep"}},
		{name: "multiple with spaces", in: "keep, cross-seed", want: []string{"keep", "cross-seed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("splitTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}
