package janitor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// stateVersion is bumped when the on-disk layout changes. A record with an
// unknown version starts from empty state instead of aborting.
const stateVersion = 1

// persistedState is the single on-disk document holding both logical
// records. Writing them together keeps grace counts and statistics from
// ever committing half of one torrent's update.
type persistedState struct {
	Version    int         `json:"version"`
	SavedAt    time.Time   `json:"saved_at"`
	Grace      []Entry     `json:"grace"`
	Statistics *Statistics `json:"statistics"`
}

// Store persists the grace tracker and statistics as one JSON document,
// written atomically via a temp file and rename.
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a store at dir/file, creating dir if needed.
func NewStore(dir, file string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create work dir: %w", err)
	}
	return &Store{
		path:   filepath.Join(dir, file),
		logger: logger,
	}, nil
}

// Load reads the persisted state. A missing or corrupt file yields empty
// state and a warning, never an error: repeating a few grace cycles is
// cheaper than refusing to start.
func (s *Store) Load(now time.Time) ([]Entry, *Statistics) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("Could not read state file, starting fresh")
		}
		return nil, NewStatistics(now)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("State file is corrupt, starting fresh")
		return nil, NewStatistics(now)
	}

	if state.Version != stateVersion {
		s.logger.Warn().Int("version", state.Version).Msg("Unknown state file version, starting fresh")
		return nil, NewStatistics(now)
	}

	stats := state.Statistics
	if stats == nil {
		stats = NewStatistics(now)
	}
	stats.StartSession(now)

	return state.Grace, stats
}

// Save writes the grace entries and statistics atomically. A failure here
// is fatal for the cycle's commit; the caller should surface it.
func (s *Store) Save(entries []Entry, stats *Statistics, now time.Time) error {
	state := persistedState{
		Version:    stateVersion,
		SavedAt:    now,
		Grace:      entries,
		Statistics: stats,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to commit state file: %w", err)
	}

	return nil
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}
