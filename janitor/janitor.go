package janitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/torrentjanitor/config"
	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// classifyConcurrency bounds the parallel per-torrent classification.
const classifyConcurrency = 8

// TorrentClient is the slice of the qBittorrent client the janitor needs.
type TorrentClient interface {
	FetchTorrents(ctx context.Context) ([]qbittorrent.Torrent, error)
	RemoveTorrent(ctx context.Context, hash string, deleteFiles bool) error
	Reannounce(ctx context.Context, hashes []string) error
}

// QueueProtector supplies torrent hashes that must not be removed because
// another system still manages them.
type QueueProtector interface {
	ProtectedHashes(ctx context.Context) (map[string]struct{}, error)
}

// Janitor drives the cleanup cycles: fetch, classify, admit through grace,
// remove, account, persist.
type Janitor struct {
	client    TorrentClient
	protector QueueProtector
	evaluator *Evaluator
	tracker   *Tracker
	stats     *Statistics
	store     *Store
	logger    zerolog.Logger

	graceChecks int
	interval    time.Duration
	dryRun      bool
	deleteFiles bool
	reannounce  bool
	healthPath  string

	now func() time.Time
}

// New builds a Janitor from configuration, compiling the protection filter
// and loading persisted grace and statistics state.
func New(cfg *config.Config, client TorrentClient, logger zerolog.Logger) (*Janitor, error) {
	evaluator, err := NewEvaluator(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := NewStore(cfg.Paths.WorkDir, cfg.Paths.StateFile, logger)
	if err != nil {
		return nil, err
	}

	j := &Janitor{
		client:      client,
		evaluator:   evaluator,
		tracker:     NewTracker(),
		store:       store,
		logger:      logger,
		graceChecks: cfg.Thresholds.GraceChecks,
		interval:    cfg.Thresholds.Interval(),
		dryRun:      cfg.Safety.DryRun,
		deleteFiles: cfg.Safety.DeleteFiles,
		reannounce:  cfg.Safety.Reannounce,
		healthPath:  filepath.Join(cfg.Paths.WorkDir, cfg.Paths.HealthFile),
		now:         time.Now,
	}

	entries, stats := store.Load(j.now())
	j.tracker.Restore(entries)
	j.stats = stats

	return j, nil
}

// SetQueueProtector installs an optional protector consulted each cycle.
func (j *Janitor) SetQueueProtector(p QueueProtector) {
	j.protector = p
}

// Statistics returns the running counters. Read-only for reporting; only
// the cycle goroutine writes them.
func (j *Janitor) Statistics() *Statistics {
	return j.stats
}

// Monitored returns how many torrents currently carry grace state.
func (j *Janitor) Monitored() int {
	return j.tracker.Len()
}

type removal struct {
	torrent qbittorrent.Torrent
	verdict Verdict
}

// RunCycle executes one full cleanup cycle. A fetch failure skips the cycle
// and is reported as qbittorrent.ErrSourceUnavailable; the caller retries
// at the next interval. A persistence failure is fatal for this cycle's
// commit and is returned as-is.
func (j *Janitor) RunCycle(ctx context.Context) error {
	now := j.now()

	torrents, err := j.client.FetchTorrents(ctx)
	if err != nil {
		return err
	}

	arrManaged := j.protectedHashes(ctx)

	// Classification is pure and has no cross-torrent dependency, so it
	// runs in parallel. Everything that mutates shared state happens
	// serially below.
	classifications := make([]Classification, len(torrents))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyConcurrency)
	for i := range torrents {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			classifications[i] = j.evaluator.Classify(&torrents[i], now, arrManaged)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Single-writer: grace state and the removal list are updated by this
	// goroutine only.
	var removals []removal
	present := make(map[string]struct{}, len(torrents))
	for i := range torrents {
		if err := ctx.Err(); err != nil {
			return err
		}

		t := &torrents[i]
		present[t.Hash] = struct{}{}

		verdict := j.tracker.Admit(t, classifications[i], j.graceChecks, now)
		switch verdict.Kind {
		case VerdictProtected:
			j.logger.Debug().Str("torrent", t.Name).Str("protection", string(verdict.Protection)).Msg("Protected")
		case VerdictPending:
			j.logger.Warn().
				Str("torrent", t.Name).
				Str("reason", verdict.Reason.Description()).
				Msgf("Check %d/%d", verdict.Checks, j.graceChecks)
		case VerdictRemove:
			removals = append(removals, removal{torrent: *t, verdict: verdict})
		}
	}

	if len(removals) > 0 {
		j.processRemovals(ctx, removals)
	} else {
		j.logger.Info().Msg("No torrents to remove")
	}

	if dropped := j.tracker.Prune(present); dropped > 0 {
		j.logger.Debug().Int("count", dropped).Msg("Pruned grace state for departed torrents")
	}

	counts := CountStates(torrents)
	j.stats.RecordCycle(counts)

	if err := j.store.Save(j.tracker.Entries(), j.stats, j.now()); err != nil {
		return fmt.Errorf("failed to persist cycle state: %w", err)
	}

	j.touchHealth()
	j.logCycle(counts)

	return nil
}

// processRemovals executes the remove verdicts one torrent at a time. A
// failure for one torrent is logged and counted but never blocks the rest,
// and its grace entry stays put so the next cycle re-attempts immediately.
func (j *Janitor) processRemovals(ctx context.Context, removals []removal) {
	j.logger.Info().Int("count", len(removals)).Bool("dry_run", j.dryRun).Msg("Processing removals")

	if j.reannounce && !j.dryRun {
		// One last reannounce so trackers know the peers are going away.
		hashes := make([]string, 0, len(removals))
		for _, r := range removals {
			hashes = append(hashes, r.torrent.Hash)
		}
		if err := j.client.Reannounce(ctx, hashes); err != nil {
			j.logger.Debug().Err(err).Msg("Reannounce before removal failed")
		}
	}

	for _, r := range removals {
		if ctx.Err() != nil {
			return
		}

		t := r.torrent

		if !j.dryRun {
			if err := j.client.RemoveTorrent(ctx, t.Hash, j.deleteFiles); err != nil {
				j.logger.Error().Err(err).Str("torrent", t.Name).Msg("Failed to remove torrent")
				j.stats.RecordRemovalFailure()
				continue
			}
		}

		msg := "Removed torrent"
		if j.dryRun {
			msg = "[dry-run] Would remove torrent"
		}
		j.logger.Info().
			Str("torrent", t.Name).
			Str("reason", r.verdict.Reason.Description()).
			Int64("size", t.Size).
			Msg(msg)

		j.stats.RecordRemoval(r.verdict.Reason, t.Size)
		j.tracker.Forget(t.Hash)
	}
}

// Run executes cycles on the configured interval until the context is
// cancelled. Cycles never overlap; an overrunning cycle delays the next
// one rather than skipping it.
func (j *Janitor) Run(ctx context.Context) error {
	j.logger.Info().
		Dur("interval", j.interval).
		Bool("dry_run", j.dryRun).
		Msg("Janitor started")

	for {
		if err := j.RunCycle(ctx); err != nil {
			switch {
			case errors.Is(err, context.Canceled):
				return err
			case errors.Is(err, qbittorrent.ErrSourceUnavailable):
				j.logger.Warn().Err(err).Msg("qBittorrent unavailable, skipping cycle")
			default:
				j.logger.Error().Err(err).Msg("Cycle failed")
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(j.interval):
		}
	}
}

// touchHealth refreshes the heartbeat file consumed by the healthcheck
// command. Best effort.
func (j *Janitor) touchHealth() {
	if j.healthPath == "" {
		return
	}
	if err := os.WriteFile(j.healthPath, []byte(j.now().Format(time.RFC3339)+"\n"), 0o644); err != nil {
		j.logger.Debug().Err(err).Msg("Could not write health file")
	}
}

func (j *Janitor) logCycle(counts StateCounts) {
	j.logger.Info().
		Int("total", counts.Total).
		Int("downloading", counts.Downloading).
		Int("seeding", counts.Seeding).
		Int("queued", counts.Queued).
		Int("stalled", counts.Stalled).
		Int("metadata", counts.Metadata).
		Int("errored", counts.Errored).
		Int("paused", counts.Paused).
		Int("monitored", j.tracker.Len()).
		Int64("session_removed", j.stats.SessionRemoved).
		Int64("session_bytes_freed", j.stats.SessionBytesFreed).
		Msg("Cycle complete")
}

// protectedHashes collects hashes from the optional queue protector. A
// lookup failure yields an empty set and never blocks the cycle.
func (j *Janitor) protectedHashes(ctx context.Context) map[string]struct{} {
	if j.protector == nil {
		return nil
	}
	hashes, err := j.protector.ProtectedHashes(ctx)
	if err != nil {
		j.logger.Warn().Err(err).Msg("Queue protection lookup failed, continuing without it")
		return nil
	}
	return hashes
}
