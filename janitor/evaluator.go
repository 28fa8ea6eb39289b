package janitor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/torrentjanitor/config"
	"github.com/s0up4200/torrentjanitor/filter"
	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// Evaluator classifies a single torrent snapshot against the configured
// rules. Classify is pure: given the same snapshot, clock and protected
// set it always returns the same classification.
type Evaluator struct {
	thresholds config.ThresholdsConfig
	rules      config.RulesConfig
	protected  map[string]struct{}
	autoRemove map[string]struct{}
	protectFn  *filter.Filter
	logger     zerolog.Logger
}

// NewEvaluator builds an Evaluator from configuration. A configured
// protection filter expression is compiled here; a compile error makes the
// whole configuration invalid.
func NewEvaluator(cfg *config.Config, logger zerolog.Logger) (*Evaluator, error) {
	e := &Evaluator{
		thresholds: cfg.Thresholds,
		rules:      cfg.Rules,
		protected:  toSet(cfg.Categories.Protected),
		autoRemove: toSet(cfg.Categories.AutoRemove),
		logger:     logger,
	}

	if cfg.Rules.ProtectFilter != "" {
		f, err := filter.Compile(cfg.Rules.ProtectFilter)
		if err != nil {
			return nil, err
		}
		e.protectFn = f
	}

	return e, nil
}

// Classify maps one torrent snapshot to a Keep, Protected or removal
// candidate classification. Protection always dominates removal; the
// removal checks run in a fixed priority order so a torrent matching
// several rules reports the same single reason every cycle.
func (e *Evaluator) Classify(t *qbittorrent.Torrent, now time.Time, arrManaged map[string]struct{}) Classification {
	// Safety checks first, any match wins.
	if _, ok := e.protected[t.Category]; ok {
		return protect(ProtectionCategory)
	}
	if e.rules.ProtectPrivate && t.Private {
		return protect(ProtectionPrivateTracker)
	}
	if e.rules.ProtectSeeding && t.IsSeeding() {
		return protect(ProtectionSeeding)
	}
	if t.Progress*100 > e.thresholds.MinProgressProtect {
		return protect(ProtectionProgress)
	}
	if e.protectFn != nil {
		matched, err := e.protectFn.Match(t, now)
		if err != nil {
			// A broken expression on one torrent must not abort the
			// cycle; the torrent simply gets no filter protection.
			e.logger.Warn().Err(err).Str("torrent", t.Name).Msg("Protection filter failed, ignoring for this torrent")
		} else if matched {
			return protect(ProtectionFilter)
		}
	}
	if _, ok := arrManaged[t.Hash]; ok {
		return protect(ProtectionArrManaged)
	}

	// Category force-remove encodes operator intent, not a transient
	// symptom. It bypasses both grace and the age guard.
	if _, ok := e.autoRemove[t.Category]; ok {
		return candidate(ReasonAutoCategory)
	}

	cl := e.classifyRules(t, now)

	// Young torrents get the benefit of the doubt regardless of reason.
	if cl.Class == ClassCandidate && t.Age(now) < e.thresholds.MinAge() {
		return keep()
	}

	return cl
}

// classifyRules runs the rule-gated removal checks in priority order.
func (e *Evaluator) classifyRules(t *qbittorrent.Torrent, now time.Time) Classification {
	if e.rules.RemoveErrors && t.IsErrored() {
		return candidate(ReasonErrorState)
	}

	if e.rules.RemoveMetadataTimeout && t.IsFetchingMetadata() && t.Age(now) > e.thresholds.MaxMetaDuration() {
		return candidate(ReasonMetaTimeout)
	}

	if e.rules.RemoveQueueTimeout && t.IsQueued() && t.Age(now) > e.thresholds.MaxQueueDuration() {
		return candidate(ReasonQueueTimeout)
	}

	if e.rules.RemoveStalled && t.IsStalled() && t.NumSeeds < e.thresholds.MinSeedsRequired {
		return candidate(ReasonStalled)
	}

	if e.rules.RemoveNoActivity && t.IsDownloading() && t.DlSpeed < e.thresholds.MinDownloadSpeed {
		return candidate(ReasonNoActivity)
	}

	if limit := e.rules.MaxTorrentSizeBytes(); limit > 0 && t.Size > limit {
		return candidate(ReasonSizeLimit)
	}

	// Low ratio only matters once the torrent has had a fair shot at
	// seeding.
	if e.rules.RemoveLowRatio && t.IsSeeding() && t.Ratio < e.rules.MinSeedRatio && t.Age(now) > e.thresholds.MaxSeedDuration() {
		return candidate(ReasonLowRatio)
	}

	return keep()
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
