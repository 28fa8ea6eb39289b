// Package janitor implements the cleanup decision engine: a pure rule
// evaluator that classifies each torrent snapshot, a grace tracker that
// turns repeated removal candidates into removal verdicts only after a
// configured number of consecutive qualifying cycles, and the orchestrator
// that drives one cycle end to end and persists its state atomically.
//
// Protection always dominates removal. A torrent that alternates between
// failure modes never accumulates grace for any of them; only a sustained,
// consistent problem triggers removal.
package janitor
