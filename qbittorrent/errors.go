package qbittorrent

import "errors"

// Common errors returned by the qBittorrent client.
var (
	// ErrSourceUnavailable is returned when the torrent list cannot be
	// fetched from qBittorrent. Callers should skip the current cycle and
	// retry at the next interval.
	ErrSourceUnavailable = errors.New("qbittorrent unavailable")

	// ErrRemovalFailed is returned when deleting a single torrent fails.
	// It affects only that torrent; other removals proceed.
	ErrRemovalFailed = errors.New("torrent removal failed")

	// ErrConnectionFailed is returned when the initial connection to
	// qBittorrent fails.
	ErrConnectionFailed = errors.New("connection to qBittorrent failed")
)
