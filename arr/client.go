// Package arr looks up the download queues of Radarr and Sonarr instances.
// Torrents that a *arr is still managing are protected from removal: the
// *arr owns their lifecycle and handles its own failed-download cleanup.
package arr

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golift.io/starr"
	"golift.io/starr/radarr"
	"golift.io/starr/sonarr"
)

const queuePageSize = 500

// Client queries the configured *arr download queues.
type Client struct {
	radarr *radarr.Radarr
	sonarr *sonarr.Sonarr
	logger zerolog.Logger
}

// NewClient creates a queue lookup client. Either instance may be nil-backed
// by passing an empty URL.
func NewClient(radarrURL, radarrKey, sonarrURL, sonarrKey string, logger zerolog.Logger) *Client {
	c := &Client{logger: logger}

	if radarrURL != "" {
		c.radarr = radarr.New(starr.New(radarrKey, radarrURL, 30*time.Second))
	}
	if sonarrURL != "" {
		c.sonarr = sonarr.New(starr.New(sonarrKey, sonarrURL, 30*time.Second))
	}

	return c
}

// ProtectedHashes returns the torrent hashes currently present in the
// configured download queues, lowercased to match qBittorrent's hashes.
// A failing instance is logged and skipped; the lookup never fails hard.
func (c *Client) ProtectedHashes(ctx context.Context) (map[string]struct{}, error) {
	hashes := make(map[string]struct{})

	if c.radarr != nil {
		queue, err := c.radarr.GetQueueContext(ctx, 0, queuePageSize)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to fetch Radarr queue, skipping its protection this cycle")
		} else {
			for _, record := range queue.Records {
				if record.DownloadID != "" {
					hashes[strings.ToLower(record.DownloadID)] = struct{}{}
				}
			}
		}
	}

	if c.sonarr != nil {
		queue, err := c.sonarr.GetQueueContext(ctx, 0, queuePageSize)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Failed to fetch Sonarr queue, skipping its protection this cycle")
		} else {
			for _, record := range queue.Records {
				if record.DownloadID != "" {
					hashes[strings.ToLower(record.DownloadID)] = struct{}{}
				}
			}
		}
	}

	return hashes, nil
}
