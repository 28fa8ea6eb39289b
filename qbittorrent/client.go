package qbittorrent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autobrr/go-qbittorrent"
	"github.com/rs/zerolog"
)

// Client wraps the qBittorrent Web API client.
type Client struct {
	client *qbittorrent.Client
	logger zerolog.Logger
}

// NewClient creates a new qBittorrent client and verifies the connection
// by logging in.
func NewClient(ctx context.Context, host, username, password string, logger zerolog.Logger) (*Client, error) {
	client := qbittorrent.NewClient(qbittorrent.Config{
		Host:     host,
		Username: username,
		Password: password,
	})

	if err := client.LoginCtx(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// FetchTorrents retrieves a snapshot of all torrents from qBittorrent.
// A transport or API failure is reported as ErrSourceUnavailable.
func (c *Client) FetchTorrents(ctx context.Context) ([]Torrent, error) {
	torrents, err := c.client.GetTorrentsCtx(ctx, qbittorrent.TorrentFilterOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	c.logger.Debug().Msgf("Retrieved %d torrents from qBittorrent", len(torrents))

	results := make([]Torrent, 0, len(torrents))
	for _, t := range torrents {
		results = append(results, Torrent{
			Hash:         t.Hash,
			Name:         t.Name,
			State:        State(t.State),
			Size:         t.Size,
			Progress:     t.Progress,
			DlSpeed:      t.DlSpeed,
			Ratio:        t.Ratio,
			NumSeeds:     t.NumSeeds,
			AddedOn:      time.Unix(t.AddedOn, 0),
			LastActivity: time.Unix(t.LastActivity, 0),
			Category:     t.Category,
			Tags:         splitTags(t.Tags),
			Tracker:      t.Tracker,
			Private:      t.Private,
		})
	}

	return results, nil
}

// RemoveTorrent deletes a single torrent, optionally with its files.
// Removal is per torrent so one failure never affects the others.
func (c *Client) RemoveTorrent(ctx context.Context, hash string, deleteFiles bool) error {
	if err := c.client.DeleteTorrentsCtx(ctx, []string{hash}, deleteFiles); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRemovalFailed, hash, err)
	}
	return nil
}

// Reannounce asks the trackers for fresh peer lists for the given torrents.
// Best effort; used to give doomed torrents one last chance before removal.
func (c *Client) Reannounce(ctx context.Context, hashes []string) error {
	if len(hashes) == 0 {
		return nil
	}
	return c.client.ReAnnounceTorrentsCtx(ctx, hashes)
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	parts := strings.Split(tags, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
