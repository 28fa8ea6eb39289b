package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/torrentjanitor/arr"
	"github.com/s0up4200/torrentjanitor/janitor"
	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to qBittorrent and the configured *arr instances",
	PreRunE: initializeApp,
	RunE:    runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	fmt.Printf("Testing connection to qBittorrent at %s...\n", cfg.Qbittorrent.Host)

	client, err := qbittorrent.NewClient(ctx, cfg.Qbittorrent.Host, cfg.Qbittorrent.Username, cfg.Qbittorrent.Password, logger)
	if err != nil {
		return err
	}
	fmt.Println("✓ Connection successful!")

	torrents, err := client.FetchTorrents(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch torrents: %w", err)
	}

	counts := janitor.CountStates(torrents)
	fmt.Printf("\nqBittorrent statistics:\n")
	fmt.Printf("- Total torrents: %d\n", counts.Total)
	fmt.Printf("- Downloading: %d | Seeding: %d | Queued: %d\n", counts.Downloading, counts.Seeding, counts.Queued)
	fmt.Printf("- Stalled: %d | Metadata: %d | Errored: %d | Paused: %d\n", counts.Stalled, counts.Metadata, counts.Errored, counts.Paused)

	if cfg.Radarr.Enabled || cfg.Sonarr.Enabled {
		var radarrURL, radarrKey, sonarrURL, sonarrKey string
		if cfg.Radarr.Enabled {
			radarrURL, radarrKey = cfg.Radarr.URL, cfg.Radarr.APIKey
		}
		if cfg.Sonarr.Enabled {
			sonarrURL, sonarrKey = cfg.Sonarr.URL, cfg.Sonarr.APIKey
		}

		hashes, err := arr.NewClient(radarrURL, radarrKey, sonarrURL, sonarrKey, logger).ProtectedHashes(ctx)
		if err != nil {
			return fmt.Errorf("failed to query *arr queues: %w", err)
		}
		fmt.Printf("\n*arr queue protection: %d torrent(s) currently managed\n", len(hashes))
	} else {
		fmt.Println("\n*arr queue protection: disabled")
	}

	return nil
}
