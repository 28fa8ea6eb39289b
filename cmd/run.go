package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/s0up4200/torrentjanitor/arr"
	"github.com/s0up4200/torrentjanitor/janitor"
	"github.com/s0up4200/torrentjanitor/qbittorrent"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run cleanup cycles against qBittorrent",
	Long: `Run the cleanup loop: every check interval, fetch all torrents, classify
them against the configured rules and remove the ones whose problems have
persisted for the full grace period.

With --once a single cycle is executed and the process exits. A cycle that
is skipped because qBittorrent is unreachable still exits cleanly; it will
be retried on the next scheduled run.`,
	PreRunE: initializeApp,
	RunE:    runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runOnce, "once", false, "run exactly one cycle then exit")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := qbittorrent.NewClient(ctx, cfg.Qbittorrent.Host, cfg.Qbittorrent.Username, cfg.Qbittorrent.Password, logger)
	if err != nil {
		return err
	}

	j, err := janitor.New(cfg, client, logger)
	if err != nil {
		return err
	}

	if cfg.Radarr.Enabled || cfg.Sonarr.Enabled {
		var radarrURL, radarrKey, sonarrURL, sonarrKey string
		if cfg.Radarr.Enabled {
			radarrURL, radarrKey = cfg.Radarr.URL, cfg.Radarr.APIKey
		}
		if cfg.Sonarr.Enabled {
			sonarrURL, sonarrKey = cfg.Sonarr.URL, cfg.Sonarr.APIKey
		}
		j.SetQueueProtector(arr.NewClient(radarrURL, radarrKey, sonarrURL, sonarrKey, logger))
		logger.Info().Bool("radarr", cfg.Radarr.Enabled).Bool("sonarr", cfg.Sonarr.Enabled).Msg("*arr queue protection enabled")
	}

	if runOnce {
		err := j.RunCycle(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, qbittorrent.ErrSourceUnavailable):
			// Skipped cycle, not a failure; the next scheduled run retries.
			logger.Warn().Err(err).Msg("qBittorrent unavailable, cycle skipped")
			return nil
		default:
			return err
		}
	}

	if err := j.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info().Msg("Shutdown complete")
	return nil
}
