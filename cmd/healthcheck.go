package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

// healthcheckCmd is the container HEALTHCHECK hook: it exits 0 only when a
// running janitor has completed a cycle recently.
var healthcheckCmd = &cobra.Command{
	Use:     "healthcheck",
	Short:   "Exit 0 if the janitor completed a cycle recently",
	PreRunE: initializeApp,
	RunE:    runHealthcheck,
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}

func runHealthcheck(cmd *cobra.Command, args []string) error {
	path := filepath.Join(cfg.Paths.WorkDir, cfg.Paths.HealthFile)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("no heartbeat at %s: %w", path, err)
	}

	// Two intervals of slack: one cycle may legitimately overrun.
	maxAge := 2 * cfg.Thresholds.Interval()
	if age := time.Since(info.ModTime()); age > maxAge {
		return fmt.Errorf("heartbeat is stale: last cycle completed %s ago (max %s)", age.Round(time.Second), maxAge)
	}

	fmt.Println("healthy")
	return nil
}
