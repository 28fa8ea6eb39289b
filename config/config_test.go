package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func defaultTestConfig() *Config {
	return &Config{
		Qbittorrent: QbittorrentConfig{Host: "http://localhost:8080"},
		Thresholds: ThresholdsConfig{
			GraceChecks:   3,
			CheckInterval: 1800,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing host",
			mutate:  func(c *Config) { c.Qbittorrent.Host = "" },
			wantErr: true,
		},
		{
			name:    "zero grace checks",
			mutate:  func(c *Config) { c.Thresholds.GraceChecks = 0 },
			wantErr: true,
		},
		{
			name:    "zero interval",
			mutate:  func(c *Config) { c.Thresholds.CheckInterval = 0 },
			wantErr: true,
		},
		{
			name:    "negative size limit",
			mutate:  func(c *Config) { c.Rules.MaxTorrentSizeGB = -1 },
			wantErr: true,
		},
		{
			name:    "radarr enabled without url",
			mutate:  func(c *Config) { c.Radarr = ArrConfig{Enabled: true, APIKey: "key"} },
			wantErr: true,
		},
		{
			name:    "sonarr enabled without api key",
			mutate:  func(c *Config) { c.Sonarr = ArrConfig{Enabled: true, URL: "http://localhost:8989"} },
			wantErr: true,
		},
		{
			name:   "arr enabled fully configured",
			mutate: func(c *Config) { c.Radarr = ArrConfig{Enabled: true, URL: "http://localhost:7878", APIKey: "key"} },
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "logfmt" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultTestConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Keep the search paths away from any real config file.
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Thresholds.GraceChecks != 3 {
		t.Errorf("grace_checks default = %d, want 3", cfg.Thresholds.GraceChecks)
	}
	if cfg.Thresholds.Interval() != 30*time.Minute {
		t.Errorf("check_interval default = %v, want 30m", cfg.Thresholds.Interval())
	}
	if !cfg.Rules.RemoveErrors {
		t.Error("remove_errors should default to true")
	}
	if cfg.Rules.RemoveLowRatio {
		t.Error("remove_low_ratio should default to false")
	}
	if cfg.Rules.MinSeedRatio != 1.0 {
		t.Errorf("min_seed_ratio default = %v, want 1.0", cfg.Rules.MinSeedRatio)
	}
	if cfg.Safety.DryRun {
		t.Error("dry_run should default to false")
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
qbittorrent:
  host: http://qbt:9090
thresholds:
  grace_checks: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Overridden values
	if cfg.Qbittorrent.Host != "http://qbt:9090" {
		t.Errorf("host = %q, want overridden value", cfg.Qbittorrent.Host)
	}
	if cfg.Thresholds.GraceChecks != 5 {
		t.Errorf("grace_checks = %d, want 5", cfg.Thresholds.GraceChecks)
	}

	// Everything else keeps its default
	if cfg.Thresholds.MaxQueueTime != 172800 {
		t.Errorf("max_queue_time = %d, want default 172800", cfg.Thresholds.MaxQueueTime)
	}
	if !cfg.Rules.ProtectSeeding {
		t.Error("protect_seeding should keep its default")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("thresholds:\n  grace_checks: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should reject grace_checks = 0")
	}
}

func TestMaxTorrentSizeBytes(t *testing.T) {
	r := RulesConfig{MaxTorrentSizeGB: 2}
	if got := r.MaxTorrentSizeBytes(); got != 2*1024*1024*1024 {
		t.Errorf("MaxTorrentSizeBytes() = %d, want %d", got, int64(2*1024*1024*1024))
	}

	r.MaxTorrentSizeGB = 0
	if got := r.MaxTorrentSizeBytes(); got != 0 {
		t.Errorf("MaxTorrentSizeBytes() = %d, want 0 when disabled", got)
	}
}
