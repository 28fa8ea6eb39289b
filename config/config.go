package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads the configuration from file. Keys not listed in the defaults
// table are ignored, so a partial configuration file is always valid.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Allow overrides like TORRENTJANITOR_QBITTORRENT_HOST
	v.SetEnvPrefix("torrentjanitor")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".torrentjanitor"))
		}

		// Check /etc
		v.AddConfigPath("/etc/torrentjanitor/")
	}

	// Read config file; a missing file is fine when no explicit path was
	// given, defaults plus env cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every threshold and rule
// has a default so a partial configuration is always valid.
func setDefaults(v *viper.Viper) {
	// qBittorrent defaults
	v.SetDefault("qbittorrent.host", "http://localhost:8080")
	v.SetDefault("qbittorrent.username", "admin")
	v.SetDefault("qbittorrent.password", "adminadmin")

	// Threshold defaults
	v.SetDefault("thresholds.max_queue_time", 172800) // 48 hours
	v.SetDefault("thresholds.max_meta_time", 3600)    // 1 hour
	v.SetDefault("thresholds.min_torrent_age", 86400) // 24 hours
	v.SetDefault("thresholds.grace_checks", 3)
	v.SetDefault("thresholds.check_interval", 1800) // 30 minutes
	v.SetDefault("thresholds.min_progress_protect", 5)
	v.SetDefault("thresholds.min_download_speed", 1024) // 1 KB/s
	v.SetDefault("thresholds.min_seeds_required", 1)
	v.SetDefault("thresholds.max_seed_time", 604800) // 7 days

	// Rule defaults
	v.SetDefault("rules.remove_errors", true)
	v.SetDefault("rules.remove_stalled", true)
	v.SetDefault("rules.remove_metadata_timeout", true)
	v.SetDefault("rules.remove_no_activity", true)
	v.SetDefault("rules.remove_queue_timeout", true)
	v.SetDefault("rules.remove_low_ratio", false)
	v.SetDefault("rules.protect_seeding", true)
	v.SetDefault("rules.protect_private_trackers", false)
	v.SetDefault("rules.min_seed_ratio", 1.0)
	v.SetDefault("rules.max_torrent_size_gb", 0)

	// Safety defaults
	v.SetDefault("safety.dry_run", false)
	v.SetDefault("safety.delete_files", true)
	v.SetDefault("safety.reannounce", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Path defaults
	v.SetDefault("paths.work_dir", "/tmp/torrentjanitor")
	v.SetDefault("paths.state_file", "state.json")
	v.SetDefault("paths.health_file", "healthy")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Qbittorrent.Host == "" {
		return fmt.Errorf("qbittorrent.host is required")
	}

	if cfg.Thresholds.GraceChecks < 1 {
		return fmt.Errorf("thresholds.grace_checks must be at least 1")
	}

	if cfg.Thresholds.CheckInterval < 1 {
		return fmt.Errorf("thresholds.check_interval must be at least 1 second")
	}

	if cfg.Rules.MaxTorrentSizeGB < 0 {
		return fmt.Errorf("rules.max_torrent_size_gb must not be negative")
	}

	for name, arr := range map[string]ArrConfig{"radarr": cfg.Radarr, "sonarr": cfg.Sonarr} {
		if !arr.Enabled {
			continue
		}
		if arr.URL == "" {
			return fmt.Errorf("%s.url is required when %s.enabled is true", name, name)
		}
		if arr.APIKey == "" {
			return fmt.Errorf("%s.api_key is required when %s.enabled is true", name, name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
