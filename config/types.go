package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Qbittorrent QbittorrentConfig `mapstructure:"qbittorrent"`
	Radarr      ArrConfig         `mapstructure:"radarr"`
	Sonarr      ArrConfig         `mapstructure:"sonarr"`
	Thresholds  ThresholdsConfig  `mapstructure:"thresholds"`
	Rules       RulesConfig       `mapstructure:"rules"`
	Categories  CategoriesConfig  `mapstructure:"categories"`
	Safety      SafetyConfig      `mapstructure:"safety"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Paths       PathsConfig       `mapstructure:"paths"`
}

// QbittorrentConfig holds qBittorrent API connection details
type QbittorrentConfig struct {
	Host     string `mapstructure:"host"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ArrConfig holds connection details for an optional *arr instance whose
// download queue protects torrents from removal.
type ArrConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
}

// ThresholdsConfig contains the duration, percentage and count thresholds
// the decision engine compares torrents against. Durations are in seconds.
type ThresholdsConfig struct {
	MaxQueueTime       int64   `mapstructure:"max_queue_time"`
	MaxMetaTime        int64   `mapstructure:"max_meta_time"`
	MinTorrentAge      int64   `mapstructure:"min_torrent_age"`
	GraceChecks        int     `mapstructure:"grace_checks"`
	CheckInterval      int64   `mapstructure:"check_interval"`
	MinProgressProtect float64 `mapstructure:"min_progress_protect"` // percent
	MinDownloadSpeed   int64   `mapstructure:"min_download_speed"`   // bytes/s
	MinSeedsRequired   int64   `mapstructure:"min_seeds_required"`
	MaxSeedTime        int64   `mapstructure:"max_seed_time"`
}

// MaxQueueDuration returns the queue timeout as a time.Duration.
func (t ThresholdsConfig) MaxQueueDuration() time.Duration {
	return time.Duration(t.MaxQueueTime) * time.Second
}

// MaxMetaDuration returns the metadata timeout as a time.Duration.
func (t ThresholdsConfig) MaxMetaDuration() time.Duration {
	return time.Duration(t.MaxMetaTime) * time.Second
}

// MinAge returns the minimum torrent age as a time.Duration.
func (t ThresholdsConfig) MinAge() time.Duration {
	return time.Duration(t.MinTorrentAge) * time.Second
}

// Interval returns the cycle interval as a time.Duration.
func (t ThresholdsConfig) Interval() time.Duration {
	return time.Duration(t.CheckInterval) * time.Second
}

// MaxSeedDuration returns the maximum seed time as a time.Duration.
func (t ThresholdsConfig) MaxSeedDuration() time.Duration {
	return time.Duration(t.MaxSeedTime) * time.Second
}

// RulesConfig contains the boolean rule toggles and their numeric limits
type RulesConfig struct {
	RemoveErrors          bool    `mapstructure:"remove_errors"`
	RemoveStalled         bool    `mapstructure:"remove_stalled"`
	RemoveMetadataTimeout bool    `mapstructure:"remove_metadata_timeout"`
	RemoveNoActivity      bool    `mapstructure:"remove_no_activity"`
	RemoveQueueTimeout    bool    `mapstructure:"remove_queue_timeout"`
	RemoveLowRatio        bool    `mapstructure:"remove_low_ratio"`
	ProtectSeeding        bool    `mapstructure:"protect_seeding"`
	ProtectPrivate        bool    `mapstructure:"protect_private_trackers"`
	MinSeedRatio          float64 `mapstructure:"min_seed_ratio"`
	MaxTorrentSizeGB      float64 `mapstructure:"max_torrent_size_gb"`
	ProtectFilter         string  `mapstructure:"protect_filter"`
}

// MaxTorrentSizeBytes returns the size limit in bytes, 0 when disabled.
func (r RulesConfig) MaxTorrentSizeBytes() int64 {
	return int64(r.MaxTorrentSizeGB * 1024 * 1024 * 1024)
}

// CategoriesConfig lists the category labels with special handling
type CategoriesConfig struct {
	Protected  []string `mapstructure:"protected"`
	AutoRemove []string `mapstructure:"auto_remove"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun      bool `mapstructure:"dry_run"`
	DeleteFiles bool `mapstructure:"delete_files"`
	Reannounce  bool `mapstructure:"reannounce"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// PathsConfig locates the working directory and the files kept in it
type PathsConfig struct {
	WorkDir    string `mapstructure:"work_dir"`
	StateFile  string `mapstructure:"state_file"`
	HealthFile string `mapstructure:"health_file"`
}
