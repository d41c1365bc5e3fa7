package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	AllowedOrigins              []string `toml:"allowed_origins"`
	LoginRateLimitAllowedPerMin int      `toml:"login_rate_limit_allowed_per_min"`

	// leaderboard
	LeaderboardSnapshotTTLSec  int     `toml:"leaderboard_snapshot_ttl_sec"`
	LeaderboardRefreshWorkers  int     `toml:"leaderboard_refresh_workers"`
	LeaderboardRefreshPerSec   float64 `toml:"leaderboard_refresh_per_sec"`
	LeaderboardSnapshotCacheMB int     `toml:"leaderboard_snapshot_cache_mb"`
	ChangesChannel             string  `toml:"changes_channel"`
}

func (c *Config) LeaderboardSnapshotTTL() time.Duration {
	return time.Duration(c.LeaderboardSnapshotTTLSec) * time.Second
}

type Toml struct {
	Development *Config `toml:"development"`
	Production  *Config `toml:"production"`
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found", env)
	}
	return cfg, nil
}

// Load reads the TOML file and returns the config section of the given environment,
// with defaults filled in for unset values.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.setDefaults()

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.LeaderboardRefreshWorkers <= 0 {
		c.LeaderboardRefreshWorkers = 4
	}
	if c.LeaderboardRefreshPerSec <= 0 {
		c.LeaderboardRefreshPerSec = 20
	}
	if c.LeaderboardSnapshotCacheMB <= 0 {
		c.LeaderboardSnapshotCacheMB = 16
	}
	if c.ChangesChannel == "" {
		c.ChangesChannel = "liftboard-changes"
	}
}
