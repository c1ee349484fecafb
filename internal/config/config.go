package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime configuration, loaded from the environment.
type Config struct {
	// APIKey is the Bungie.net application API key (X-API-Key header).
	APIKey string `env:"POWERBOARD_API_KEY"`

	// OAuthClientID identifies the registered Bungie.net OAuth client.
	OAuthClientID string `env:"POWERBOARD_OAUTH_CLIENT_ID"`

	// DataDir holds the SQLite cache. Empty means the XDG data directory.
	DataDir string `env:"POWERBOARD_DATA_DIR"`

	// PollInterval overrides the character-data poll cadence.
	PollInterval time.Duration `env:"POWERBOARD_POLL_INTERVAL" envDefault:"15s"`

	// LogFile receives zap output. Empty disables file logging.
	LogFile string `env:"POWERBOARD_LOG_FILE"`

	// AnalyticsEnabled opts in to the fire-and-forget usage metrics.
	AnalyticsEnabled bool `env:"POWERBOARD_ANALYTICS" envDefault:"false"`

	// AnalyticsTrackingID is the Measurement Protocol property. Analytics
	// stays off without one even when enabled.
	AnalyticsTrackingID string `env:"POWERBOARD_ANALYTICS_ID"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// defaultDataDir returns the XDG data directory for powerboard,
// falling back to ~/.local/share/powerboard.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "powerboard")
}
