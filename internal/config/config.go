// Package config loads presence settings from the config file, the
// environment, and command-line flags
package config

import (
	"fmt"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Capture  CaptureConfig  `mapstructure:"capture"`
		Store    StoreConfig    `mapstructure:"store"`
		Log      LogConfig      `mapstructure:"log"`
		Tracking TrackingConfig `mapstructure:"tracking"`
	}

	// TrackingConfig holds capture pipeline settings
	TrackingConfig struct {
		IdleThreshold  time.Duration `mapstructure:"idle_threshold"`
		MoveThrottle   time.Duration `mapstructure:"move_throttle"`
		FlushInterval  time.Duration `mapstructure:"flush_interval"`
		StopTimeout    time.Duration `mapstructure:"stop_timeout"`
		BatchSize      int           `mapstructure:"batch_size"`
		SessionMarkers bool          `mapstructure:"session_markers"`
	}

	// CaptureConfig selects where input notifications and window titles
	// come from
	CaptureConfig struct {
		Source        string        `mapstructure:"source"`
		ReplayFile    string        `mapstructure:"replay_file"`
		WindowCmd     string        `mapstructure:"window_cmd"`
		SyntheticRate time.Duration `mapstructure:"synthetic_rate"`
		SyntheticSeed uint64        `mapstructure:"synthetic_seed"`
	}

	// StoreConfig selects the event log backend
	StoreConfig struct {
		Driver string `mapstructure:"driver"`
		Path   string `mapstructure:"path"`
	}

	// LogConfig holds log file settings
	LogConfig struct {
		// File defaults to presence.log in the data directory
		File       string `mapstructure:"file"`
		Level      string `mapstructure:"level"`
		Format     string `mapstructure:"format"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	SourceReplay    = "replay"
	SourceSynthetic = "synthetic"

	// Stdin as a replay file reads records from standard input
	Stdin = "-"
)

// New creates a new Config by applying options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", errConfigOption, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}
