package config

import (
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/store"
)

var (
	sources    = []string{SourceReplay, SourceSynthetic}
	drivers    = []string{store.DriverBolt, store.DriverSQLite}
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "text"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateTracking(); err != nil {
		return err
	}

	if !slices.Contains(sources, c.Capture.Source) {
		return errUnknownSource.Fmt(c.Capture.Source)
	}

	if c.Capture.Source == SourceSynthetic && c.Capture.SyntheticRate <= 0 {
		return errNotPositive.Fmt("synthetic rate", c.Capture.SyntheticRate)
	}

	if !slices.Contains(drivers, c.Store.Driver) {
		return errUnknownDriver.Fmt(c.Store.Driver)
	}

	return c.validateLog()
}

// validateTracking validates the pipeline timings.
func (c *Config) validateTracking() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"idle threshold", c.Tracking.IdleThreshold},
		{"move throttle", c.Tracking.MoveThrottle},
		{"flush interval", c.Tracking.FlushInterval},
		{"stop timeout", c.Tracking.StopTimeout},
	}

	for _, d := range durations {
		if d.value <= 0 {
			return errNotPositive.Fmt(d.name, d.value)
		}
	}

	if c.Tracking.BatchSize <= 0 {
		return errNotPositive.Fmt("batch size", c.Tracking.BatchSize)
	}

	if c.Tracking.IdleThreshold < models.IdleCheckInterval {
		return errIdleBelowCadence.Fmt(
			c.Tracking.IdleThreshold,
			models.IdleCheckInterval,
		)
	}

	return nil
}

func (c *Config) validateLog() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !slices.Contains(logLevels, level) {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	if !slices.Contains(logFormats, format) {
		return errInvalidLogFormat.Fmt(c.Log.Format)
	}

	return nil
}
