package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Source        string
	ReplayFile    string
	WindowCmd     string
	IdleThreshold string
	Driver        string
	DBPath        string
	NoMarkers     bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Only flags that were explicitly set override earlier options.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Source:        ctx.String("source"),
			ReplayFile:    ctx.String("replay"),
			WindowCmd:     ctx.String("window-cmd"),
			IdleThreshold: ctx.String("idle-threshold"),
			Driver:        ctx.String("driver"),
			DBPath:        ctx.String("db"),
			NoMarkers:     ctx.Bool("no-markers"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Source != "" {
		c.Capture.Source = opts.Source
	}

	if opts.ReplayFile != "" {
		c.Capture.ReplayFile = opts.ReplayFile
	}

	if opts.WindowCmd != "" {
		c.Capture.WindowCmd = opts.WindowCmd
	}

	if opts.IdleThreshold != "" {
		dur, err := time.ParseDuration(opts.IdleThreshold)
		if err != nil {
			return errInvalidCLIDuration.Fmt("idle-threshold", err)
		}

		c.Tracking.IdleThreshold = dur
	}

	if opts.Driver != "" {
		c.Store.Driver = opts.Driver
	}

	if opts.DBPath != "" {
		c.Store.Path = opts.DBPath
	}

	if opts.NoMarkers {
		c.Tracking.SessionMarkers = false
	}

	return nil
}
