package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/presence/capture"
	"github.com/ayoisaiah/presence/internal/config"
	"github.com/ayoisaiah/presence/internal/logging"
	"github.com/ayoisaiah/presence/internal/pathutil"
	"github.com/ayoisaiah/presence/store"
)

// env is what every command needs before it can touch the event log.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	closeLog io.Closer
}

func (e *env) Close() error {
	return e.closeLog.Close()
}

// orDefault returns v, or the application default path if v is empty.
func orDefault(v string, def func() string) (string, error) {
	if v != "" {
		return v, nil
	}

	if err := pathutil.Initialize(); err != nil {
		return "", err
	}

	return def(), nil
}

// setup loads the configuration and opens the log file.
func setup(ctx *cli.Context) (*env, error) {
	configPath, err := orDefault(ctx.String("config"), pathutil.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	cfg.Store.Path, err = orDefault(cfg.Store.Path, func() string {
		return pathutil.DBFilePath(cfg.Store.Driver)
	})
	if err != nil {
		return nil, err
	}

	cfg.Log.File, err = orDefault(cfg.Log.File, pathutil.LogFilePath)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	return &env{cfg: cfg, logger: logger, closeLog: closer}, nil
}

// openStore opens the configured event log.
func (e *env) openStore() (store.DB, error) {
	db, err := store.NewClient(e.cfg.Store.Driver, e.cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	e.logger.Debug(
		"event log opened",
		slog.String("driver", e.cfg.Store.Driver),
		slog.String("path", e.cfg.Store.Path),
	)

	return db, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// buildSource returns the configured capture source, the titler that reports
// the focused window, and a closer for any file the source reads. limit caps
// the synthetic source.
func (e *env) buildSource(
	stdin io.Reader,
	limit int,
) (capture.Source, capture.WindowTitler, io.Closer, error) {
	c := e.cfg.Capture

	var (
		src    capture.Source
		titler  capture.WindowTitler
		closer io.Closer = nopCloser{}
	)

	switch c.Source {
	case config.SourceSynthetic:
		s := capture.NewSyntheticSource(capture.SyntheticOptions{
			Rate:  c.SyntheticRate,
			Seed:  c.SyntheticSeed,
			Limit: limit,
		})

		src, titler = s, s
	default:
		r := stdin

		if c.ReplayFile != config.Stdin {
			f, err := os.Open(c.ReplayFile)
			if err != nil {
				return nil, nil, nil, err
			}

			r, closer = f, f
		}

		s := capture.NewReplaySource(r)
		src, titler = s, s
	}

	if c.WindowCmd == "" {
		return src, titler, closer, nil
	}

	cmdTitle, err := capture.NewCommandTitle(c.WindowCmd)
	if err != nil {
		_ = closer.Close()
		return nil, nil, nil, err
	}

	return src, capture.Titlers{cmdTitle, titler}, closer, nil
}
