package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/presence/analyzer"
	"github.com/ayoisaiah/presence/capture"
	"github.com/ayoisaiah/presence/internal/config"
	"github.com/ayoisaiah/presence/internal/pathutil"
	"github.com/ayoisaiah/presence/internal/ui"
	"github.com/ayoisaiah/presence/monitor"
	"github.com/ayoisaiah/presence/report"
	"github.com/ayoisaiah/presence/tracker"
)

const (
	envNoColor         = "NO_COLOR"
	envPresenceNoColor = "PRESENCE_NO_COLOR"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// printJSON writes v to the app's output as a single JSON document.
func printJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// withAnalyzer opens the event log read-only for the duration of fn.
func withAnalyzer(ctx *cli.Context, fn func(*analyzer.Analyzer) error) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	db, err := e.openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return fn(analyzer.New(db))
}

// trackAction runs the capture pipeline until the sources are exhausted, the
// live view is closed, or the process is interrupted.
func trackAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	db, err := e.openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	src, titler, closeSrc, err := e.buildSource(os.Stdin, ctx.Int("events"))
	if err != nil {
		return err
	}

	defer closeSrc.Close()

	t := e.cfg.Tracking

	tr, err := tracker.New(db, tracker.Options{
		Window:         titler,
		Logger:         e.logger,
		Sources:        []capture.Source{src},
		IdleThreshold:  t.IdleThreshold,
		MoveInterval:   t.MoveThrottle,
		FlushInterval:  t.FlushInterval,
		StopTimeout:    t.StopTimeout,
		BatchSize:      t.BatchSize,
		SessionMarkers: t.SessionMarkers,
	})
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(
		ctx.Context,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err = tr.Start(runCtx); err != nil {
		return err
	}

	// the live view reads keys from stdin, so it cannot share it with a
	// replay stream
	headless := ctx.Bool("no-tui") ||
		(e.cfg.Capture.Source == config.SourceReplay &&
			e.cfg.Capture.ReplayFile == config.Stdin)

	if headless {
		select {
		case <-runCtx.Done():
		case <-tr.SourcesDone():
		}
	} else {
		m := monitor.New(runCtx, tr, t.IdleThreshold)

		_, err = tea.NewProgram(m, tea.WithContext(runCtx)).Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			_ = tr.Stop()
			return err
		}
	}

	if err = tr.Stop(); err != nil {
		return err
	}

	status := tr.Status()

	if !headless || status.Dropped > 0 {
		pterm.Info.Printfln(
			"%s events written, %s dropped",
			ui.Green(status.Written),
			ui.Red(status.Dropped),
		)
	}

	return nil
}

// statsAction prints the session metrics.
func statsAction(ctx *cli.Context) error {
	return withAnalyzer(ctx, func(a *analyzer.Analyzer) error {
		m, err := a.CalculateMetrics()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, m)
		}

		return report.Metrics(ctx.App.Writer, m)
	})
}

// windowsAction prints the attended time per window.
func windowsAction(ctx *cli.Context) error {
	return withAnalyzer(ctx, func(a *analyzer.Analyzer) error {
		durations, err := a.WindowDurations()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, durations)
		}

		return report.Windows(ctx.App.Writer, durations, ctx.Int("limit"))
	})
}

// heatmapAction prints the pointer positions binned into a grid, or the raw
// points with --json.
func heatmapAction(ctx *cli.Context) error {
	return withAnalyzer(ctx, func(a *analyzer.Analyzer) error {
		points, err := a.HeatmapData()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, points)
		}

		cell := ctx.Int("cell")

		cells, err := a.DensityGrid(cell)
		if err != nil {
			return err
		}

		return report.Heatmap(
			ctx.App.Writer,
			len(points),
			cells,
			cell,
			ctx.Int("limit"),
		)
	})
}

// activityAction prints the events recorded per minute.
func activityAction(ctx *cli.Context) error {
	return withAnalyzer(ctx, func(a *analyzer.Analyzer) error {
		buckets, err := a.ActivityTimeline()
		if err != nil {
			return err
		}

		if ctx.Bool("json") {
			return printJSON(ctx.App.Writer, buckets)
		}

		return report.Activity(ctx.App.Writer, buckets)
	})
}

// clearAction deletes every stored event after confirmation.
func clearAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	defer e.Close()

	db, err := e.openStore()
	if err != nil {
		return err
	}

	defer db.Close()

	return clearData(db, e.logger, ctx.Bool("yes"), confirmClear)
}

// editConfigAction handles the edit-config command which opens the presence
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	configPath, err := orDefault(ctx.String("config"), pathutil.ConfigFilePath)
	if err != nil {
		return err
	}

	// writes the default file on first use so there is something to edit
	e, err := setup(ctx)
	if err != nil {
		return err
	}

	_ = e.Close()

	cmd := exec.Command(editor, configPath)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if PRESENCE_NO_COLOR is set
	if _, exists := os.LookupEnv(envPresenceNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	slog.DebugContext(ctx.Context, "starting presence", slog.Any("args", ctx.Args().Slice()))

	return nil
}
