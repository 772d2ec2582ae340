// Package app wires the presence command-line interface
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/presence/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the presence app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "presence",
		Usage: `
		Presence records pointer and keyboard activity together with the
		window that had focus, and reports how much of a session was spent
		attending to each window and how much was idle.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "track",
				Usage:  "Capture activity until interrupted (default command)",
				Flags:  trackFlags(),
				Action: trackAction,
			},
			{
				Name:   "stats",
				Usage:  "Summarise the recorded session",
				Flags:  []cli.Flag{jsonFlag},
				Action: statsAction,
			},
			{
				Name:   "windows",
				Usage:  "Show the attended time per window",
				Flags:  []cli.Flag{jsonFlag, limitFlag},
				Action: windowsAction,
			},
			{
				Name:   "heatmap",
				Usage:  "Show where the pointer spent its time",
				Flags:  []cli.Flag{jsonFlag, limitFlag, cellFlag},
				Action: heatmapAction,
			},
			{
				Name:   "activity",
				Usage:  "Show the number of events recorded per minute",
				Flags:  []cli.Flag{jsonFlag},
				Action: activityAction,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded events",
				Flags:  []cli.Flag{yesFlag},
				Action: clearAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  append(globalFlags(), trackFlags()...),
		Action: trackAction,
		Before: beforeAction,
	}
}
