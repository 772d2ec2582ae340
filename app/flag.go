package app

import "github.com/urfave/cli/v2"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the config file (default: $XDG_CONFIG_HOME/presence/config.yml)",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Event log backend: bolt or sqlite (default: bolt)",
	}

	dbFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the event log (default: $XDG_DATA_HOME/presence/presence.db)",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	sourceFlag = &cli.StringFlag{
		Name:    "source",
		Aliases: []string{"s"},
		Usage:   "Where input notifications come from: replay or synthetic (default: replay)",
	}

	replayFlag = &cli.StringFlag{
		Name:    "replay",
		Aliases: []string{"r"},
		Usage:   "Newline-delimited JSON file of input records. Use '-' for standard input",
	}

	windowCmdFlag = &cli.StringFlag{
		Name:  "window-cmd",
		Usage: "Command that prints the title of the focused window (e.g. 'xdotool getactivewindow getwindowname')",
	}

	idleThresholdFlag = &cli.StringFlag{
		Name:    "idle-threshold",
		Aliases: []string{"i"},
		Usage:   "Inactivity after which idle time is recorded (default: 10s)",
	}

	noMarkersFlag = &cli.BoolFlag{
		Name:  "no-markers",
		Usage: "Do not record start and end events for each run",
	}

	noTUIFlag = &cli.BoolFlag{
		Name:  "no-tui",
		Usage: "Do not show the live status view",
	}

	syntheticLimitFlag = &cli.IntFlag{
		Name:  "events",
		Usage: "Stop the synthetic source after this many notifications",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the result as JSON",
	}

	limitFlag = &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   "Show at most this many rows",
	}

	cellFlag = &cli.IntFlag{
		Name:  "cell",
		Usage: "Edge length of a heatmap cell in pixels",
		Value: 100,
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		configFlag,
		driverFlag,
		dbFlag,
		noColorFlag,
	}
}

func trackFlags() []cli.Flag {
	return []cli.Flag{
		sourceFlag,
		replayFlag,
		windowCmdFlag,
		idleThresholdFlag,
		noMarkersFlag,
		noTUIFlag,
		syntheticLimitFlag,
	}
}
