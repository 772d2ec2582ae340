// Package report renders analyzer results for the terminal
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/internal/timeutil"
	"github.com/ayoisaiah/presence/internal/ui"
)

const (
	barChartChar = "▇"
	noEventsMsg  = "No events recorded yet"
)

// Cleared confirms that the event log was emptied.
func Cleared() {
	pterm.Success.Println("all tracking data cleared")
}

// minutes formats a minutes value the way every report shows it.
func minutes(v float64) string {
	return ui.Green(strconv.FormatFloat(v, 'f', 2, 64)) + ui.Dim(" min")
}

func humanDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d.Round(time.Second)).LimitToUnit("hours").LimitFirstN(2).String()
}

// Metrics writes the session summary and the top windows table.
func Metrics(w io.Writer, m *models.Metrics) error {
	if m == nil {
		_, err := fmt.Fprintln(w, noEventsMsg)
		return err
	}

	var s strings.Builder

	s.WriteString(fmt.Sprintf("%s\n", ui.Blue("Summary")))
	s.WriteString(fmt.Sprintf("Total time:     %s\n", minutes(m.TotalTime)))
	s.WriteString(fmt.Sprintf("Focus time:     %s\n", minutes(m.FocusTime)))
	s.WriteString(fmt.Sprintf("Idle time:      %s\n", minutes(m.IdleTime)))
	s.WriteString(fmt.Sprintf("Activity level: %s\n", ui.Green(m.ActivityLevel)))

	if _, err := fmt.Fprintln(w, s.String()); err != nil {
		return err
	}

	if len(m.TopWindows) == 0 {
		return nil
	}

	data := [][]string{{"#", "Window", "Events"}}
	for i, win := range m.TopWindows {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			win.Title,
			strconv.Itoa(win.Count),
		})
	}

	return ui.PrintTable(data, w)
}

// Windows writes the attended time per window, longest first. A positive
// limit truncates the list.
func Windows(w io.Writer, durations []models.WindowDuration, limit int) error {
	if len(durations) == 0 {
		_, err := fmt.Fprintln(w, noEventsMsg)
		return err
	}

	if limit > 0 && len(durations) > limit {
		durations = durations[:limit]
	}

	data := [][]string{{"Window", "Minutes", "Duration"}}
	for _, d := range durations {
		data = append(data, []string{
			d.Title,
			strconv.FormatFloat(timeutil.Round2(d.Minutes()), 'f', 2, 64),
			humanDuration(d.Duration),
		})
	}

	return ui.PrintTable(data, w)
}

// Activity writes a bar chart of events per minute.
func Activity(w io.Writer, buckets []models.ActivityBucket) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, noEventsMsg)
		return err
	}

	bars := make(pterm.Bars, 0, len(buckets))
	for _, b := range buckets {
		bars = append(bars, pterm.Bar{
			Label: b.Start.Format("15:04"),
			Value: b.Count,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		return err
	}

	header := ui.Blue("Activity per minute (events)")

	_, err = fmt.Fprintln(w, header+"\n"+chart)

	return err
}

// Heatmap writes the pointer density grid, busiest cells first. A positive
// limit truncates the list.
func Heatmap(
	w io.Writer,
	points int,
	cells []models.DensityCell,
	cell, limit int,
) error {
	if points == 0 {
		_, err := fmt.Fprintln(w, noEventsMsg)
		return err
	}

	if limit > 0 && len(cells) > limit {
		cells = cells[:limit]
	}

	header := fmt.Sprintf(
		"%s %s\n",
		ui.Blue("Pointer samples:"),
		ui.Green(points),
	)

	if _, err := fmt.Fprint(w, header); err != nil {
		return err
	}

	data := [][]string{{"Cell", "Samples", "Share"}}
	for _, c := range cells {
		share := float64(c.Count) / float64(points) * 100

		data = append(data, []string{
			fmt.Sprintf("(%d,%d)-(%d,%d)", c.X, c.Y, c.X+cell, c.Y+cell),
			strconv.Itoa(c.Count),
			strconv.FormatFloat(timeutil.Round2(share), 'f', 2, 64) + "%",
		})
	}

	return ui.PrintTable(data, w)
}
