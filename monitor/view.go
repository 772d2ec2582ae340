package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/hako/durafmt"

	"github.com/ayoisaiah/presence/internal/ui"
)

func formatAgo(d time.Duration) string {
	if d < time.Second {
		return "just now"
	}

	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(d.Round(time.Second)).LimitFirstN(2).String() + " ago"
}

func row(label, value string) string {
	return ui.LabelStyle.Render(label) + ui.ValueStyle.Render(value) + "\n"
}

func (m *Model) stateView() string {
	if !m.status.Running {
		return ui.PausedStyle.Render("○ Paused")
	}

	state := ui.TrackingStyle.Render("● Tracking")

	last := m.status.LastActivity
	if !last.IsZero() && m.clock().Sub(last) > m.idleThreshold {
		state += " " + ui.IdleStyle.Render("(idle)")
	}

	return state
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(ui.TitleStyle.Render("presence"))
	s.WriteString("  " + m.stateView() + "\n\n")

	now := m.clock()

	if !m.status.StartedAt.IsZero() {
		s.WriteString(row("Started", m.status.StartedAt.Format("15:04:05")))
	}

	if !m.status.LastActivity.IsZero() {
		s.WriteString(row("Last input", formatAgo(now.Sub(m.status.LastActivity))))
	}

	s.WriteString(row("Queued", fmt.Sprint(m.status.Queued)))
	s.WriteString(row("Written", fmt.Sprint(m.status.Written)))
	s.WriteString(row("Idle events", fmt.Sprint(m.status.IdleEvents)))

	if m.status.Dropped > 0 {
		s.WriteString(row("Dropped", ui.ErrorStyle.Render(fmt.Sprint(m.status.Dropped))))
	}

	if m.err != nil {
		s.WriteString("\n" + ui.ErrorStyle.Render(m.err.Error()) + "\n")
	}

	s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePause,
		defaultKeymap.quit,
	}))

	return ui.BaseStyle.Render(s.String())
}
