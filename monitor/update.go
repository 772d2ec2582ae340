package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) togglePause() tea.Cmd {
	if m.status.Running {
		m.err = m.ctrl.Stop()
		m.status = m.ctrl.Status()

		return nil
	}

	if m.err = m.ctrl.Start(m.ctx); m.err != nil {
		return nil
	}

	m.status = m.ctrl.Status()

	return waitSources(m.ctrl.SourcesDone())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.status = m.ctrl.Status()
		return m, tick()

	case sourcesDoneMsg:
		// sources also return when paused; only an exhausted source
		// ends the view
		m.status = m.ctrl.Status()
		if !m.status.Running {
			return m, nil
		}

		m.finished = true

		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, defaultKeymap.togglePause):
			return m, m.togglePause()

		case key.Matches(msg, defaultKeymap.quit):
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}
