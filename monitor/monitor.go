// Package monitor is the live terminal view shown while presence is tracking
package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/presence/tracker"
)

const refreshInterval = 500 * time.Millisecond

// Controller is the part of the tracker the live view drives.
type Controller interface {
	Start(ctx context.Context) error
	Stop() error
	Status() tracker.Status
	SourcesDone() <-chan struct{}
}

type (
	tickMsg        time.Time
	sourcesDoneMsg struct{}
)

// Model is the bubbletea model of the live status view.
type Model struct {
	ctx           context.Context
	ctrl          Controller
	clock         func() time.Time
	help          help.Model
	status        tracker.Status
	err           error
	idleThreshold time.Duration
	// finished is set once the sources ran dry on their own
	finished bool
}

// New returns a live view for a tracker that has already been started.
func New(
	ctx context.Context,
	ctrl Controller,
	idleThreshold time.Duration,
) *Model {
	return &Model{
		ctx:           ctx,
		ctrl:          ctrl,
		clock:         time.Now,
		help:          help.New(),
		status:        ctrl.Status(),
		idleThreshold: idleThreshold,
	}
}

// Finished reports whether the view exited because every capture source
// returned.
func (m *Model) Finished() bool {
	return m.finished
}

// Err returns the last error reported by the tracker.
func (m *Model) Err() error {
	return m.err
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitSources(done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}

	return func() tea.Msg {
		<-done
		return sourcesDoneMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitSources(m.ctrl.SourcesDone()))
}
