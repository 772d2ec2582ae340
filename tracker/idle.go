package tracker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ayoisaiah/presence/capture"
	"github.com/ayoisaiah/presence/internal/models"
)

// IdleMonitor emits an idle event on every check where the user has been
// inactive for longer than the threshold. It never advances the activity
// cursor, so a long absence yields one idle event per check.
type IdleMonitor struct {
	queue     *Queue
	cursor    *Cursor
	window    capture.WindowTitler
	clock     func() time.Time
	logger    *slog.Logger
	threshold time.Duration
	interval  time.Duration
	ticks     atomic.Int64
}

// tick performs a single check at now and reports whether an idle event was
// queued.
func (m *IdleMonitor) tick(now time.Time) bool {
	gap := now.Sub(m.cursor.Last())
	if gap <= m.threshold {
		return false
	}

	m.queue.Push(models.Event{
		Timestamp:   now,
		Type:        models.Idle,
		WindowTitle: m.window.ActiveWindowTitle(),
	})
	m.ticks.Add(1)

	m.logger.Debug("user idle", slog.Duration("inactive", gap))

	return true
}

// Run checks once per interval until ctx is cancelled.
func (m *IdleMonitor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m.tick(m.clock())

		select {
		case <-ctx.Done():
			return
		case <-time.After(m.interval):
		}
	}
}
