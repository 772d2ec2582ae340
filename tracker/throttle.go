package tracker

import (
	"sync"
	"time"

	"github.com/ayoisaiah/presence/internal/models"
)

// Cursor holds the time of the last genuine user activity. It is shared by
// the throttle, which advances it, and the idle monitor, which only reads it.
type Cursor struct {
	last time.Time
	mu   sync.Mutex
}

// Touch records activity at t.
func (c *Cursor) Touch(t time.Time) {
	c.mu.Lock()
	c.last = t
	c.mu.Unlock()
}

// Last returns the time of the last recorded activity.
func (c *Cursor) Last() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.last
}

// advanceIf records activity at now only when at least gap has elapsed since
// the last activity. Check and update happen under one lock so concurrent
// producers cannot both slip through the same window.
func (c *Cursor) advanceIf(now time.Time, gap time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now.Sub(c.last) < gap {
		return false
	}

	c.last = now

	return true
}

// Throttle limits pointer-move notifications to one per interval. Clicks and
// key presses always pass. Every admitted notification counts as activity.
type Throttle struct {
	cursor   *Cursor
	interval time.Duration
}

// NewThrottle returns a throttle that advances cursor.
func NewThrottle(cursor *Cursor, interval time.Duration) *Throttle {
	return &Throttle{cursor: cursor, interval: interval}
}

// Admit reports whether a notification of the given kind at now should become
// an event.
func (t *Throttle) Admit(kind models.EventType, now time.Time) bool {
	if kind == models.Move {
		return t.cursor.advanceIf(now, t.interval)
	}

	t.cursor.Touch(now)

	return true
}
