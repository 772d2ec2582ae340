// Package models defines the records captured by the tracker and the values
// derived from them by the analyzer
package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/ayoisaiah/presence/internal/timeutil"
)

// EventType tags a captured event. The store does not enforce the set below.
type EventType string

const (
	Move  EventType = "move"
	Click EventType = "click"
	Key   EventType = "key"
	Idle  EventType = "idle"
	Start EventType = "start"
	End   EventType = "end"
)

// UnknownWindow is recorded when the foreground window cannot be determined.
const UnknownWindow = "Unknown"

// IdleCheckInterval is the cadence of the idle monitor. The analyzer credits
// each stored idle event with exactly this much idle time, so the two must
// never diverge.
const IdleCheckInterval = 5 * time.Second

// Event is a single immutable capture record.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"event_type"`
	WindowTitle string    `json:"window_title"`
	// X and Y are screen coordinates for move and click events, 0 otherwise
	X int `json:"x"`
	Y int `json:"y"`
}

// Unix returns the event timestamp in fractional seconds since the epoch.
func (e *Event) Unix() float64 {
	return float64(e.Timestamp.UnixNano()) / float64(time.Second)
}

// HasPoint reports whether the event carries pointer coordinates.
func (e *Event) HasPoint() bool {
	return e.Type == Move || e.Type == Click
}

// FromUnix converts fractional epoch seconds to a time value.
func FromUnix(ts float64) time.Time {
	sec, frac := math.Modf(ts)

	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}

// WindowCount is the number of events recorded against a window title.
type WindowCount struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

// Metrics summarises the stored session. Times are in minutes.
type Metrics struct {
	TopWindows    []WindowCount `json:"top_windows"`
	TotalTime     float64       `json:"total_time"`
	IdleTime      float64       `json:"idle_time"`
	FocusTime     float64       `json:"focus_time"`
	ActivityLevel int           `json:"activity_level"`
}

// WindowDuration is the attended time attributed to a window title.
type WindowDuration struct {
	Title    string        `json:"title"`
	Duration time.Duration `json:"duration"`
}

// Minutes returns the duration in (unrounded) minutes.
func (w WindowDuration) Minutes() float64 {
	return w.Duration.Minutes()
}

// MarshalJSON adds the duration in minutes, rounded to 2 decimal places,
// alongside the raw nanosecond count.
func (w WindowDuration) MarshalJSON() ([]byte, error) {
	type plain WindowDuration

	return json.Marshal(struct {
		plain
		Minutes float64 `json:"minutes"`
	}{
		plain:   plain(w),
		Minutes: timeutil.Minutes(w.Duration),
	})
}

// Point is a pointer position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ActivityBucket counts the events recorded within one minute.
type ActivityBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// DensityCell counts the pointer samples that fall in a square screen cell
// whose top-left corner is (X, Y).
type DensityCell struct {
	X     int `json:"x"`
	Y     int `json:"y"`
	Count int `json:"count"`
}
