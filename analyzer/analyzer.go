// Package analyzer reconstructs attention metrics from the stored event log.
// Every query re-reads the whole log; nothing is cached between calls.
package analyzer

import (
	"cmp"
	"slices"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/internal/timeutil"
	"github.com/ayoisaiah/presence/store"
)

const (
	// attentionGap is the longest span between consecutive events that is
	// still attributed to the window of the earlier event
	attentionGap = 30 * time.Second

	topWindowCount  = 3
	defaultCellSize = 100
)

// Analyzer computes derived views over an event log.
type Analyzer struct {
	db store.Reader
}

// New returns an analyzer reading from db.
func New(db store.Reader) *Analyzer {
	return &Analyzer{db: db}
}

// sortedEvents returns the log ordered by timestamp. Events recorded at the
// same instant keep their insertion order.
func (a *Analyzer) sortedEvents() ([]models.Event, error) {
	events, err := a.db.ReadAll()
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(events, func(x, y models.Event) int {
		return x.Timestamp.Compare(y.Timestamp)
	})

	return events, nil
}

// CalculateMetrics summarises the session. It returns nil when the log is
// empty.
//
// Idle time is an estimate: each stored idle event stands for one idle-check
// interval.
func (a *Analyzer) CalculateMetrics() (*models.Metrics, error) {
	events, err := a.db.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	first, last := events[0].Timestamp, events[0].Timestamp

	var idleEvents, activity int

	for i := range events {
		e := &events[i]

		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}

		if e.Timestamp.After(last) {
			last = e.Timestamp
		}

		switch e.Type {
		case models.Idle:
			idleEvents++
		case models.Click, models.Key:
			activity++
		}
	}

	total := last.Sub(first)
	idle := time.Duration(idleEvents) * models.IdleCheckInterval
	focus := max(0, total-idle)

	return &models.Metrics{
		TotalTime:     timeutil.Minutes(total),
		IdleTime:      timeutil.Minutes(idle),
		FocusTime:     timeutil.Minutes(focus),
		ActivityLevel: activity,
		TopWindows:    topWindows(events, topWindowCount),
	}, nil
}

// topWindows returns the n most frequent known window titles. Ties keep the
// order in which titles first appear in the log.
func topWindows(events []models.Event, n int) []models.WindowCount {
	index := make(map[string]int)

	var counts []models.WindowCount

	for i := range events {
		title := events[i].WindowTitle
		if title == models.UnknownWindow {
			continue
		}

		j, ok := index[title]
		if !ok {
			j = len(counts)
			index[title] = j
			counts = append(counts, models.WindowCount{Title: title})
		}

		counts[j].Count++
	}

	slices.SortStableFunc(counts, func(x, y models.WindowCount) int {
		return cmp.Compare(y.Count, x.Count)
	})

	if len(counts) > n {
		counts = counts[:n]
	}

	return counts
}

// WindowDurations attributes the time until the next event to the window of
// each event and sums it per title. Spans longer than the attention gap are
// dropped, as is the final event's span. The result is sorted by duration,
// longest first.
func (a *Analyzer) WindowDurations() ([]models.WindowDuration, error) {
	events, err := a.sortedEvents()
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	index := make(map[string]int)

	var durations []models.WindowDuration

	for i := range events {
		var span time.Duration

		if i+1 < len(events) {
			span = events[i+1].Timestamp.Sub(events[i].Timestamp)
		}

		if span > attentionGap {
			span = 0
		}

		title := events[i].WindowTitle

		j, ok := index[title]
		if !ok {
			j = len(durations)
			index[title] = j
			durations = append(durations, models.WindowDuration{Title: title})
		}

		durations[j].Duration += span
	}

	slices.SortFunc(durations, func(x, y models.WindowDuration) int {
		if c := cmp.Compare(y.Duration, x.Duration); c != 0 {
			return c
		}

		if natural.Less(x.Title, y.Title) {
			return -1
		}

		if natural.Less(y.Title, x.Title) {
			return 1
		}

		return 0
	})

	return durations, nil
}

// HeatmapData returns the position of every move and click event. Repeated
// positions are kept since density is the signal.
func (a *Analyzer) HeatmapData() ([]models.Point, error) {
	events, err := a.db.ReadAll()
	if err != nil {
		return nil, err
	}

	var points []models.Point

	for i := range events {
		if !events[i].HasPoint() {
			continue
		}

		points = append(points, models.Point{X: events[i].X, Y: events[i].Y})
	}

	return points, nil
}
