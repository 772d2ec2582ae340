package analyzer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/store"
)

type sliceReader []models.Event

func (r sliceReader) ReadAll() ([]models.Event, error) {
	return append([]models.Event(nil), r...), nil
}

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func at(sec float64, kind models.EventType, title string) models.Event {
	return models.Event{
		Timestamp:   epoch.Add(time.Duration(sec * float64(time.Second))),
		Type:        kind,
		WindowTitle: title,
	}
}

func TestCalculateMetricsFixture(t *testing.T) {
	a := New(sliceReader{
		at(0, models.Start, "App"),
		at(10, models.Move, "App"),
		at(60, models.Idle, "App"),
		at(120, models.End, "App"),
	})

	m, err := a.CalculateMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, 2.0, m.TotalTime)
	assert.Equal(t, 0.08, m.IdleTime)
	assert.Equal(t, 1.92, m.FocusTime)
	assert.Equal(t, 0, m.ActivityLevel)
	assert.Equal(t, []models.WindowCount{{Title: "App", Count: 4}}, m.TopWindows)
}

func TestCalculateMetricsEmpty(t *testing.T) {
	m, err := New(sliceReader{}).CalculateMetrics()

	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestIdleEstimate(t *testing.T) {
	events := sliceReader{at(0, models.Key, "Editor")}

	for i := range 12 {
		events = append(events, at(float64(15+5*i), models.Idle, "Editor"))
	}

	m, err := New(events).CalculateMetrics()
	require.NoError(t, err)

	// twelve idle checks of five seconds each
	assert.Equal(t, 1.0, m.IdleTime)
	assert.Equal(t, 0.17, m.FocusTime)
	assert.Equal(t, 1.17, m.TotalTime)
	assert.Equal(t, 1, m.ActivityLevel)
}

func TestFocusNeverNegative(t *testing.T) {
	// idle events bunched together estimate more idle time than elapsed
	m, err := New(sliceReader{
		at(0, models.Idle, "A"),
		at(1, models.Idle, "A"),
		at(2, models.Idle, "A"),
	}).CalculateMetrics()
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.FocusTime)
	assert.Equal(t, 0.25, m.IdleTime)
}

func TestActivityLevelCountsClicksAndKeys(t *testing.T) {
	m, err := New(sliceReader{
		at(0, models.Move, "A"),
		at(1, models.Click, "A"),
		at(2, models.Key, "A"),
		at(3, models.Key, "A"),
		at(4, models.Idle, "A"),
		at(5, "custom", "A"),
	}).CalculateMetrics()
	require.NoError(t, err)

	assert.Equal(t, 3, m.ActivityLevel)
}

func TestTopWindows(t *testing.T) {
	m, err := New(sliceReader{
		at(0, models.Key, models.UnknownWindow),
		at(1, models.Key, models.UnknownWindow),
		at(2, models.Key, models.UnknownWindow),
		at(3, models.Key, models.UnknownWindow),
		at(4, models.Key, "Mail"),
		at(5, models.Key, "Docs"),
		at(6, models.Key, "Terminal"),
		at(7, models.Key, "Chat"),
		at(8, models.Key, "Chat"),
		at(9, models.Key, "Terminal"),
	}).CalculateMetrics()
	require.NoError(t, err)

	// Terminal and Chat tie on two; Mail and Docs tie on one and Mail was seen first
	want := []models.WindowCount{
		{Title: "Terminal", Count: 2},
		{Title: "Chat", Count: 2},
		{Title: "Mail", Count: 1},
	}

	if diff := cmp.Diff(want, m.TopWindows); diff != "" {
		t.Errorf("TopWindows mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowDurationsGapFiltering(t *testing.T) {
	a := New(sliceReader{
		at(0, models.Key, "A"),
		at(20, models.Key, "A"),
		at(51, models.Key, "B"),
	})

	got, err := a.WindowDurations()
	require.NoError(t, err)

	want := []models.WindowDuration{
		{Title: "A", Duration: 20 * time.Second},
		{Title: "B", Duration: 0},
	}

	assert.Equal(t, want, got)
	assert.InDelta(t, 0.33, got[0].Minutes(), 0.005)
}

func TestWindowDurationsSortsByTimestamp(t *testing.T) {
	// arrival order differs from chronological order
	a := New(sliceReader{
		at(30, models.Key, "B"),
		at(0, models.Key, "A"),
		at(10, models.Idle, "A"),
		at(40, models.Key, "B"),
	})

	got, err := a.WindowDurations()
	require.NoError(t, err)

	// A: 0→10 and 10→30; B: 30→40, last event 0
	assert.Equal(t, []models.WindowDuration{
		{Title: "A", Duration: 30 * time.Second},
		{Title: "B", Duration: 10 * time.Second},
	}, got)
}

func TestWindowDurationsBoundary(t *testing.T) {
	// exactly 30s still counts, anything longer is a gap
	got, err := New(sliceReader{
		at(0, models.Key, "A"),
		at(30, models.Key, "B"),
		at(60.5, models.Key, "C"),
	}).WindowDurations()
	require.NoError(t, err)

	assert.Equal(t, []models.WindowDuration{
		{Title: "A", Duration: 30 * time.Second},
		{Title: "B", Duration: 0},
		{Title: "C", Duration: 0},
	}, got)
}

func TestWindowDurationsTiesUseNaturalOrder(t *testing.T) {
	got, err := New(sliceReader{
		at(0, models.Key, "tab 10"),
		at(5, models.Key, "tab 2"),
		at(10, models.Key, "tab 1"),
	}).WindowDurations()
	require.NoError(t, err)

	titles := make([]string, 0, len(got))
	for _, d := range got {
		titles = append(titles, d.Title)
	}

	assert.Equal(t, []string{"tab 2", "tab 10", "tab 1"}, titles)
}

func TestWindowDurationsEmpty(t *testing.T) {
	got, err := New(sliceReader{}).WindowDurations()

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHeatmapData(t *testing.T) {
	move := at(0, models.Move, "A")
	move.X, move.Y = 10, 20

	click := at(1, models.Click, "A")
	click.X, click.Y = 10, 20

	points, err := New(sliceReader{
		move,
		at(2, models.Key, "A"),
		click,
		at(3, models.Idle, "A"),
	}).HeatmapData()
	require.NoError(t, err)

	// repeats are kept
	assert.Equal(t, []models.Point{{X: 10, Y: 20}, {X: 10, Y: 20}}, points)
}

func TestClearThenRead(t *testing.T) {
	db, err := store.NewBoltClient(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.InsertBatch([]models.Event{
		at(0, models.Key, "A"),
		at(10, models.Key, "A"),
	}))

	a := New(db)

	m, err := a.CalculateMetrics()
	require.NoError(t, err)
	require.NotNil(t, m)

	require.NoError(t, db.Clear())

	events, err := db.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, events)

	m, err = a.CalculateMetrics()
	require.NoError(t, err)
	assert.Nil(t, m)
}
