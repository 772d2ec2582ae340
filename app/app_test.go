package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/presence/capture"
	"github.com/ayoisaiah/presence/internal/config"
	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/store"
)

const replayFixture = `{"type":"key","key":"a","window":"Editor"}
{"type":"click","x":10,"y":20,"button":"left"}
{"type":"click","x":10,"y":20,"button":"left","pressed":false}
{"type":"key","key":"b"}
{"type":"move","x":300,"y":400}
{"type":"key","key":"c"}
{"type":"click","x":30,"y":40}
`

type testEnv struct {
	dir    string
	args   []string
	replay string
}

func newTestEnv(t *testing.T, driver string) *testEnv {
	t.Helper()

	dir := t.TempDir()

	t.Setenv("NO_COLOR", "1")
	t.Setenv("PRESENCE_LOG_FILE", filepath.Join(dir, "log", "presence.log"))

	replay := filepath.Join(dir, "session.jsonl")
	require.NoError(t, os.WriteFile(replay, []byte(replayFixture), 0o600))

	return &testEnv{
		dir:    dir,
		replay: replay,
		args: []string{
			"presence",
			"--config", filepath.Join(dir, "config.yml"),
			"--driver", driver,
			"--db", filepath.Join(dir, "events"),
		},
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer

	a := Get()
	a.Writer = &buf
	a.ErrWriter = io.Discard

	err := a.Run(append(append([]string{}, e.args...), args...))

	return buf.String(), err
}

func (e *testEnv) metrics(t *testing.T) *models.Metrics {
	t.Helper()

	out, err := e.run(t, "stats", "--json")
	require.NoError(t, err)

	var m *models.Metrics
	require.NoError(t, json.Unmarshal([]byte(out), &m))

	return m
}

func TestTrackThenStats(t *testing.T) {
	for _, driver := range []string{store.DriverBolt, store.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			e := newTestEnv(t, driver)

			_, err := e.run(t, "track", "--replay", e.replay, "--no-tui")
			require.NoError(t, err)

			m := e.metrics(t)
			require.NotNil(t, m)

			assert.Equal(t, 5, m.ActivityLevel)
			require.NotEmpty(t, m.TopWindows)
			assert.Equal(t, "Editor", m.TopWindows[0].Title)
			assert.InDelta(t, 0, m.IdleTime, 1e-9)
		})
	}
}

func TestTrackAppendsAcrossRuns(t *testing.T) {
	e := newTestEnv(t, store.DriverBolt)

	for range 2 {
		_, err := e.run(t, "track", "--replay", e.replay, "--no-tui")
		require.NoError(t, err)
	}

	assert.Equal(t, 10, e.metrics(t).ActivityLevel)
}

func TestQueryCommands(t *testing.T) {
	e := newTestEnv(t, store.DriverBolt)

	_, err := e.run(t, "track", "--replay", e.replay, "--no-tui", "--no-markers")
	require.NoError(t, err)

	out, err := e.run(t, "heatmap", "--json")
	require.NoError(t, err)

	var points []models.Point
	require.NoError(t, json.Unmarshal([]byte(out), &points))
	assert.Contains(t, points, models.Point{X: 10, Y: 20})
	assert.Contains(t, points, models.Point{X: 30, Y: 40})

	out, err = e.run(t, "windows", "--json")
	require.NoError(t, err)

	var durations []models.WindowDuration
	require.NoError(t, json.Unmarshal([]byte(out), &durations))
	require.NotEmpty(t, durations)
	assert.Equal(t, "Editor", durations[0].Title)

	out, err = e.run(t, "activity", "--json")
	require.NoError(t, err)

	var buckets []models.ActivityBucket
	require.NoError(t, json.Unmarshal([]byte(out), &buckets))

	total := 0
	for _, b := range buckets {
		total += b.Count
	}

	// 3 keys, 2 clicks and possibly the move
	assert.GreaterOrEqual(t, total, 5)

	out, err = e.run(t, "windows")
	require.NoError(t, err)
	assert.Contains(t, out, "Editor")
}

func TestClear(t *testing.T) {
	e := newTestEnv(t, store.DriverBolt)

	_, err := e.run(t, "track", "--replay", e.replay, "--no-tui")
	require.NoError(t, err)
	require.NotNil(t, e.metrics(t))

	_, err = e.run(t, "clear", "--yes")
	require.NoError(t, err)

	out, err := e.run(t, "stats", "--json")
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestClearDataConfirmation(t *testing.T) {
	db, err := store.NewClient(store.DriverBolt, filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)

	defer db.Close()

	require.NoError(t, db.InsertOne(models.Event{Type: models.Key}))

	logger := slog.New(slog.DiscardHandler)

	declined := func() (bool, error) { return false, nil }
	require.NoError(t, clearData(db, logger, false, declined))

	events, err := db.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 1)

	errPrompt := errors.New("no terminal")
	failing := func() (bool, error) { return false, errPrompt }
	assert.ErrorIs(t, clearData(db, logger, false, failing), errPrompt)

	accepted := func() (bool, error) { return true, nil }
	require.NoError(t, clearData(db, logger, false, accepted))

	events, err = db.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestInvalidConfig(t *testing.T) {
	e := newTestEnv(t, "postgres")

	_, err := e.run(t, "stats")
	assert.Error(t, err)
}

func TestBuildSource(t *testing.T) {
	e := &env{cfg: &config.Config{
		Capture: config.CaptureConfig{
			Source:     config.SourceReplay,
			ReplayFile: config.Stdin,
			WindowCmd:  `echo "Editor"`,
		},
	}}

	src, titler, closer, err := e.buildSource(strings.NewReader(""), 0)
	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, &capture.ReplaySource{}, src)
	assert.Equal(t, "Editor", titler.ActiveWindowTitle())

	e.cfg.Capture.WindowCmd = `"unterminated`
	_, _, _, err = e.buildSource(strings.NewReader(""), 0)
	assert.Error(t, err)

	e.cfg.Capture = config.CaptureConfig{Source: config.SourceSynthetic, SyntheticSeed: 1}
	src, titler, _, err = e.buildSource(nil, 10)
	require.NoError(t, err)
	assert.IsType(t, &capture.SyntheticSource{}, src)
	assert.NotEqual(t, models.UnknownWindow, titler.ActiveWindowTitle())

	e.cfg.Capture = config.CaptureConfig{Source: config.SourceReplay, ReplayFile: "/does/not/exist"}
	_, _, _, err = e.buildSource(nil, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEditConfigWritesDefaults(t *testing.T) {
	e := newTestEnv(t, store.DriverBolt)
	t.Setenv("VISUAL", "true")

	_, err := e.run(t, "edit-config")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(e.dir, "config.yml"))
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "vim", firstNonEmptyString("", "vim", "nano"))
	assert.Equal(t, "", firstNonEmptyString("", ""))
}
