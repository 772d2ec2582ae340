package capture

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/presence/internal/models"
)

type call struct {
	kind    string
	key     string
	button  Button
	x, y    int
	pressed bool
}

type recorder struct {
	mu    sync.Mutex
	calls []call
}

func (r *recorder) OnMove(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{kind: "move", x: x, y: y})
}

func (r *recorder) OnClick(x, y int, button Button, pressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{kind: "click", x: x, y: y, button: button, pressed: pressed})
}

func (r *recorder) OnKeyPress(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{kind: "key", key: key})
}

func TestReplaySource(t *testing.T) {
	stream := `{"type":"move","x":10,"y":20,"window":"Editor"}
{"type":"click","x":11,"y":21,"button":"right","pressed":false}
{"type":"click","x":12,"y":22}
{"type":"key","key":"a","window":"Browser"}
`
	src := NewReplaySource(strings.NewReader(stream))
	assert.Equal(t, models.UnknownWindow, src.ActiveWindowTitle())

	rec := &recorder{}
	require.NoError(t, src.Listen(context.Background(), rec))

	assert.Equal(t, []call{
		{kind: "move", x: 10, y: 20},
		{kind: "click", x: 11, y: 21, button: ButtonRight, pressed: false},
		{kind: "click", x: 12, y: 22, button: ButtonLeft, pressed: true},
		{kind: "key", key: "a"},
	}, rec.calls)
	assert.Equal(t, "Browser", src.ActiveWindowTitle())
}

func TestReplaySourceErrors(t *testing.T) {
	cases := map[string]string{
		"unknown type":   `{"type":"scroll"}`,
		"malformed json": `{"type":`,
		"bad after":      `{"type":"key","after":"soon"}`,
	}

	for name, stream := range cases {
		t.Run(name, func(t *testing.T) {
			src := NewReplaySource(strings.NewReader(stream))

			err := src.Listen(context.Background(), &recorder{})
			assert.ErrorContains(t, err, "replay record 1")
		})
	}
}

func TestReplaySourceStopsOnCancel(t *testing.T) {
	src := NewReplaySource(strings.NewReader(`{"type":"key","key":"a","after":"1h"}`))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- src.Listen(ctx, &recorder{})
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("replay source did not detach after cancel")
	}
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]call(nil), r.calls...)
}

func TestReplaySourceResumesAfterDetach(t *testing.T) {
	stream := `{"type":"key","key":"a"}
{"type":"key","key":"b","after":"200ms"}
{"type":"key","key":"c"}
`
	src := NewReplaySource(strings.NewReader(stream))
	rec := &recorder{}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- src.Listen(ctx, rec)
	}()

	assert.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	require.NoError(t, src.Listen(context.Background(), rec))

	assert.Equal(t, []call{
		{kind: "key", key: "a"},
		{kind: "key", key: "b"},
		{kind: "key", key: "c"},
	}, rec.snapshot())
}

func TestReplaySourceSerialisesListen(t *testing.T) {
	var stream strings.Builder
	for range 50 {
		stream.WriteString(`{"type":"key","key":"a"}` + "\n")
	}

	src := NewReplaySource(strings.NewReader(stream.String()))
	rec := &recorder{}

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, src.Listen(context.Background(), rec))
		}()
	}

	wg.Wait()
	assert.Len(t, rec.snapshot(), 50)
}

func TestTitlers(t *testing.T) {
	assert.Equal(t, models.UnknownWindow, StaticTitle("  ").ActiveWindowTitle())
	assert.Equal(t, "Terminal", StaticTitle("Terminal").ActiveWindowTitle())

	titlers := Titlers{nil, StaticTitle(""), StaticTitle("Editor"), StaticTitle("Other")}
	assert.Equal(t, "Editor", titlers.ActiveWindowTitle())
	assert.Equal(t, models.UnknownWindow, Titlers{}.ActiveWindowTitle())
}

func TestCommandTitle(t *testing.T) {
	titler, err := NewCommandTitle(`echo "My Editor"`)
	require.NoError(t, err)
	assert.Equal(t, "My Editor", titler.ActiveWindowTitle())

	missing, err := NewCommandTitle("presence-no-such-binary --title")
	require.NoError(t, err)
	assert.Equal(t, models.UnknownWindow, missing.ActiveWindowTitle())

	_, err = NewCommandTitle(`echo "unterminated`)
	assert.Error(t, err)

	_, err = NewCommandTitle("   ")
	assert.Error(t, err)
}

func TestSyntheticSource(t *testing.T) {
	src := NewSyntheticSource(SyntheticOptions{
		Rate:  time.Millisecond,
		Seed:  42,
		Limit: 200,
	})

	rec := &recorder{}
	require.NoError(t, src.Listen(context.Background(), rec))

	assert.NotEmpty(t, rec.calls)
	assert.NotEqual(t, models.UnknownWindow, src.ActiveWindowTitle())

	for _, c := range rec.calls {
		assert.GreaterOrEqual(t, c.x, 0)
		assert.Less(t, c.x, syntheticScreenW)
		assert.GreaterOrEqual(t, c.y, 0)
		assert.Less(t, c.y, syntheticScreenH)
	}
}
