// Package tracker runs the capture pipeline: sources feed a throttle, admitted
// notifications are queued, a writer persists them in batches, and an idle
// monitor synthesises idle events while the user is away
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/presence/capture"
	"github.com/ayoisaiah/presence/internal/models"
	"github.com/ayoisaiah/presence/store"
)

const (
	DefaultIdleThreshold = 10 * time.Second
	DefaultMoveInterval  = 100 * time.Millisecond
	DefaultFlushInterval = 500 * time.Millisecond
	DefaultBatchSize     = 100
	DefaultStopTimeout   = 2 * time.Second
)

var (
	ErrBusy = errors.New(
		"tracking is active: stop tracking before clearing data",
	)
	ErrStopTimeout = errors.New(
		"timed out waiting for the final flush: the last batch may be lost",
	)
	errNoStore = errors.New("tracker requires an event store")
)

// Options controls tracker behaviour. Zero values select the defaults.
type Options struct {
	Window         capture.WindowTitler
	Clock          func() time.Time
	Logger         *slog.Logger
	Sources        []capture.Source
	IdleThreshold  time.Duration
	MoveInterval   time.Duration
	FlushInterval  time.Duration
	StopTimeout    time.Duration
	BatchSize      int
	SessionMarkers bool

	// idleInterval is fixed to models.IdleCheckInterval outside tests
	idleInterval time.Duration
}

// Status is a point-in-time view of the pipeline.
type Status struct {
	StartedAt    time.Time
	LastActivity time.Time
	Queued       int
	Written      int64
	Dropped      int64
	IdleEvents   int64
	Running      bool
}

// Tracker owns the lifecycle of the capture pipeline. It implements
// capture.Handler.
type Tracker struct {
	db       store.DB
	window   capture.WindowTitler
	clock    func() time.Time
	logger   *slog.Logger
	queue    *Queue
	cursor   *Cursor
	throttle *Throttle
	writer   *Writer
	idle     *IdleMonitor
	opts     Options

	// mu serialises Start, Stop and ClearData
	mu         sync.Mutex
	running    bool
	startedAt  time.Time
	cancel     context.CancelFunc
	cancelIdle context.CancelFunc
	writerDone chan struct{}
	idleDone   chan struct{}
	sourceDone chan struct{}

	// ingest guards accepting so that no event is queued once Stop has
	// begun the final flush
	ingest    sync.RWMutex
	accepting bool
}

// New validates options and constructs a stopped tracker.
func New(db store.DB, opts Options) (*Tracker, error) {
	if db == nil {
		return nil, errNoStore
	}

	if opts.IdleThreshold <= 0 {
		opts.IdleThreshold = DefaultIdleThreshold
	}

	if opts.MoveInterval <= 0 {
		opts.MoveInterval = DefaultMoveInterval
	}

	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	if opts.StopTimeout <= 0 {
		opts.StopTimeout = DefaultStopTimeout
	}

	if opts.idleInterval <= 0 {
		opts.idleInterval = models.IdleCheckInterval
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	window := opts.Window
	if window == nil {
		window = capture.StaticTitle("")
	}

	queue := &Queue{}
	cursor := &Cursor{}

	t := &Tracker{
		db:       db,
		window:   window,
		clock:    clock,
		logger:   logger,
		queue:    queue,
		cursor:   cursor,
		throttle: NewThrottle(cursor, opts.MoveInterval),
		writer: &Writer{
			db:        db,
			queue:     queue,
			logger:    logger,
			interval:  opts.FlushInterval,
			batchSize: opts.BatchSize,
		},
		idle: &IdleMonitor{
			queue:     queue,
			cursor:    cursor,
			window:    window,
			clock:     clock,
			logger:    logger,
			threshold: opts.IdleThreshold,
			interval:  opts.idleInterval,
		},
		opts: opts,
	}

	return t, nil
}

// Start launches the writer, the idle monitor, and one listener per source.
// Calling Start on a running tracker does nothing.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}

	now := t.clock()

	t.cursor.Touch(now)
	t.startedAt = now

	ctx, cancel := context.WithCancel(ctx)
	idleCtx, cancelIdle := context.WithCancel(ctx)
	t.cancel = cancel
	t.cancelIdle = cancelIdle
	t.writerDone = make(chan struct{})
	t.idleDone = make(chan struct{})
	t.sourceDone = make(chan struct{})

	t.ingest.Lock()
	t.accepting = true
	t.ingest.Unlock()

	if t.opts.SessionMarkers {
		t.record(models.Start, 0, 0, now)
	}

	go func(done chan struct{}) {
		defer close(done)
		t.writer.Run(ctx)
	}(t.writerDone)

	go func(done chan struct{}) {
		defer close(done)
		t.idle.Run(idleCtx)
	}(t.idleDone)

	var sources sync.WaitGroup

	for _, src := range t.opts.Sources {
		sources.Add(1)

		go func(src capture.Source) {
			defer sources.Done()

			if err := src.Listen(ctx, t); err != nil {
				t.logger.Error("capture source stopped", slog.Any("error", err))
			}
		}(src)
	}

	go func(done chan struct{}) {
		sources.Wait()
		close(done)
	}(t.sourceDone)

	t.running = true

	t.logger.Info(
		"tracking started",
		slog.Int("sources", len(t.opts.Sources)),
		slog.Duration("idle_threshold", t.opts.IdleThreshold),
	)

	return nil
}

// Stop halts the idle monitor, detaches the sources, and waits up to the stop
// timeout for the writer to finish its final flush. Nothing is queued after
// the writer has been told to stop. It returns ErrStopTimeout if the writer
// had to be abandoned. Stopping a stopped tracker does nothing.
func (t *Tracker) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return nil
	}

	t.running = false

	timeout := time.NewTimer(t.opts.StopTimeout)
	defer timeout.Stop()

	wait := func(done <-chan struct{}, component string) error {
		select {
		case <-done:
			return nil
		case <-timeout.C:
			t.logger.Warn(
				"abandoning "+component,
				slog.Duration("timeout", t.opts.StopTimeout),
				slog.Int("queued", t.queue.Len()),
			)

			return ErrStopTimeout
		}
	}

	t.cancelIdle()

	if err := wait(t.idleDone, "idle monitor"); err != nil {
		t.cancel()
		return err
	}

	if t.opts.SessionMarkers {
		t.record(models.End, 0, 0, t.clock())
	}

	t.ingest.Lock()
	t.accepting = false
	t.ingest.Unlock()

	t.cancel()

	if err := wait(t.writerDone, "writer"); err != nil {
		return err
	}

	t.logger.Info(
		"tracking stopped",
		slog.Int64("written", t.writer.written.Load()),
		slog.Int64("dropped", t.writer.dropped.Load()),
	)

	return nil
}

// Running reports whether the pipeline is active.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.running
}

// SourcesDone is closed once every source of the current run has returned,
// e.g. because a replay stream was exhausted. It is nil before the first
// Start.
func (t *Tracker) SourcesDone() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.sourceDone
}

// ClearData deletes every stored event. It is rejected with ErrBusy while
// tracking.
func (t *Tracker) ClearData() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return ErrBusy
	}

	return t.db.Clear()
}

// Status returns a snapshot of the pipeline counters.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Status{
		StartedAt:    t.startedAt,
		LastActivity: t.cursor.Last(),
		Queued:       t.queue.Len(),
		Written:      t.writer.written.Load(),
		Dropped:      t.writer.dropped.Load(),
		IdleEvents:   t.idle.ticks.Load(),
		Running:      t.running,
	}
}

// record queues an event with the current window title.
func (t *Tracker) record(kind models.EventType, x, y int, now time.Time) {
	t.queue.Push(models.Event{
		Timestamp:   now,
		Type:        kind,
		X:           x,
		Y:           y,
		WindowTitle: t.window.ActiveWindowTitle(),
	})
}

// ingestActivity admits and queues a user notification.
func (t *Tracker) ingestActivity(kind models.EventType, x, y int) {
	t.ingest.RLock()
	defer t.ingest.RUnlock()

	if !t.accepting {
		return
	}

	now := t.clock()

	if !t.throttle.Admit(kind, now) {
		return
	}

	t.record(kind, x, y, now)
}

func (t *Tracker) OnMove(x, y int) {
	t.ingestActivity(models.Move, x, y)
}

// OnClick records button presses only; releases are ignored.
func (t *Tracker) OnClick(x, y int, _ capture.Button, pressed bool) {
	if !pressed {
		return
	}

	t.ingestActivity(models.Click, x, y)
}

func (t *Tracker) OnKeyPress(_ string) {
	t.ingestActivity(models.Key, 0, 0)
}
