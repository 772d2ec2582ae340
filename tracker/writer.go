package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ayoisaiah/presence/store"
)

// WriteError reports a batch that the store rejected. The batch is not
// retried.
type WriteError struct {
	Err   error
	Count int
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write batch of %d events: %v", e.Count, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Writer periodically drains the queue into the store.
type Writer struct {
	db        store.DB
	queue     *Queue
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
	written   atomic.Int64
	dropped   atomic.Int64
}

// flush writes at most one batch. It returns the number of events drained
// and a *WriteError if the store rejected them.
func (w *Writer) flush() (int, error) {
	batch := w.queue.Drain(w.batchSize)
	if len(batch) == 0 {
		return 0, nil
	}

	var err error
	if len(batch) == 1 {
		err = w.db.InsertOne(batch[0])
	} else {
		err = w.db.InsertBatch(batch)
	}

	if err != nil {
		w.dropped.Add(int64(len(batch)))
		return len(batch), &WriteError{Count: len(batch), Err: err}
	}

	w.written.Add(int64(len(batch)))

	return len(batch), nil
}

// flushLogged performs one flush and discards a failed batch after logging it.
func (w *Writer) flushLogged() int {
	n, err := w.flush()
	if err != nil {
		w.logger.Error("discarding batch", slog.Int("events", n), slog.Any("error", err))
	}

	return n
}

// drain flushes until the queue is empty.
func (w *Writer) drain() {
	for w.flushLogged() > 0 {
	}
}

// Run flushes one batch per interval until ctx is cancelled, then drains
// whatever is still queued before returning.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		default:
		}

		w.flushLogged()

		select {
		case <-ctx.Done():
		case <-time.After(w.interval):
		}
	}
}
