package tracker

import (
	"sync"

	"github.com/ayoisaiah/presence/internal/models"
)

// Queue is an unbounded FIFO shared by every producer and the batch writer.
type Queue struct {
	items []models.Event
	mu    sync.Mutex
}

// Push appends an event. It never blocks on the consumer.
func (q *Queue) Push(e models.Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()
}

// Drain removes and returns up to limit events from the front of the queue.
func (q *Queue) Drain(limit int) []models.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := min(limit, len(q.items))
	if n <= 0 {
		return nil
	}

	batch := make([]models.Event, n)
	copy(batch, q.items)

	q.items = q.items[n:]
	if len(q.items) == 0 {
		// release the backing array once fully drained
		q.items = nil
	}

	return batch
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}
