package tracker

import (
	"errors"
	"sync"
	"time"

	"github.com/ayoisaiah/presence/internal/models"
)

var errStoreDown = errors.New("store down")

// memStore is an in-memory store.DB that can be told to fail or block.
type memStore struct {
	block   chan struct{}
	events  []models.Event
	batches []int
	mu      sync.Mutex
	fail    bool
	singles int
}

func (m *memStore) insert(events []models.Event) error {
	if m.block != nil {
		<-m.block
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail {
		return errStoreDown
	}

	m.events = append(m.events, events...)
	m.batches = append(m.batches, len(events))

	return nil
}

func (m *memStore) InsertOne(e models.Event) error {
	m.mu.Lock()
	m.singles++
	m.mu.Unlock()

	return m.insert([]models.Event{e})
}

func (m *memStore) InsertBatch(events []models.Event) error {
	return m.insert(events)
}

func (m *memStore) ReadAll() ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]models.Event(nil), m.events...), nil
}

func (m *memStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = nil

	return nil
}

func (m *memStore) Close() error {
	return nil
}

func (m *memStore) setFail(fail bool) {
	m.mu.Lock()
	m.fail = fail
	m.mu.Unlock()
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func makeEvents(n int) []models.Event {
	events := make([]models.Event, n)

	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := range events {
		events[i] = models.Event{
			Timestamp:   start.Add(time.Duration(i) * time.Millisecond),
			Type:        models.Key,
			WindowTitle: "Editor",
		}
	}

	return events
}
