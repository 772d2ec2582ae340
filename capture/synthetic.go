package capture

import (
	"context"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/ayoisaiah/presence/internal/models"
)

const (
	defaultSyntheticRate = 20 * time.Millisecond
	syntheticScreenW     = 1920
	syntheticScreenH     = 1080
	syntheticStep        = 40
	syntheticWindows     = 5
)

// SyntheticOptions configure the synthetic source.
type SyntheticOptions struct {
	// Rate is the delay between generated notifications
	Rate time.Duration
	// Seed makes the sequence reproducible. 0 picks a random seed
	Seed uint64
	// Limit stops the source after this many notifications. 0 never stops
	Limit int
}

// SyntheticSource generates plausible pointer and keyboard traffic across a
// handful of fake application windows. It stands in for a native input hook
// on platforms without one.
type SyntheticSource struct {
	faker   *gofakeit.Faker
	windows []string
	opts    SyntheticOptions

	mu     sync.Mutex
	window string
}

// NewSyntheticSource builds a source from opts.
func NewSyntheticSource(opts SyntheticOptions) *SyntheticSource {
	if opts.Rate <= 0 {
		opts.Rate = defaultSyntheticRate
	}

	faker := gofakeit.New(opts.Seed)

	windows := make([]string, syntheticWindows)
	for i := range windows {
		windows[i] = faker.AppName()
	}

	return &SyntheticSource{
		faker:   faker,
		windows: windows,
		opts:    opts,
		window:  windows[0],
	}
}

func (s *SyntheticSource) ActiveWindowTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window == "" {
		return models.UnknownWindow
	}

	return s.window
}

// Listen emits notifications until ctx is cancelled or the limit is reached.
func (s *SyntheticSource) Listen(ctx context.Context, h Handler) error {
	x, y := syntheticScreenW/2, syntheticScreenH/2

	ticker := time.NewTicker(s.opts.Rate)
	defer ticker.Stop()

	for n := 0; s.opts.Limit == 0 || n < s.opts.Limit; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		roll := s.faker.IntRange(1, 100)

		switch {
		case roll <= 2:
			s.mu.Lock()
			s.window = s.faker.RandomString(s.windows)
			s.mu.Unlock()
		case roll <= 80:
			x = clamp(x+s.faker.IntRange(-syntheticStep, syntheticStep), 0, syntheticScreenW-1)
			y = clamp(y+s.faker.IntRange(-syntheticStep, syntheticStep), 0, syntheticScreenH-1)
			h.OnMove(x, y)
		case roll <= 88:
			h.OnClick(x, y, ButtonLeft, true)
			h.OnClick(x, y, ButtonLeft, false)
		default:
			h.OnKeyPress(s.faker.Letter())
		}
	}

	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
