package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/ayoisaiah/presence/internal/models"
)

// Record is one line of a replay stream.
//
//	{"type":"move","x":10,"y":20}
//	{"type":"click","x":10,"y":20,"button":"left","pressed":true,"window":"Editor"}
//	{"type":"key","key":"a","after":"250ms"}
type Record struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	Button  Button `json:"button,omitempty"`
	Window  string `json:"window,omitempty"`
	After   string `json:"after,omitempty"`
	X       int    `json:"x,omitempty"`
	Y       int    `json:"y,omitempty"`
	Pressed *bool  `json:"pressed,omitempty"`
}

var errUnknownRecord = errors.New("unknown replay record type")

// ReplaySource delivers notifications decoded from newline-delimited JSON.
// Each record may carry the title of the window it happened in, which the
// source then reports through ActiveWindowTitle. Listen may be called again
// after a detach and resumes where the previous call stopped.
type ReplaySource struct {
	dec *json.Decoder

	// listening serialises Listen calls and guards line and pending
	listening sync.Mutex
	line      int
	// pending is a record whose delay was interrupted by a detach
	pending *Record

	mu     sync.Mutex
	window string
}

// NewReplaySource reads records from r.
func NewReplaySource(r io.Reader) *ReplaySource {
	return &ReplaySource{dec: json.NewDecoder(r)}
}

func (s *ReplaySource) ActiveWindowTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.window == "" {
		return models.UnknownWindow
	}

	return s.window
}

func (s *ReplaySource) setWindow(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	s.mu.Lock()
	s.window = title
	s.mu.Unlock()
}

// next returns the interrupted record if there is one, else decodes the
// following record. It returns io.EOF once the stream is exhausted.
func (s *ReplaySource) next() (*Record, error) {
	if rec := s.pending; rec != nil {
		s.pending = nil
		return rec, nil
	}

	var rec Record

	err := s.dec.Decode(&rec)
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	s.line++

	if err != nil {
		return nil, fmt.Errorf("replay record %d: %w", s.line, err)
	}

	return &rec, nil
}

// Listen returns nil once the stream is exhausted or ctx is cancelled. A
// second concurrent call waits for the first to return.
func (s *ReplaySource) Listen(ctx context.Context, h Handler) error {
	s.listening.Lock()
	defer s.listening.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		rec, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if rec.After != "" {
			wait, err := time.ParseDuration(rec.After)
			if err != nil {
				return fmt.Errorf("replay record %d: invalid after: %w", s.line, err)
			}

			select {
			case <-ctx.Done():
				s.pending = rec
				return nil
			case <-time.After(wait):
			}
		}

		s.setWindow(rec.Window)

		if err := deliver(h, rec); err != nil {
			return fmt.Errorf("replay record %d: %w", s.line, err)
		}
	}
}

func deliver(h Handler, rec *Record) error {
	switch models.EventType(rec.Type) {
	case models.Move:
		h.OnMove(rec.X, rec.Y)
	case models.Click:
		pressed := true
		if rec.Pressed != nil {
			pressed = *rec.Pressed
		}

		button := rec.Button
		if button == "" {
			button = ButtonLeft
		}

		h.OnClick(rec.X, rec.Y, button, pressed)
	case models.Key:
		h.OnKeyPress(rec.Key)
	default:
		return fmt.Errorf("%w: %q", errUnknownRecord, rec.Type)
	}

	return nil
}
