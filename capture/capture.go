// Package capture defines how raw pointer and keyboard notifications reach the
// tracker, and how the foreground window is identified
package capture

import (
	"context"
	"strings"

	"github.com/ayoisaiah/presence/internal/models"
)

// Button identifies a pointer button.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// Handler receives raw input notifications. Implementations must be safe for
// concurrent use since sources may deliver from separate goroutines.
type Handler interface {
	OnMove(x, y int)
	OnClick(x, y int, button Button, pressed bool)
	OnKeyPress(key string)
}

// Source delivers input notifications to a handler until ctx is cancelled or
// the source is exhausted. Cancelling ctx detaches the listener.
type Source interface {
	Listen(ctx context.Context, h Handler) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, h Handler) error

// Listen calls the underlying function.
func (f SourceFunc) Listen(ctx context.Context, h Handler) error {
	return f(ctx, h)
}

// WindowTitler reports the title of the window that currently has focus. It
// returns models.UnknownWindow when the title cannot be determined.
type WindowTitler interface {
	ActiveWindowTitle() string
}

// StaticTitle always reports the same title.
type StaticTitle string

func (p StaticTitle) ActiveWindowTitle() string {
	title := strings.TrimSpace(string(p))
	if title == "" {
		return models.UnknownWindow
	}

	return title
}

// Titlers asks each titler in turn and returns the first known title.
type Titlers []WindowTitler

func (p Titlers) ActiveWindowTitle() string {
	for _, titler := range p {
		if titler == nil {
			continue
		}

		if title := titler.ActiveWindowTitle(); title != models.UnknownWindow {
			return title
		}
	}

	return models.UnknownWindow
}
