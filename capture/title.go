package capture

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ayoisaiah/presence/internal/models"
)

const defaultTitleTimeout = 500 * time.Millisecond

// CommandTitle runs an external command and reads the window title from its
// standard output (e.g. `xdotool getactivewindow getwindowname`).
type CommandTitle struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewCommandTitle parses cmdline with shell quoting rules.
func NewCommandTitle(cmdline string) (*CommandTitle, error) {
	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("unable to parse window_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, fmt.Errorf("window_cmd option is empty")
	}

	return &CommandTitle{
		name:    cmdSlice[0],
		args:    cmdSlice[1:],
		timeout: defaultTitleTimeout,
	}, nil
}

// ActiveWindowTitle returns the first line printed by the command, or
// models.UnknownWindow if the command fails or prints nothing.
func (p *CommandTitle) ActiveWindowTitle() string {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var out bytes.Buffer

	cmd := exec.CommandContext(ctx, p.name, p.args...)
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return models.UnknownWindow
	}

	title, _, _ := strings.Cut(out.String(), "\n")

	title = strings.TrimSpace(title)
	if title == "" {
		return models.UnknownWindow
	}

	return title
}
