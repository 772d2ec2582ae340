package monitor

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	togglePause key.Binding
	quit        key.Binding
}

var defaultKeymap = keymap{
	togglePause: key.NewBinding(
		key.WithKeys("p", " "),
		key.WithHelp("p", "pause/resume"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "stop and quit"),
	),
}
