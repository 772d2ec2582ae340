package ui

import "github.com/charmbracelet/lipgloss"

// Colors used by the live status view.
var (
	ColorGreen  = lipgloss.AdaptiveColor{Light: "#1B7F3B", Dark: "#5FD787"}
	ColorYellow = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#FFD75F"}
	ColorRed    = lipgloss.AdaptiveColor{Light: "#B42318", Dark: "#FF5F5F"}
	ColorCyan   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#5FD7FF"}
	ColorGray   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#8A8A8A"}
)

var (
	BaseStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	TrackingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	PausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorYellow)

	IdleStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	LabelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(ColorGray)

	ValueStyle = lipgloss.NewStyle()

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)
