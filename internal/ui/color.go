// Package ui holds the colours and styles shared by the report output and the
// live status view
package ui

import (
	"github.com/pterm/pterm"
)

// DarkTheme selects the light variants of each colour so that text stays
// readable on a dark background.
var DarkTheme bool

func paint(dark, light pterm.Color, a any) string {
	if DarkTheme {
		return dark.Sprint(a)
	}

	return light.Sprint(a)
}

func Green(a any) string {
	return paint(pterm.FgLightGreen, pterm.FgGreen, a)
}

func Cyan(a any) string {
	return paint(pterm.FgLightCyan, pterm.FgCyan, a)
}

func Blue(a any) string {
	return paint(pterm.FgLightBlue, pterm.FgBlue, a)
}

func Yellow(a any) string {
	return paint(pterm.FgLightYellow, pterm.FgYellow, a)
}

func Red(a any) string {
	return paint(pterm.FgLightRed, pterm.FgRed, a)
}

// Dim renders secondary text such as hints and units.
func Dim(a any) string {
	return paint(pterm.FgGray, pterm.FgDarkGray, a)
}
