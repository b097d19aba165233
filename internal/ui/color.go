// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui colors CLI output. Colors follow the --no-color flag and the
// NO_COLOR environment variable, and are off when output is not a TTY.
package ui

import "github.com/fatih/color"

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	bold   = color.New(color.Bold)
)

// InitColors disables color output when noColor is true.
func InitColors(noColor bool) {
	if noColor {
		color.NoColor = true
	}
}

// Good renders text in green.
func Good(text string) string { return green.Sprint(text) }

// Warn renders text in yellow.
func Warn(text string) string { return yellow.Sprint(text) }

// Bad renders text in red.
func Bad(text string) string { return red.Sprint(text) }

// Label renders text in bold.
func Label(text string) string { return bold.Sprint(text) }

// State colors a status word: green for present, red for missing or
// conflict, yellow otherwise.
func State(word string) string {
	switch word {
	case "present":
		return Good(word)
	case "missing", "conflict":
		return Bad(word)
	default:
		return Warn(word)
	}
}
