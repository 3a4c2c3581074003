// Package ui holds the color palette shared by the CLI and the TUI.
// The CLI consumes raw ANSI escape codes through the Color* helpers while the
// TUI consumes lipgloss colors through TUITheme. Both honor --no-color and the
// NO_COLOR environment variable via InitTheme.
package ui
