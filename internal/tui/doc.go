// Package tui implements the interactive terminal form of parsum.
//
// The form collects the three benchmark parameters (array size, thread
// counts and search key), runs the benchmark in a background tea.Cmd and
// renders the comparison table with lipgloss. Progress flows from the
// orchestration layer through TUIProgressReporter, which forwards updates to
// the running tea.Program.
package tui
