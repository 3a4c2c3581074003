// Package format holds pure string formatting helpers shared by the CLI and
// the TUI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows nanoseconds below a microsecond, microseconds for durations less
// than a millisecond, milliseconds with two decimals for durations less than
// a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	}
	return d.Round(time.Millisecond).String()
}

// FormatSeconds renders d as fractional seconds, the unit of the REPL
// timing lines (e.g. "0.001234 seconds").
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f seconds", d.Seconds())
}
