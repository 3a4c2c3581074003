package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used when printing errors.
// The CLI passes its theme; tests pass a no-color implementation.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleBenchmarkError prints a benchmark failure and maps it to an exit code.
//
// Parameters:
//   - err: The error to report. A nil error yields ExitSuccess.
//   - out: The writer for the message.
//   - colors: The color provider used for highlighting.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleBenchmarkError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	var timeout TimeoutError
	switch {
	case errors.As(err, &timeout):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The %s exceeded its time limit of %s.%s\n",
			colors.Red(), timeout.Operation, timeout.Limit, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The time limit was exceeded.%s\n", colors.Red(), colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled by the user.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, ErrInvalidArgument), errors.As(err, new(ConfigError)):
		fmt.Fprintf(out, "%sStatus: Rejected. %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	case errors.Is(err, ErrWorkerFault):
		fmt.Fprintf(out, "%sStatus: Internal fault. %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sStatus: Failure. An unexpected error occurred: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}
