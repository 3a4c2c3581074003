package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a parallel result disagrees with its sequential baseline.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

var (
	// ErrInvalidArgument is the sentinel found in the chain of every
	// InvalidArgumentError. Callers test for it with errors.Is.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWorkerFault is the sentinel found in the chain of every WorkerFault.
	ErrWorkerFault = errors.New("worker fault")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
	// Cause is the rejected field's ValidationError, when there is one.
	Cause error
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// Unwrap returns the cause, if any.
func (e ConfigError) Unwrap() error { return e.Cause }

// AsConfigError turns err into a ConfigError keeping err in the chain.
// A nil err yields nil and an existing ConfigError is returned unchanged.
func AsConfigError(err error) error {
	if err == nil {
		return nil
	}
	var cfgErr ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return ConfigError{Message: err.Error(), Cause: err}
}

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// InvalidArgumentError reports an argument rejected at a call boundary before
// any work was started, such as a non-positive worker count.
type InvalidArgumentError struct {
	// Field names the rejected argument.
	Field string
	// Value is the rejected value.
	Value int
	// Reason explains why the value was rejected.
	Reason string
}

// Error returns a formatted message describing the rejected argument.
func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidArgument so that errors.Is matches every
// InvalidArgumentError regardless of field.
func (e InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgument creates an InvalidArgumentError.
func NewInvalidArgument(field string, value int, reason string) error {
	return InvalidArgumentError{Field: field, Value: value, Reason: reason}
}

// WorkerFault reports a broken internal invariant observed by a worker, such as
// a partition boundary outside the sequence. It is a programming error and is
// never retried.
type WorkerFault struct {
	// Worker is the index of the worker (and of its partition).
	Worker int
	// Start and End are the boundaries of the offending range.
	Start, End int
	// Length is the length of the sequence the range was applied to.
	Length int
	// Cause carries a recovered panic or a more specific violation, if any.
	Cause error
}

// Error returns a formatted message describing the fault.
func (e WorkerFault) Error() string {
	msg := fmt.Sprintf("worker %d: range [%d, %d) over sequence of length %d", e.Worker, e.Start, e.End, e.Length)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both the sentinel and the cause.
func (e WorkerFault) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrWorkerFault}
	}
	return []error{ErrWorkerFault, e.Cause}
}

// BenchmarkError encapsulates a failure of a single benchmark task while
// preserving the original cause.
type BenchmarkError struct {
	// Task is the display name of the failing task.
	Task string
	// Cause is the underlying error that triggered this benchmark error.
	Cause error
}

// Error returns the task name followed by the underlying cause.
func (e BenchmarkError) Error() string { return e.Task + ": " + e.Cause.Error() }

// Unwrap returns the original wrapped error.
func (e BenchmarkError) Unwrap() error { return e.Cause }

// TimeoutError represents an operation timeout. It captures the operation
// name and the duration limit that was exceeded, and matches
// context.DeadlineExceeded with errors.Is.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
