// Package app wires configuration, logging and the presentation layers into
// the parsum command: batch benchmark, REPL, TUI or completion script.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/parsum/internal/cli"
	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/logging"
	"github.com/agbru/parsum/internal/tui"
	"github.com/agbru/parsum/internal/ui"
)

// Application represents the parsum application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the zerolog console logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "parsum"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(errWriter, "Error: %v\n", err)
		return nil, apperrors.AsConfigError(apperrors.WrapError(err, "--log-level"))
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "parsum", level, cfg.NoColor)
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	}
	return a.runBenchmark(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive terminal form. Each run started from the
// form carries its own timeout.
func (a *Application) runTUI(ctx context.Context) int {
	a.Logger.Debug("starting TUI")
	return tui.Run(ctx, a.Config, Version)
}

// runREPL starts the line-oriented interactive mode on stdin.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(cli.REPLConfig{
		Size:         a.Config.Size,
		Workers:      a.Config.Workers,
		Key:          a.Config.Key,
		Seed:         a.Config.Seed,
		MaxValue:     a.Config.MaxValue,
		Repeat:       a.Config.Repeat,
		Timeout:      a.Config.Timeout,
		ShortCircuit: a.Config.ShortCircuit,
		Details:      a.Config.Details,
	})
	repl.SetOutput(out)
	repl.SetLogger(a.Logger)
	repl.Start(ctx)

	if apperrors.IsContextError(ctx.Err()) {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
