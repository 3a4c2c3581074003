package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
	"github.com/agbru/parsum/internal/format"
	"github.com/agbru/parsum/internal/generator"
	"github.com/agbru/parsum/internal/orchestration"
	"github.com/agbru/parsum/internal/sysmon"
)

// viewState selects what the body of the TUI shows.
type viewState int

const (
	stateForm viewState = iota
	stateRunning
	stateResults
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	cancel     context.CancelFunc
	generation uint64
	progress   float64
	eta        time.Duration
	results    []orchestration.BenchmarkResult
	seed       uint64
	runErr     error
	exitCode   int
}

// Model is the root bubbletea model of the TUI.
type Model struct {
	header HeaderModel
	form   FormModel
	help   help.Model
	keymap KeyMap
	state  viewState

	ExecutionState

	sessionCtx    context.Context
	sessionCancel context.CancelFunc
	config        config.AppConfig
	ref           *programRef
	width         int
	height        int
}

// NewModel creates a new TUI model. cfg supplies the initial form values and
// every parameter the form does not expose (seed, repeat, timeout...).
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		header:         NewHeaderModel(version),
		form:           NewFormModel(cfg),
		help:           help.New(),
		keymap:         DefaultKeyMap(),
		state:          stateForm,
		ExecutionState: ExecutionState{exitCode: apperrors.ExitSuccess},
		sessionCtx:     ctx,
		sessionCancel:  cancel,
		config:         cfg,
		ref:            &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), watchContextCmd(m.sessionCtx))
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case ProgressMsg:
		if m.state == stateRunning {
			m.progress = msg.AverageProgress
			m.eta = msg.ETA
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		if m.state == stateRunning {
			m.results = msg.Results
		}
		return m, nil

	case ErrorMsg:
		if m.state == stateRunning {
			m.runErr = msg.Err
		}
		return m, nil

	case BenchmarkDoneMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a superseded run
		}
		m.state = stateResults
		m.results = msg.Results
		m.exitCode = msg.ExitCode
		m.seed = msg.Seed
		if msg.Err != nil {
			m.runErr = msg.Err
		}
		m.progress = 1
		m.header.SetDone()
		return m, nil

	case TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.header.AddCPUSample(msg.CPUPercent)
		return m, nil

	case ContextCancelledMsg:
		if m.cancel != nil {
			m.cancel()
		}
		m.exitCode = apperrors.ExitErrorCanceled
		return m, tea.Quit
	}

	if m.state == stateForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.state {
	case stateForm:
		switch {
		case key.Matches(msg, m.keymap.Next):
			return m, m.form.NextField()
		case key.Matches(msg, m.keymap.Prev):
			return m, m.form.PrevField()
		case key.Matches(msg, m.keymap.Run):
			return m.startRun()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case stateRunning:
		if key.Matches(msg, m.keymap.Edit) {
			// Abandon the run; its completion message is dropped as stale.
			if m.cancel != nil {
				m.cancel()
			}
			m.generation++
			m.state = stateForm
			m.header.SetDone()
		}
		return m, nil

	case stateResults:
		switch {
		case key.Matches(msg, m.keymap.Run):
			return m.startRun()
		case key.Matches(msg, m.keymap.Edit):
			m.state = stateForm
			return m, m.form.Init()
		}
	}
	return m, nil
}

// startRun validates the form and launches a benchmark in the background.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	cfg, err := m.form.Apply(m.config)
	m.form.SetError(err)
	if err != nil {
		return m, nil
	}
	m.config = cfg

	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	ctx, cancel := context.WithTimeout(m.sessionCtx, cfg.Timeout)
	m.cancel = cancel

	m.state = stateRunning
	m.progress, m.eta = 0, 0
	m.results, m.runErr = nil, nil
	m.header.Start()

	return m, tea.Batch(
		startBenchmarkCmd(m.ref, ctx, cfg, m.generation),
		sampleSysStatsCmd(),
		tickCmd(),
	)
}

// View renders the header, the body of the current state and the help line.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.state {
	case stateForm:
		body = lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Benchmark parameters"),
			m.form.View(),
			dimStyle.Render(m.settingsLine()),
		)
	case stateRunning:
		body = m.runningView()
	case stateResults:
		body = m.resultsView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		"",
		body,
		"",
		m.help.View(m.keymap),
	)
}

func (m Model) settingsLine() string {
	seed := "clock"
	if m.config.Seed != 0 {
		seed = fmt.Sprintf("%d", m.config.Seed)
	}
	return fmt.Sprintf("op=%s  repeat=%d  seed=%s  values in [0, %d)  timeout=%s",
		m.config.Operation, m.config.Repeat, seed, m.config.MaxValue, m.config.Timeout)
}

func (m Model) runningView() string {
	width := min(max(m.width-20, 10), 60)
	eta := "-"
	if m.eta > 0 {
		eta = format.FormatExecutionDuration(m.eta)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Benchmarking %s values with threads %s",
			format.FormatNumber(m.config.Size), m.config.Threads)),
		"",
		fmt.Sprintf("%s %5.1f%%  ETA %s", renderProgressBar(m.progress, width), m.progress*100, eta),
	)
}

func (m Model) resultsView() string {
	parts := []string{
		titleStyle.Render(fmt.Sprintf("Results for %s values (seed %d, key %d)",
			format.FormatNumber(m.config.Size), m.seed, m.config.Key)),
	}
	if len(m.results) > 0 {
		parts = append(parts, renderResultTable(m.results))
	}
	failures := failureLines(m.results)
	parts = append(parts, statusLine(m.exitCode, failures != ""))
	if failures != "" {
		parts = append(parts, errorStyle.Render(failures))
	} else if m.runErr != nil {
		parts = append(parts, errorStyle.Render(m.runErr.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int { return m.exitCode }

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, version)
	defer model.sessionCancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		if m.cancel != nil {
			m.cancel()
		}
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startBenchmarkCmd returns a tea.Cmd that generates the sequence and runs
// the benchmark tasks built from cfg.
func startBenchmarkCmd(ref *programRef, ctx context.Context, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		seed := cfg.Seed
		if seed == 0 {
			seed = generator.ClockSeed()
		}
		seq, err := generator.New(seed, cfg.MaxValue).Ints(cfg.Size)
		if err != nil {
			return BenchmarkDoneMsg{Err: err, ExitCode: apperrors.ExitErrorConfig, Seed: seed, Generation: gen}
		}

		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		tasks := orchestration.BuildTasks(cfg)
		results := orchestration.ExecuteBenchmarks(ctx, tasks, seq, cfg.Repeat, reporter, io.Discard)
		opts := orchestration.PresentationOptions{
			Size: cfg.Size,
			Key:  cfg.Key,
			Seed: seed,
		}
		exitCode := orchestration.AnalyzeResults(results, opts, presenter, presenter, io.Discard)
		return BenchmarkDoneMsg{Results: results, ExitCode: exitCode, Seed: seed, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err()}
	}
}
