package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parsum/internal/config"
	apperrors "github.com/agbru/parsum/internal/errors"
)

// Form fields, in focus order.
const (
	fieldSize = iota
	fieldThreads
	fieldKey
	fieldCount
)

var fieldLabels = [fieldCount]string{"Array size", "Threads", "Key"}

// FormModel holds the three parameter inputs.
type FormModel struct {
	inputs []textinput.Model
	focus  int
	err    error
}

// NewFormModel creates the form prefilled from cfg.
func NewFormModel(cfg config.AppConfig) FormModel {
	threads := cfg.Threads
	if threads == "" {
		workers := cfg.Workers
		if len(workers) == 0 {
			workers = []int{config.EstimateWorkerCount()}
		}
		parts := make([]string, len(workers))
		for i, w := range workers {
			parts[i] = strconv.Itoa(w)
		}
		threads = strings.Join(parts, ",")
	}

	values := [fieldCount]string{strconv.Itoa(cfg.Size), threads, strconv.Itoa(cfg.Key)}
	placeholders := [fieldCount]string{"1000000", "4 or 1,2,4,8", "42"}

	f := FormModel{inputs: make([]textinput.Model, fieldCount)}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = placeholders[i]
		in.CharLimit = 32
		in.Width = 24
		in.SetValue(values[i])
		f.inputs[i] = in
	}
	f.setFocus(fieldSize)
	return f
}

// Init returns the cursor blink command of the focused input.
func (f FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (f *FormModel) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			f.inputs[j].PromptStyle = focusedStyle
			f.inputs[j].TextStyle = focusedStyle
			continue
		}
		f.inputs[j].Blur()
		f.inputs[j].PromptStyle = blurredStyle
		f.inputs[j].TextStyle = lipgloss.NewStyle()
	}
	return cmd
}

// NextField moves the focus down, wrapping around.
func (f *FormModel) NextField() tea.Cmd { return f.setFocus(f.focus + 1) }

// PrevField moves the focus up, wrapping around.
func (f *FormModel) PrevField() tea.Cmd { return f.setFocus(f.focus - 1) }

// Focused returns the index of the focused field.
func (f FormModel) Focused() int { return f.focus }

// Value returns the raw text of a field.
func (f FormModel) Value(field int) string { return f.inputs[field].Value() }

// SetError records a validation error shown under the form; nil clears it.
func (f *FormModel) SetError(err error) { f.err = err }

// Update forwards msg to the focused input.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// Apply parses the fields into a copy of cfg and validates the result.
func (f FormModel) Apply(cfg config.AppConfig) (config.AppConfig, error) {
	size, err := strconv.Atoi(strings.TrimSpace(f.Value(fieldSize)))
	if err != nil {
		return cfg, apperrors.NewConfigError("array size must be an integer, got %q", f.Value(fieldSize))
	}
	if size < 0 {
		return cfg, apperrors.NewConfigError("array size must be non-negative, got %d", size)
	}
	threads := strings.ReplaceAll(f.Value(fieldThreads), " ", "")
	workers, err := config.ParseWorkerList(threads)
	if err != nil {
		return cfg, err
	}
	key, err := strconv.Atoi(strings.TrimSpace(f.Value(fieldKey)))
	if err != nil {
		return cfg, apperrors.NewConfigError("key must be an integer, got %q", f.Value(fieldKey))
	}

	cfg.Size = size
	cfg.Threads = threads
	cfg.Workers = workers
	cfg.Key = key
	if err := cfg.Validate(); err != nil {
		return cfg, apperrors.AsConfigError(err)
	}
	return cfg, nil
}

// View renders the labelled inputs and the last validation error.
func (f FormModel) View() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == f.focus {
			label = focusedStyle.Inherit(labelStyle).Render(fieldLabels[i])
		}
		b.WriteString(label + in.View() + "\n")
	}
	if f.err != nil {
		b.WriteString("\n" + errorStyle.Render("✗ "+f.err.Error()) + "\n")
	}
	return panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}
