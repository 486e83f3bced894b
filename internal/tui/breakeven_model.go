package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/breakeven/internal/engine"
)

// FormState represents the current state of the break-even form.
type FormState int

const (
	// FormStateEditing indicates the user is editing inputs.
	FormStateEditing FormState = iota
	// FormStateCalculating indicates a recalculation is in progress.
	FormStateCalculating
	// FormStateQuitting indicates the application is exiting.
	FormStateQuitting
)

// Field is one editable session input.
type Field struct {
	// Key identifies the input to the recalculation callback.
	Key string
	// Label is shown next to the input.
	Label string
	// Value is the initial value.
	Value string
}

// RecalculateFunc computes a report from the inputs the user changed.
type RecalculateFunc func(ctx context.Context, overrides map[string]string) (*engine.Report, error)

// recalculateMsg is sent when a recalculation completes.
type recalculateMsg struct {
	report *engine.Report
	err    error
}

const (
	inputWidth     = 16
	inputCharLimit = 24
	labelWidth     = 22
)

type formField struct {
	Field
	input textinput.Model
}

// BreakevenModel is the Bubble Tea model for the interactive calculator. The
// user edits session inputs and the report is recomputed on Enter.
type BreakevenModel struct {
	ctx context.Context

	fields  []formField
	focused int

	report *engine.Report
	err    error
	state  FormState

	formatter Formatter
	width     int
	height    int

	recalculateFn RecalculateFunc
}

// NewBreakevenModel creates the form over fields, showing report until the
// first recalculation.
func NewBreakevenModel(
	ctx context.Context,
	fields []Field,
	report *engine.Report,
	formatter Formatter,
	recalculateFn RecalculateFunc,
) *BreakevenModel {
	m := &BreakevenModel{
		ctx:           ctx,
		report:        report,
		state:         FormStateEditing,
		formatter:     formatter,
		width:         defaultViewWidth,
		recalculateFn: recalculateFn,
	}

	m.fields = make([]formField, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = inputCharLimit
		ti.Width = inputWidth
		ti.SetValue(f.Value)
		m.fields[i] = formField{Field: f, input: ti}
	}
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
	return m
}

// Init initializes the model.
func (m *BreakevenModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *BreakevenModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case recalculateMsg:
		m.state = FormStateEditing
		m.err = msg.err
		if msg.err == nil {
			m.report = msg.report
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m.updateFocused(msg)
}

//nolint:exhaustive // Only navigation keys are handled; the rest go to the input.
func (m *BreakevenModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.state = FormStateQuitting
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		return m, m.moveFocus(1)

	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.moveFocus(-1)

	case tea.KeyEnter:
		if m.recalculateFn == nil || m.state == FormStateCalculating {
			return m, nil
		}
		return m, m.triggerRecalculation()
	}

	return m.updateFocused(msg)
}

func (m *BreakevenModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

func (m *BreakevenModel) moveFocus(delta int) tea.Cmd {
	if len(m.fields) == 0 {
		return nil
	}
	m.fields[m.focused].input.Blur()
	m.focused = (m.focused + delta + len(m.fields)) % len(m.fields)
	return m.fields[m.focused].input.Focus()
}

// triggerRecalculation creates a command that recomputes the report.
func (m *BreakevenModel) triggerRecalculation() tea.Cmd {
	m.state = FormStateCalculating

	// Capture before the goroutine so the command never reads model fields.
	ctx := m.ctx
	overrides := m.GetOverrides()
	recalculateFn := m.recalculateFn

	return func() tea.Msg {
		report, err := recalculateFn(ctx, overrides)
		return recalculateMsg{report: report, err: err}
	}
}

// View renders the current view.
func (m *BreakevenModel) View() string {
	if m.state == FormStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render(reportTitle))
	sb.WriteString("\n\n")

	for i, f := range m.fields {
		cursor := "  "
		if i == m.focused {
			cursor = IconArrowRight + " "
		}
		label := LabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, f.Label))
		value := f.input.View()
		if f.input.Value() != f.Value {
			value = HighlightStyle.Render(value)
		}
		sb.WriteString(cursor + label + value + "\n")
	}
	sb.WriteString("\n")

	switch {
	case m.state == FormStateCalculating:
		sb.WriteString(SpinnerStyle.Render("Calculating..."))
	case m.err != nil:
		sb.WriteString(ErrorStyle.Render(IconCross + " " + m.err.Error()))
	case m.report != nil:
		sb.WriteString(RenderReport(m.report, m.formatter, m.width))
	}

	sb.WriteString("\n\n")
	sb.WriteString(RenderFormHelp())
	return sb.String()
}

// GetOverrides returns the inputs whose value differs from the initial value.
func (m *BreakevenModel) GetOverrides() map[string]string {
	overrides := make(map[string]string)
	for _, f := range m.fields {
		if v := strings.TrimSpace(f.input.Value()); v != f.Value {
			overrides[f.Key] = v
		}
	}
	return overrides
}

// GetReport returns the most recent successfully computed report.
func (m *BreakevenModel) GetReport() *engine.Report {
	return m.report
}

// Err returns the error from the most recent recalculation, if any.
func (m *BreakevenModel) Err() error {
	return m.err
}

// RenderFormHelp renders the keyboard shortcut help text.
func RenderFormHelp() string {
	shortcuts := []string{
		"↑/↓/Tab: Navigate",
		"Enter: Recalculate",
		"Esc: Quit",
	}
	return MutedStyle.Render(strings.Join(shortcuts, " | "))
}
