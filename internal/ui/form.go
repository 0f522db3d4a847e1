package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user leaves a form with Esc or
// Ctrl-C.
var ErrPromptCancelled = errors.New("prompt cancelled")

// fieldModel is a single-field Bubble Tea form
type fieldModel struct {
	label     string
	input     textinput.Model
	validate  func(string) error
	errMsg    string
	value     string
	done      bool
	cancelled bool
}

func newFieldModel(label string, validate func(string) error) fieldModel {
	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 64
	input.Width = 30
	input.Focus()

	return fieldModel{
		label:    label,
		input:    input,
		validate: validate,
	}
}

// Init implements tea.Model
func (m fieldModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m fieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m fieldModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(PromptStyle.Render("  " + m.label))
	b.WriteString("\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(ErrorMessageStyle.Render("  " + m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(NoteStyle.Render("  enter to confirm • esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// FormPrompter asks for each value with an inline Bubble Tea form. It
// requires a terminal on stdin and stdout.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewFormPrompter creates a form prompter on the process terminal.
func NewFormPrompter() *FormPrompter {
	return &FormPrompter{in: os.Stdin, out: os.Stdout}
}

// Instruct prints the steps in a box
func (p *FormPrompter) Instruct(title string, steps []string) {
	_, _ = fmt.Fprintln(p.out, RenderInstructions(title, steps, GetTerminalWidth()))
	_, _ = fmt.Fprintln(p.out)
}

// Prompt runs the form until a valid value is confirmed. The form keeps
// focus and shows the validation error after each rejected value.
func (p *FormPrompter) Prompt(ctx context.Context, label string, validate func(string) error) (string, error) {
	program := tea.NewProgram(
		newFieldModel(label, validate),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(fieldModel)
	if !ok || m.cancelled {
		return "", ErrPromptCancelled
	}

	_, _ = fmt.Fprintln(p.out, PromptStyle.Render("  "+label+": ")+m.value)
	return m.value, nil
}
