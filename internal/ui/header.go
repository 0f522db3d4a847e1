package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Detail is one key/value line in a header or result box.
type Detail struct {
	Key   string
	Value string
}

// Header is the banner printed at the start of a run.
type Header struct {
	Title   string   // e.g., "VECTOR IP SCAN"
	Command string   // e.g., "vector-ipscan dev-20261014"
	Params  []Detail // shown in order below a divider
	Width   int      // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Detail) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) > 0 {
		divider := lipgloss.NewStyle().PaddingLeft(2).Render(
			RenderHorizontalDivider(width-6, "─"), // Account for border and padding
		)

		paramLines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			keyStyled := HeaderParamKeyStyle.Render(p.Key + ":")
			valueStyled := HeaderParamValueStyle.Render(p.Value)
			paramLines = append(paramLines, keyStyled+" "+valueStyled)
		}

		content = lipgloss.JoinVertical(lipgloss.Left, content, divider, strings.Join(paramLines, "\n"))
	}

	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
