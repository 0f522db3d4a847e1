package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResultType indicates success, failure or warning
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
	ResultWarning
)

// Result represents a result box
type Result struct {
	Type            ResultType // Success, failure, or warning
	Title           string     // e.g., "Vector detected"
	Details         []Detail   // Key-value details, in display order
	Error           error      // Error (for failure results)
	Troubleshooting []string   // Troubleshooting tips (for failure results)
	Width           int        // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// NewWarningResult creates a warning result box
func NewWarningResult(title string, details ...Detail) *Result {
	return &Result{
		Type:    ResultWarning,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail key-value pair
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Detail{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	width := r.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var (
		title string
		color lipgloss.Color
	)
	switch r.Type {
	case ResultFailure:
		title = ErrorTitleStyle.Render(fmt.Sprintf("   %s  FAILED  ─  %s", FailureMarker, r.Title))
		color = ErrorColor
	case ResultWarning:
		title = WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, r.Title))
		color = WarningColor
	default:
		title = SuccessTitleStyle.Render(fmt.Sprintf("   %s  SUCCESS  ─  %s", SuccessMarker, r.Title))
		color = SuccessColor
	}

	lines := []string{"", title, ""}

	for _, d := range r.Details {
		keyStyled := ResultKeyStyle.Render(fmt.Sprintf("   %s:", d.Key))
		valueStyled := ResultValueStyle.Render(d.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	if r.Error != nil {
		lines = append(lines, ErrorMessageStyle.Render("   Error: "+r.Error.Error()), "")
	}

	if len(r.Troubleshooting) > 0 {
		lines = append(lines, r.renderTroubleshootingBox(width), "")
	}

	return ResultBoxStyle(width, color).Render(strings.Join(lines, "\n"))
}

// renderTroubleshootingBox renders the inner troubleshooting box
func (r *Result) renderTroubleshootingBox(width int) string {
	lines := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
	for _, tip := range r.Troubleshooting {
		lines = append(lines, TroubleshootingItemStyle.Render("  "+BulletMarker+" "+tip))
	}

	innerWidth := width - 12 // Indent within outer box
	if innerWidth < 40 {
		innerWidth = 40
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(innerWidth).
		Padding(0, 1).
		MarginLeft(3).
		Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}
