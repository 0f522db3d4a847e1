package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, matches
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings, prompts
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles
var (
	// HeaderTitleStyle is for the run title (e.g., "VECTOR IP SCAN")
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Bold(true).
				PaddingLeft(2)

	// HeaderCommandStyle is for the command line (e.g., "vector-ipscan")
	HeaderCommandStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamKeyStyle is for parameter keys (e.g., "Record:")
	HeaderParamKeyStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(2)

	// HeaderParamValueStyle is for parameter values
	HeaderParamValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// ProgressLabelStyle is for "Scanning remote hosts at ..."
	ProgressLabelStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				PaddingLeft(2)

	// HostLineStyle is for "ip mac" lines of live hosts
	HostLineStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(4)

	// MatchLineStyle is for the line of the matched host
	MatchLineStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true).
			PaddingLeft(4)

	// NoteStyle is for optional notes and failed probes
	NoteStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)

	// SuccessTitleStyle is for the success result title
	SuccessTitleStyle = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)

	// ErrorTitleStyle is for the error result title
	ErrorTitleStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// WarningTitleStyle is for the warning result title
	WarningTitleStyle = lipgloss.NewStyle().
				Foreground(WarningColor).
				Bold(true)

	// ErrorMessageStyle is for error message text
	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// ResultKeyStyle is for result detail keys
	ResultKeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(15)

	// ResultValueStyle is for result detail values
	ResultValueStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	// TroubleshootingTitleStyle is for "Troubleshooting:" headers
	TroubleshootingTitleStyle = lipgloss.NewStyle().
					Foreground(MutedColor).
					Bold(true)

	// TroubleshootingItemStyle is for troubleshooting bullet points
	TroubleshootingItemStyle = lipgloss.NewStyle().
					Foreground(MutedColor)

	// PromptStyle is for prompt labels
	PromptStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)
)

// Status markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
	WarningMarker = "⚠"
	BulletMarker  = "•"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// IsTerminal reports whether both stdin and stdout are terminals
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// HeaderBorderStyle returns the border style for the run header
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}

// ResultBoxStyle returns the double-border style for result boxes
func ResultBoxStyle(width int, color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Width(width-2).
		Padding(0, 2)
}

// RenderHorizontalDivider creates a horizontal line of the specified width
func RenderHorizontalDivider(width int, char string) string {
	if width < 1 {
		width = 1
	}
	return lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat(char, width))
}
