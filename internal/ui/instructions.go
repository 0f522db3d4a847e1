package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RegistrationSteps are the on-robot steps that make Vector display its
// address and serial.
var RegistrationSteps = []string{
	"Plug in the USB cord of Vector's charger for power.",
	"Start up Vector by pressing the button on his back once.",
	"Put Vector on his charger.",
	"Raise his arm above his head and bring it down again.",
	"Read the address and serial shown on his face.",
}

// RenderInstructions renders a numbered list of steps in a warning-styled box.
func RenderInstructions(title string, steps []string, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  %s", WarningMarker, title)), ""}

	stepStyle := lipgloss.NewStyle().Foreground(TextColor).Width(width - 12)
	for i, step := range steps {
		lines = append(lines, stepStyle.Render(fmt.Sprintf("   %d. %s", i+1, step)))
	}
	lines = append(lines, "")

	return ResultBoxStyle(width, WarningColor).Render(strings.Join(lines, "\n"))
}
