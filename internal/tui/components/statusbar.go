package components

import (
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// page or status information on the right. isErr colors the right side.
func RenderStatusBar(width int, left, right string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	rightStyle := style
	if isErr {
		rightStyle = rightStyle.Foreground(t.Red)
	}

	left = " " + left
	right += " "

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	bar := style.Render(left) +
		style.Render(lipgloss.PlaceHorizontal(padding, lipgloss.Left, "")) +
		rightStyle.Render(right)

	return lipgloss.NewStyle().Background(t.Surface).MaxWidth(width).Render(bar)
}
