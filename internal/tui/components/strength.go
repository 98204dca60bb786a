package components

import (
	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// maxStrengthPoints is the best score auth.Strength can give.
const maxStrengthPoints = 6

// ColorForLevel returns red/orange/yellow/green for a password strength.
func ColorForLevel(l auth.Level) lipgloss.Color {
	t := theme.Active
	switch l {
	case auth.Strong:
		return t.Green
	case auth.Good:
		return t.Yellow
	case auth.Fair:
		return t.Orange
	default:
		return t.Red
	}
}

// StrengthMeter renders a bar and label for a password strength score.
func StrengthMeter(s auth.Score, barWidth int) string {
	t := theme.Active

	pct := float64(s.Points) / maxStrengthPoints
	if pct > 1 {
		pct = 1
	}
	color := ColorForLevel(s.Level)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(pct) + " " + labelStyle.Render(s.Level.String())
}
