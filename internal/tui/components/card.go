// Package components provides reusable TUI widgets for the brgy app.
package components

import (
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Metric is one labelled number on a metric card.
type Metric struct {
	Label string
	Value string
	Note  string
}

// cardFrame is the rounded, padded border shared by every card.
func cardFrame(outerWidth int) lipgloss.Style {
	w := outerWidth - 2
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(w).
		Padding(0, 1)
}

// MetricCard renders one metric: a muted label, the bold value and an
// optional dim note underneath. outerWidth includes the border.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	lines := []string{
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label),
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(m.Value),
	}
	if m.Note != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Note))
	}
	return cardFrame(outerWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// MetricCardRow lays metric cards side by side across exactly totalWidth.
func MetricCardRow(cards []Metric, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(cards))
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = MetricCard(c, widths[i])
	}
	return CardRow(rendered)
}

// ContentCard renders body in a bordered card under an optional bold title.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		heading := lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Bold(true).Render(title)
		body = heading + "\n" + body
	}
	return cardFrame(outerWidth).Render(body)
}

// CardRow joins rendered cards top-aligned.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardInnerWidth is the text width left inside a card of outerWidth
// after the border and padding.
func CardInnerWidth(outerWidth int) int {
	if w := outerWidth - 4; w >= 10 {
		return w
	}
	return 10
}
