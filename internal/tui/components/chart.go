package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from counts.
func Sparkline(values []int, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	for _, v := range values {
		idx := v * (len(blocks) - 1) / peak
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}
	return style.Render(buf.String())
}

// Bar is one labelled row of a HorizontalBars chart.
type Bar struct {
	Label string
	Value int
}

// HorizontalBars renders one bar per row, scaled so the largest value fills
// the space left after the labels and counts.
func HorizontalBars(bars []Bar, width int, color lipgloss.Color) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, countW, peak := 0, 1, 0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		countW = max(countW, len(fmt.Sprint(b.Value)))
		peak = max(peak, b.Value)
	}
	if peak == 0 {
		peak = 1
	}
	barMax := width - labelW - countW - 2
	if barMax < 1 {
		barMax = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(bars))
	for i, b := range bars {
		n := b.Value * barMax / peak
		if b.Value > 0 && n == 0 {
			n = 1
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) +
			spaceStyle.Render(" ") +
			countStyle.Render(fmt.Sprintf("%*d", countW, b.Value)) +
			spaceStyle.Render(" ") +
			barStyle.Render(strings.Repeat("█", n))
	}
	return strings.Join(lines, "\n")
}
