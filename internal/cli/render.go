package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/brgy/internal/paginator"
)

// Palette of the CLI output; it matches the TUI's default theme.
var (
	ColorBg        = lipgloss.Color("#15110E")
	ColorBorder    = lipgloss.Color("#4A3B30")
	ColorTextDim   = lipgloss.Color("#6B5A4C")
	ColorTextMuted = lipgloss.Color("#A08E7C")
	ColorText      = lipgloss.Color("#F4EBDD")
	ColorAccent    = lipgloss.Color("#D9A441")
	ColorRed       = lipgloss.Color("#C9483C")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle    = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle    = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle      = lipgloss.NewStyle().Foreground(ColorTextDim)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBg).Background(ColorAccent)
)

// Table is a bordered text table. A row holding the single cell "---"
// draws a separator line.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // auto-sized when nil
	// RightAlign marks right-aligned columns. When nil every column but
	// the first is right-aligned.
	RightAlign []bool
}

// RenderTitle renders title centered in a rounded box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

func (t Table) columnWidths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < n && lipgloss.Width(c) > widths[i] {
				widths[i] = lipgloss.Width(c)
			}
		}
	}
	grow(t.Headers)
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		grow(row)
	}
	return widths
}

func (t Table) rightAligned(col int) bool {
	if t.RightAlign == nil {
		return col > 0
	}
	return col < len(t.RightAlign) && t.RightAlign[col]
}

// rule draws a horizontal border line across all columns.
func rule(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		if i > 0 {
			b.WriteString(dimStyle.Render(mid))
		}
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteByte('\n')
}

// RenderTable renders t with box-drawing borders.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	widths := t.columnWidths()
	sep := dimStyle.Render("│")

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	rule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(sep)
		for i, w := range widths {
			h := ""
			if i < len(t.Headers) {
				h = t.Headers[i]
			}
			b.WriteString(headerStyle.Render(fmt.Sprintf(" %-*s ", w, h)))
			b.WriteString(sep)
		}
		b.WriteByte('\n')
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}
		b.WriteString(sep)
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			format := " %-*s "
			if t.rightAligned(i) {
				format = " %*s "
			}
			b.WriteString(valueStyle.Render(fmt.Sprintf(format, w, cell)))
			b.WriteString(sep)
		}
		b.WriteByte('\n')
	}

	rule(&b, widths, "╰", "┴", "╯")
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderError renders an error line.
func RenderError(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorRed).Render("  " + msg)
}

// RenderMuted renders secondary text.
func RenderMuted(s string) string {
	return mutedStyle.Render(s)
}

// RenderGrid renders one page of the slot grid as a two-column box. Headers
// span their row; detail supplies the dimmed text after an entry's label.
// The selected slot, if any, is highlighted.
func RenderGrid[T any](pg paginator.Page[T], selected, cellWidth int, detail func(T) string) string {
	if cellWidth < 8 {
		cellWidth = 8
	}
	rowWidth := cellWidth*paginator.Columns + 3*(paginator.Columns-1)

	var b strings.Builder
	b.WriteString(dimStyle.Render("╭" + strings.Repeat("─", rowWidth+2) + "╮"))
	b.WriteString("\n")

	for row := 0; row*paginator.Columns < len(pg.Slots); row++ {
		first := pg.Slots[row*paginator.Columns]
		b.WriteString(dimStyle.Render("│ "))
		if first.Kind == paginator.SlotHeader {
			b.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", rowWidth, Truncate(first.Label, rowWidth))))
		} else {
			for col := 0; col < paginator.Columns; col++ {
				i := row*paginator.Columns + col
				if col > 0 {
					b.WriteString(dimStyle.Render(" │ "))
				}
				b.WriteString(renderCell(pg.Slot(i), i == selected, cellWidth, detail))
			}
		}
		b.WriteString(dimStyle.Render(" │"))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render("╰" + strings.Repeat("─", rowWidth+2) + "╯"))
	b.WriteString("\n")
	return b.String()
}

func renderCell[T any](s paginator.Slot[T], selected bool, width int, detail func(T) string) string {
	if !s.IsEntry() {
		return strings.Repeat(" ", width)
	}

	text := s.Label
	extra := ""
	if detail != nil {
		extra = detail(s.Item)
	}
	marker := "  "
	if selected {
		marker = "▸ "
	}
	nameWidth := width - len([]rune(marker))
	if extra != "" {
		nameWidth -= len([]rune(extra)) + 1
	}
	if nameWidth < 4 {
		nameWidth = width - len([]rune(marker))
		extra = ""
	}
	name := fmt.Sprintf("%-*s", nameWidth, Truncate(text, nameWidth))

	if selected {
		cell := marker + name
		if extra != "" {
			cell += " " + extra
		}
		return selectedStyle.Render(cell)
	}
	cell := valueStyle.Render(marker + name)
	if extra != "" {
		cell += " " + mutedStyle.Render(extra)
	}
	return cell
}
