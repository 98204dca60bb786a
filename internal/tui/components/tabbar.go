package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. The first four follow model.Kinds.
var Tabs = []Tab{
	{Name: "Residents", Key: '1'},
	{Name: "IDs", Key: '2'},
	{Name: "Clearances", Key: '3'},
	{Name: "Businesses", Key: '4'},
	{Name: "Summary", Key: '5'},
	{Name: "Settings", Key: '6'},
}

func tabLabel(tab Tab) string {
	return fmt.Sprintf(" %c %s ", tab.Key, tab.Name)
}

// TabVisualWidth returns the rendered width of a tab, active or not.
func TabVisualWidth(tab Tab, _ bool) int {
	return lipgloss.Width(tabLabel(tab))
}

// RenderTabBar renders the single-row tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border).
		Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i == activeIdx {
			b.WriteString(activeStyle.Render(tabLabel(tab)))
		} else {
			b.WriteString(inactiveStyle.Render(tabLabel(tab)))
		}
		if i < len(Tabs)-1 {
			b.WriteString(sepStyle.Render("│"))
		}
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(b.String())
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
