package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/components"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// summaryMonths is how many months the summary charts cover.
const summaryMonths = 12

type summaryState struct {
	loaded bool
	stats  model.RegistryStats
	months []model.MonthlyStats // oldest first, summaryMonths long
	err    error
}

type summaryLoadedMsg struct {
	stats  model.RegistryStats
	months []model.MonthlyStats
	err    error
}

func loadSummaryCmd(st *store.Store, now time.Time) tea.Cmd {
	return func() tea.Msg {
		stats, err := st.Stats()
		if err != nil {
			return summaryLoadedMsg{err: fmt.Errorf("loading stats: %w", err)}
		}
		since := now.AddDate(0, -summaryMonths, 0)
		recs, err := st.RecordsSince(since)
		if err != nil {
			return summaryLoadedMsg{stats: stats, err: fmt.Errorf("loading records: %w", err)}
		}
		months := pipeline.LastMonths(pipeline.AggregateMonths(recs), now, summaryMonths)
		return summaryLoadedMsg{stats: stats, months: months}
	}
}

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	s := a.summary

	if !s.loaded {
		return components.ContentCard("Summary",
			a.spinner.View()+lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Loading..."), cw)
	}
	if s.err != nil {
		return components.ContentCard("Summary",
			lipgloss.NewStyle().Foreground(t.Red).Render(s.err.Error()), cw)
	}

	var b strings.Builder

	archived := ""
	if s.stats.ArchivedResidents > 0 {
		archived = cli.FormatNumber(int64(s.stats.ArchivedResidents)) + " archived"
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Residents", Value: cli.FormatNumber(int64(s.stats.Residents)), Note: archived},
		{Label: "Barangay IDs", Value: cli.FormatNumber(int64(s.stats.IDCards))},
		{Label: "Clearances", Value: cli.FormatNumber(int64(s.stats.Clearances))},
		{Label: "Businesses", Value: cli.FormatNumber(int64(s.stats.Businesses))},
	}, cw))
	b.WriteString("\n")

	bars := make([]components.Bar, 0, len(s.months))
	totals := make([]int, 0, len(s.months))
	for i := len(s.months) - 1; i >= 0; i-- {
		m := s.months[i]
		bars = append(bars, components.Bar{Label: cli.FormatMonth(m.Month), Value: m.Total()})
	}
	for _, m := range s.months {
		totals = append(totals, m.Total())
	}

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Issued per month", components.HorizontalBars(bars, components.CardInnerWidth(cw), t.Accent), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Trend", a.renderTrend(totals), cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Issued per month", components.HorizontalBars(bars, components.CardInnerWidth(widths[0]), t.Accent), widths[0]),
		components.ContentCard("Trend", a.renderTrend(totals)+"\n\n"+a.renderKindBreakdown(components.CardInnerWidth(widths[1])), widths[1]),
	}))
	return b.String()
}

func (a App) renderTrend(totals []int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	sum, peak := 0, 0
	for _, v := range totals {
		sum += v
		peak = max(peak, v)
	}
	return components.Sparkline(totals, t.Green) + "\n" +
		muted.Render(fmt.Sprintf("%s issued in %d months · peak %s",
			cli.FormatNumber(int64(sum)), len(totals), cli.FormatNumber(int64(peak))))
}

// renderKindBreakdown totals the charted months per record kind.
func (a App) renderKindBreakdown(width int) string {
	var sum model.MonthlyStats
	for _, m := range a.summary.months {
		sum.Residents += m.Residents
		sum.IDCards += m.IDCards
		sum.Clearances += m.Clearances
		sum.Businesses += m.Businesses
	}
	return components.HorizontalBars([]components.Bar{
		{Label: model.KindResident.Title(), Value: sum.Residents},
		{Label: model.KindIDCard.Title(), Value: sum.IDCards},
		{Label: model.KindClearance.Title(), Value: sum.Clearances},
		{Label: model.KindBusiness.Title(), Value: sum.Businesses},
	}, width, theme.Active.Blue)
}
