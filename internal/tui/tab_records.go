package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/components"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// gridGap is the blank columns between the two grid columns.
const gridGap = 2

// listState holds one record tab: the fetched list, its paginator and the
// page and selection the user is looking at.
type listState struct {
	items []model.ListItem
	pager *paginator.Paginator[model.ListItem]
	state paginator.State
	page  paginator.Page[model.ListItem]

	loaded bool
	err    error

	// query is the applied search; shownQuery is the one the current
	// items were fetched for.
	query      string
	shownQuery string
	searching  bool
	input      textinput.Model

	detail    []detailLine
	detailErr error
}

type detailLine struct {
	label string
	value string
}

func newListState() listState {
	return listState{
		state: paginator.State{Page: 1, PageCount: 1, Selected: paginator.NoSelection},
	}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "keywords..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()
	return ti
}

// selectedID returns the record id of the selected entry, or "".
func (ls listState) selectedID() string {
	if !ls.state.HasSelection() {
		return ""
	}
	return ls.page.ID(ls.state.Selected)
}

// selectedItem returns the selected record.
func (ls listState) selectedItem() (model.ListItem, bool) {
	if !ls.state.HasSelection() {
		return model.ListItem{}, false
	}
	return ls.page.Entry(ls.state.Selected)
}

// ─── Messages and commands ──────────────────────────────────────

// recordsLoadedMsg carries a fetched record list.
type recordsLoadedMsg struct {
	kind  model.Kind
	query string
	items []model.ListItem
	err   error
}

// detailLoadedMsg carries the detail lines of one selected record.
type detailLoadedMsg struct {
	kind   model.Kind
	id     string
	detail []detailLine
	err    error
}

func loadRecordsCmd(src pipeline.Source, kind model.Kind, query string) tea.Cmd {
	return func() tea.Msg {
		items, err := src.Fetch(kind, pipeline.Keywords(query))
		return recordsLoadedMsg{kind: kind, query: query, items: items, err: err}
	}
}

func loadDetailCmd(st *store.Store, item model.ListItem, now time.Time) tea.Cmd {
	return func() tea.Msg {
		lines, err := recordDetail(st, item, now)
		return detailLoadedMsg{kind: item.Kind, id: item.ID, detail: lines, err: err}
	}
}

// recordDetail looks up the owner of item and describes both.
func recordDetail(st *store.Store, item model.ListItem, now time.Time) ([]detailLine, error) {
	var lines []detailLine

	if item.Kind.OwnedByBusiness() {
		b, err := st.Business(item.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("loading business: %w", err)
		}
		lines = append(lines,
			detailLine{"Business", b.Name},
			detailLine{"Owner", b.OwnerName},
			detailLine{"Category", b.Category},
			detailLine{"Address", b.Address},
			detailLine{"Registered", cli.FormatDate(b.Registered)},
		)
	} else {
		r, err := st.Resident(item.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("loading resident: %w", err)
		}
		age := "-"
		if !r.Birthdate.IsZero() {
			age = fmt.Sprintf("%d (born %s)", r.Age(now), cli.FormatDate(r.Birthdate))
		}
		lines = append(lines,
			detailLine{"Name", r.DisplayName()},
			detailLine{"Sex", r.Sex},
			detailLine{"Age", age},
			detailLine{"Civil status", r.CivilStatus},
			detailLine{"Address", r.Address},
			detailLine{"Contact", r.Contact},
			detailLine{"Registered", cli.FormatDate(r.Registered)},
		)
	}

	lines = append(lines,
		detailLine{},
		detailLine{"Record", recordTitle(item.Kind)},
		detailLine{"Issued", cli.FormatDate(item.Issued) + "  " + cli.FormatAge(item.Issued, now)},
	)
	if item.Purpose != "" {
		lines = append(lines, detailLine{"Purpose", item.Purpose})
	}
	lines = append(lines, detailLine{"Record ID", item.ID})
	return lines, nil
}

func recordTitle(k model.Kind) string {
	switch k {
	case model.KindResident:
		return "Resident registration"
	case model.KindIDCard:
		return "Barangay ID"
	case model.KindClearance:
		return "Barangay clearance"
	case model.KindBusiness:
		return "Business registration"
	}
	return k.String()
}

// ─── State transitions ──────────────────────────────────────────

func (a App) applyRecords(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	ls := &a.lists[msg.kind]
	if msg.query != ls.query {
		// a newer search is in flight
		return a, nil
	}
	if a.status == "Reloading..." {
		a.status = ""
	}

	ls.loaded = true
	ls.err = msg.err
	ls.detail = nil
	ls.detailErr = nil
	if msg.err != nil {
		a.setStatus(fmt.Sprintf("Loading %s failed: %s", msg.kind.Title(), msg.err), true)
		return a, nil
	}

	pager, err := a.source.Paginate(msg.items, a.cfg.General.SlotCount, a.cfg.General.ContinuationHeaders)
	if err != nil {
		ls.err = err
		a.setStatus(err.Error(), true)
		return a, nil
	}

	keepPage := ls.pager != nil && ls.shownQuery == msg.query
	state := pager.Start()
	if keepPage {
		state = pager.Goto(state, ls.state.Page)
	}

	ls.items = msg.items
	ls.pager = pager
	ls.state = state
	ls.page = pager.Layout(state.Page)
	ls.shownQuery = msg.query
	return a, nil
}

// repaginate rebuilds every loaded list after a layout setting changed.
func (a *App) repaginate() {
	for k := range a.lists {
		ls := &a.lists[k]
		if ls.pager == nil {
			continue
		}
		pager, err := a.source.Paginate(ls.items, a.cfg.General.SlotCount, a.cfg.General.ContinuationHeaders)
		if err != nil {
			a.setStatus(err.Error(), true)
			continue
		}
		ls.pager = pager
		ls.state = pager.Start()
		ls.page = pager.Layout(1)
		ls.detail = nil
	}
}

func (a App) selectSlot(kind model.Kind, i int) (tea.Model, tea.Cmd) {
	ls := &a.lists[kind]
	if ls.pager == nil {
		return a, nil
	}

	state, result := paginator.Select(ls.state, ls.page, i)
	ls.state = state
	switch result {
	case paginator.SelectionShown, paginator.SelectionMoved:
		ls.detail = nil
		ls.detailErr = nil
		if item, ok := ls.selectedItem(); ok {
			return a, loadDetailCmd(a.store, item, a.now())
		}
	case paginator.SelectionCleared:
		ls.detail = nil
		ls.detailErr = nil
	}
	return a, nil
}

// moveSelection moves to the nearest entry step slots away, selecting the
// first entry when nothing is selected yet.
func (a App) moveSelection(kind model.Kind, step int) (tea.Model, tea.Cmd) {
	ls := a.lists[kind]
	if !ls.state.HasSelection() {
		if first := ls.page.FirstEntry(); first >= 0 {
			return a.selectSlot(kind, first)
		}
		return a, nil
	}
	target := ls.page.Step(ls.state.Selected, step)
	if target == ls.state.Selected {
		return a, nil
	}
	return a.selectSlot(kind, target)
}

func (a App) turnPage(kind model.Kind, delta int) (tea.Model, tea.Cmd) {
	ls := &a.lists[kind]
	if ls.pager == nil {
		return a, nil
	}
	switch {
	case delta > 0:
		ls.state = ls.pager.Next(ls.state)
	case delta < 0:
		ls.state = ls.pager.Prev(ls.state)
	}
	ls.page = ls.pager.Layout(ls.state.Page)
	ls.detail = nil
	return a, nil
}

func (a App) gotoPage(kind model.Kind, page int) (tea.Model, tea.Cmd) {
	ls := &a.lists[kind]
	if ls.pager == nil {
		return a, nil
	}
	ls.state = ls.pager.Goto(ls.state, page)
	ls.page = ls.pager.Layout(ls.state.Page)
	ls.detail = nil
	return a, nil
}

// updateRecordsKey handles the keys of a record tab. handled is false for
// keys the global switch should see.
func (a App) updateRecordsKey(kind model.Kind, key string) (tea.Model, tea.Cmd, bool) {
	ls := &a.lists[kind]

	switch key {
	case "/":
		ls.searching = true
		ls.input = newSearchInput()
		ls.input.SetValue(ls.query)
		return a, textinput.Blink, true
	case "esc":
		if ls.state.HasSelection() {
			m, cmd := a.selectSlot(kind, paginator.NoSelection)
			return m, cmd, true
		}
		if ls.query != "" {
			ls.query = ""
			return a, loadRecordsCmd(a.source, kind, ""), true
		}
		return a, nil, true
	case "h", "left":
		m, cmd := a.moveSelection(kind, -1)
		return m, cmd, true
	case "l", "right":
		m, cmd := a.moveSelection(kind, 1)
		return m, cmd, true
	case "k", "up":
		m, cmd := a.moveSelection(kind, -paginator.Columns)
		return m, cmd, true
	case "j", "down":
		m, cmd := a.moveSelection(kind, paginator.Columns)
		return m, cmd, true
	case "enter", " ":
		if ls.state.HasSelection() {
			m, cmd := a.selectSlot(kind, ls.state.Selected)
			return m, cmd, true
		}
		m, cmd := a.moveSelection(kind, 0)
		return m, cmd, true
	case "]", "pgdown", "n":
		m, cmd := a.turnPage(kind, 1)
		return m, cmd, true
	case "[", "pgup", "p":
		m, cmd := a.turnPage(kind, -1)
		return m, cmd, true
	case "g", "home":
		m, cmd := a.gotoPage(kind, 1)
		return m, cmd, true
	case "G", "end":
		m, cmd := a.gotoPage(kind, ls.state.PageCount)
		return m, cmd, true
	}
	return a, nil, false
}

// updateSearch handles key events while the search input is open.
func (a App) updateSearch(kind model.Kind, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ls := &a.lists[kind]

	switch msg.String() {
	case "enter":
		ls.searching = false
		ls.query = strings.Join(pipeline.Keywords(ls.input.Value()), " ")
		return a, loadRecordsCmd(a.source, kind, ls.query)
	case "esc":
		ls.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	ls.input, cmd = ls.input.Update(msg)
	return a, cmd
}

// ─── Rendering ──────────────────────────────────────────────────

// recordCardWidths splits the content width between the grid and detail
// cards. In the compact layout both take the full width, stacked.
func (a App) recordCardWidths(cw int) (grid, detail int) {
	if a.isCompactLayout() {
		return cw, cw
	}
	grid = cw * 3 / 5
	return grid, cw - grid
}

func (a App) renderRecordsTab(kind model.Kind, cw int) string {
	t := theme.Active
	ls := a.lists[kind]
	gridW, detailW := a.recordCardWidths(cw)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	title := kind.Title()
	var body string
	switch {
	case !ls.loaded:
		body = a.spinner.View() + mutedStyle.Render(" Loading records...")
	case ls.err != nil:
		body = errStyle.Render(ls.err.Error())
	default:
		title = fmt.Sprintf("%s · page %d of %d", kind.Title(), ls.state.Page, ls.state.PageCount)
		body = renderGrid(ls.page, ls.state.Selected, components.CardInnerWidth(gridW))
		if len(ls.items) == 0 {
			msg := "No records yet"
			if ls.query != "" {
				msg = "No records match " + fmt.Sprintf("%q", ls.query)
			}
			body = mutedStyle.Render(msg) + "\n" + body
		}
	}
	gridCard := components.ContentCard(title, body, gridW)
	detailCard := components.ContentCard("Details", renderDetail(ls, components.CardInnerWidth(detailW)), detailW)

	if a.isCompactLayout() {
		return gridCard + "\n" + detailCard
	}
	return components.CardRow([]string{gridCard, detailCard})
}

// renderGrid draws a page as rows of two cells. Header rows span both cells.
func renderGrid(pg paginator.Page[model.ListItem], selected, innerW int) string {
	t := theme.Active
	cellW := (innerW - gridGap) / paginator.Columns

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	ruleStyle := lipgloss.NewStyle().Foreground(t.Border)

	rows := make([]string, 0, len(pg.Slots)/paginator.Columns)
	for r := 0; r*paginator.Columns < len(pg.Slots); r++ {
		first := pg.Slot(r * paginator.Columns)
		if first.Kind == paginator.SlotHeader {
			label := cli.Truncate(first.Label, innerW)
			rule := innerW - lipgloss.Width(label) - 1
			line := headerStyle.Render(label)
			if rule > 0 {
				line += " " + ruleStyle.Render(strings.Repeat("─", rule))
			}
			rows = append(rows, line)
			continue
		}

		var line strings.Builder
		for c := 0; c < paginator.Columns; c++ {
			i := r*paginator.Columns + c
			if c > 0 {
				line.WriteString(strings.Repeat(" ", gridGap))
			}
			line.WriteString(renderGridCell(pg.Slot(i), i == selected, cellW))
		}
		rows = append(rows, line.String())
	}
	return strings.Join(rows, "\n")
}

func renderGridCell(s paginator.Slot[model.ListItem], selected bool, w int) string {
	t := theme.Active
	if !s.IsEntry() {
		return strings.Repeat(" ", w)
	}

	marker := "  "
	if selected {
		marker = "▸ "
	}
	date := s.Item.Issued.Format("Jan 2")
	nameW := w - lipgloss.Width(marker) - len(date) - 1
	if nameW < 4 {
		nameW = w - lipgloss.Width(marker)
		date = ""
	}
	name := fmt.Sprintf("%-*s", nameW, cli.Truncate(s.Label, nameW))

	if selected {
		style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
		cell := marker + name
		if date != "" {
			cell += " " + date
		}
		return style.Render(cell)
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	cell := nameStyle.Render(marker + name)
	if date != "" {
		cell += " " + dateStyle.Render(date)
	}
	return cell
}

func renderDetail(ls listState, innerW int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	switch {
	case !ls.state.HasSelection():
		return labelStyle.Render("Select an entry to see its details.")
	case ls.detailErr != nil:
		return errStyle.Render(ls.detailErr.Error())
	case ls.detail == nil:
		return labelStyle.Render("Loading...")
	}

	labelW := 13
	var b strings.Builder
	for i, l := range ls.detail {
		if i > 0 {
			b.WriteString("\n")
		}
		if l.label == "" {
			continue
		}
		value := l.value
		if value == "" {
			value = "-"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, l.label)))
		b.WriteString(valueStyle.Render(cli.Truncate(value, innerW-labelW)))
	}
	return b.String()
}

// gridSlotAt maps a screen position to a slot index of the active record
// tab's grid, or -1. It mirrors renderRecordsTab: the grid card starts right
// under the header, with a border line and a title line above the rows.
func (a App) gridSlotAt(x, y int) int {
	kind, ok := a.activeKind()
	if !ok {
		return -1
	}
	ls := a.lists[kind]
	if ls.pager == nil || ls.err != nil || len(ls.items) == 0 {
		return -1
	}

	gridW, _ := a.recordCardWidths(a.contentWidth())
	cellW := (components.CardInnerWidth(gridW) - gridGap) / paginator.Columns

	row := y - headerHeight - 2
	if row < 0 || row >= len(ls.page.Slots)/paginator.Columns {
		return -1
	}
	rel := x - a.contentLeft() - 2
	var col int
	switch {
	case rel >= 0 && rel < cellW:
		col = 0
	case rel >= cellW+gridGap && rel < 2*cellW+gridGap:
		col = 1
	default:
		return -1
	}
	return row*paginator.Columns + col
}
