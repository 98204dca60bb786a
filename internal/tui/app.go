// Package tui provides the interactive Bubble Tea app for brgy.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/components"
	"github.com/theirongolddev/brgy/internal/tui/theme"
	"github.com/theirongolddev/brgy/internal/watch"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Tab indexes. The record tabs come first, in model.Kinds order.
const (
	tabResidents = iota
	tabIDs
	tabClearances
	tabBusinesses
	tabSummary
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 180

	headerHeight     = 2 // tab bar + search line
	minContentHeight = 5
)

// Options configures a new App.
type Options struct {
	Store   *store.Store
	DBPath  string
	Config  config.Config
	Logger  zerolog.Logger
	Watcher *watch.Watcher // nil disables live reload
	Now     func() time.Time
}

// App is the root Bubble Tea model.
type App struct {
	store   *store.Store
	source  pipeline.Source
	cfg     config.Config
	dbPath  string
	log     zerolog.Logger
	watcher *watch.Watcher
	now     func() time.Time

	gate *auth.Gate
	lock lockState

	// One list per record kind, indexed by model.Kind.
	lists    [model.NumKinds]listState
	summary  summaryState
	settings settingsState

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	status    string
	statusErr bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

// NewApp creates the TUI model. It reads the stored password hash to decide
// between the lock screen and first-run setup.
func NewApp(opts Options) App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	hash, _, err := opts.Store.Setting(store.SettingPasswordHash)
	if err != nil {
		opts.Logger.Error().Err(err).Msg("reading password hash")
	}
	sec := opts.Config.Security

	a := App{
		store:   opts.Store,
		source:  pipeline.Source{Store: opts.Store, Logger: opts.Logger},
		cfg:     opts.Config,
		dbPath:  opts.DBPath,
		log:     opts.Logger,
		watcher: opts.Watcher,
		now:     now,
		gate: auth.NewGate(hash,
			time.Duration(sec.IdleTimeoutSec)*time.Second,
			sec.MaxAttempts,
			time.Duration(sec.CooldownSec)*time.Second),
		spinner:   sp,
		needSetup: hash == "" && !config.Exists(),
	}
	for _, k := range model.Kinds {
		a.lists[k] = newListState()
	}
	a.lock = newLockState()
	if a.needSetup {
		a.setupVals = &setupValues{Theme: a.cfg.Appearance.Theme}
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		tickCmd(),
		loadSummaryCmd(a.store, a.now()),
	}
	for _, k := range model.Kinds {
		cmds = append(cmds, loadRecordsCmd(a.source, k, ""))
	}
	if a.watcher != nil {
		cmds = append(cmds, waitForChange(a.watcher))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// locked reports whether the lock screen is showing.
func (a App) locked() bool {
	return !a.needSetup && a.gate.Locked(a.now())
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.locked() {
			return a.updateLock(msg)
		}
		a.gate.Touch(a.now())
		return a.updateKey(msg)

	case tea.MouseMsg:
		if a.needSetup || a.locked() || a.showHelp {
			return a, nil
		}
		a.gate.Touch(a.now())
		return a.updateMouse(msg)

	case recordsLoadedMsg:
		return a.applyRecords(msg)

	case detailLoadedMsg:
		ls := &a.lists[msg.kind]
		if ls.selectedID() == msg.id {
			ls.detail = msg.detail
			ls.detailErr = msg.err
		}
		return a, nil

	case summaryLoadedMsg:
		a.summary.loaded = true
		a.summary.stats = msg.stats
		a.summary.months = msg.months
		a.summary.err = msg.err
		return a, nil

	case dbChangedMsg:
		a.log.Debug().Msg("reloading after database change")
		return a, tea.Batch(a.reloadAll(), waitForChange(a.watcher))

	case spinner.TickMsg:
		if !a.allLoaded() {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		if !a.needSetup && a.gate.Locked(a.now()) && !a.lock.shown {
			a.lock = newLockState()
			a.lock.shown = true
			a.showHelp = false
			a.log.Info().Msg("locked after idle timeout")
			return a, tea.Batch(tickCmd(), textinput.Blink)
		}
		if !a.gate.Locked(a.now()) {
			a.lock.shown = false
		}
		return a, tickCmd()
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.locked() {
		var cmd tea.Cmd
		a.lock.input, cmd = a.lock.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Text inputs own the keyboard while editing.
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if kind, ok := a.activeKind(); ok && a.lists[kind].searching {
		return a.updateSearch(kind, msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if kind, ok := a.activeKind(); ok {
		if m, cmd, handled := a.updateRecordsKey(kind, key); handled {
			return m, cmd
		}
	}
	if a.activeTab == tabSettings {
		if m, cmd, handled := a.updateSettingsKey(key); handled {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "L":
		if a.gate.Hash != "" {
			a.gate.Lock()
			a.lock = newLockState()
			a.lock.shown = true
			return a, textinput.Blink
		}
		return a, nil
	case "r":
		a.status = "Reloading..."
		a.statusErr = false
		return a, a.reloadAll()
	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	kind, onRecords := a.activeKind()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if onRecords && msg.Action == tea.MouseActionPress {
			return a.turnPage(kind, -1)
		}
	case tea.MouseButtonWheelDown:
		if onRecords && msg.Action == tea.MouseActionPress {
			return a.turnPage(kind, 1)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
			return a, nil
		}
		if onRecords {
			if i := a.gridSlotAt(msg.X, msg.Y); i >= 0 {
				return a.selectSlot(kind, i)
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetup(); err != nil {
			a.setStatus(fmt.Sprintf("Setup not saved: %s", err), true)
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

// activeKind returns the record kind of the active tab, if it is a record
// tab.
func (a App) activeKind() (model.Kind, bool) {
	if a.activeTab < len(model.Kinds) {
		return model.Kinds[a.activeTab], true
	}
	return 0, false
}

func (a App) allLoaded() bool {
	for _, ls := range a.lists {
		if !ls.loaded {
			return false
		}
	}
	return true
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
	if isErr {
		a.log.Warn().Msg(s)
	}
}

func (a App) reloadAll() tea.Cmd {
	cmds := []tea.Cmd{loadSummaryCmd(a.store, a.now())}
	for _, k := range model.Kinds {
		cmds = append(cmds, loadRecordsCmd(a.source, k, a.lists[k].query))
	}
	return tea.Batch(cmds...)
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// contentLeft is the screen column where the content area starts.
func (a App) contentLeft() int {
	return (a.width - a.contentWidth()) / 2
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.locked() {
		return a.viewLock()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  brgy needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1-6", "Jump to tab"},
			{"Tab S-Tab", "Next / Previous tab"},
			{"h j k l", "Move selection in the grid"},
			{"[ ] PgUp PgDn", "Previous / Next page"},
			{"g G", "First / Last page"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"Enter Space", "Select / Deselect"},
			{"/", "Search by keywords"},
			{"Esc", "Clear search or selection"},
			{"r", "Reload records"},
			{"L", "Lock now"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-14s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + search line
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderSearchLine(w)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, a.statusHints(), a.statusText(), a.statusErr)

	// 3. Content zone height
	contentH := h - headerHeight - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	if kind, ok := a.activeKind(); ok {
		content = a.renderRecordsTab(kind, cw)
	} else if a.activeTab == tabSummary {
		content = a.renderSummaryTab(cw)
	} else {
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderSearchLine(w int) string {
	t := theme.Active

	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	accentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	var line string
	if kind, ok := a.activeKind(); ok {
		ls := a.lists[kind]
		switch {
		case ls.searching:
			line = pillStyle.Render(" Search: ") + ls.input.View()
		case ls.query != "":
			line = pillStyle.Render(" Search: ") + accentStyle.Render(ls.query) +
				pillStyle.Render("  (esc to clear)")
		default:
			line = pillStyle.Render(" " + kind.Title() + "  (/ to search)")
		}
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(w).MaxWidth(w).Render(line)
}

func (a App) statusHints() string {
	if _, ok := a.activeKind(); ok {
		return "[?]help  [/]search  [[ ]]page  [q]uit"
	}
	return "[?]help  [q]uit"
}

func (a App) statusText() string {
	if a.status != "" {
		return a.status
	}
	if kind, ok := a.activeKind(); ok {
		ls := a.lists[kind]
		if ls.pager == nil {
			return ""
		}
		return fmt.Sprintf("page %d/%d · %d records", ls.state.Page, ls.state.PageCount, len(ls.items))
	}
	return ""
}

// ─── Helpers ────────────────────────────────────────────────────

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// dbChangedMsg is sent when the watcher sees the database change.
type dbChangedMsg struct{}

func waitForChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changes()
		return dbChangedMsg{}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
