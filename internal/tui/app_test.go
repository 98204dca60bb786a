package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/components"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

type testEnv struct {
	store *store.Store
	clock *testClock
	cfg   config.Config
}

// newTestEnv opens an empty registry with a saved config, so the app skips
// first-run setup.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	st, err := store.Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	require.NoError(t, config.Save(cfg))

	return &testEnv{
		store: st,
		clock: &testClock{t: time.Date(2024, time.September, 1, 9, 0, 0, 0, time.Local)},
		cfg:   cfg,
	}
}

// seedIDs registers three residents and issues an ID to each:
// Aug 20, Aug 9 and Jul 1.
func (e *testEnv) seedIDs(t *testing.T) {
	t.Helper()
	for _, r := range []struct {
		first, last string
		issued      time.Time
	}{
		{"Ana", "Reyes", time.Date(2024, time.August, 20, 9, 0, 0, 0, time.Local)},
		{"Ben", "Cruz", time.Date(2024, time.August, 9, 9, 0, 0, 0, time.Local)},
		{"Carla", "Santos", time.Date(2024, time.July, 1, 9, 0, 0, 0, time.Local)},
	} {
		res, err := e.store.AddResident(model.Resident{FirstName: r.first, LastName: r.last, Address: "Purok 1"})
		require.NoError(t, err)
		_, err = e.store.IssueRecord(model.KindIDCard, res.ID, "", r.issued)
		require.NoError(t, err)
	}
}

func (e *testEnv) app(t *testing.T) App {
	t.Helper()
	a := NewApp(Options{
		Store:  e.store,
		DBPath: "registry.db",
		Config: e.cfg,
		Logger: zerolog.Nop(),
		Now:    e.clock.now,
	})
	return update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func update(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	m, _ := a.Update(msg)
	app, ok := m.(App)
	require.True(t, ok)
	return app
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(t *testing.T, a App, key string) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(keyMsg(key))
	app, ok := m.(App)
	require.True(t, ok)
	return app, cmd
}

// loadIDs runs the ID list load synchronously and opens the IDs tab.
func loadIDs(t *testing.T, a App) App {
	t.Helper()
	msg := loadRecordsCmd(a.source, model.KindIDCard, "")()
	a = update(t, a, msg)
	a.activeTab = tabIDs
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := len(tab.Name) + 4 // " 1 Name "
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				assert.Equal(t, -1, a.tabAtX(pos), "separator after tab %d", i)
				pos++
			}
		}
		assert.Equal(t, -1, a.tabAtX(pos+5))
	}
}

func TestRecordsKeySelectionAndDetail(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))

	ls := a.lists[model.KindIDCard]
	require.True(t, ls.loaded)
	require.Len(t, ls.items, 3)
	assert.Equal(t, 1, ls.state.PageCount)
	assert.False(t, ls.state.HasSelection())

	// first move selects the first entry, below the August header
	a, cmd := press(t, a, "l")
	assert.Equal(t, 2, a.lists[model.KindIDCard].state.Selected)
	require.NotNil(t, cmd)

	a = update(t, a, cmd())
	detail := a.lists[model.KindIDCard].detail
	require.NotEmpty(t, detail)
	assert.Contains(t, detail, detailLine{"Name", "Reyes, Ana"})
	assert.Contains(t, detail, detailLine{"Record", "Barangay ID"})

	a, _ = press(t, a, "l")
	assert.Equal(t, 3, a.lists[model.KindIDCard].state.Selected)
	assert.Nil(t, a.lists[model.KindIDCard].detail, "detail reloads for the new entry")

	// the July header row is skipped
	a, _ = press(t, a, "l")
	assert.Equal(t, 6, a.lists[model.KindIDCard].state.Selected)
	a, _ = press(t, a, "l")
	assert.Equal(t, 6, a.lists[model.KindIDCard].state.Selected, "no entry further on")

	a, _ = press(t, a, "k")
	assert.Equal(t, 2, a.lists[model.KindIDCard].state.Selected)

	// enter on the selection toggles it off
	a, _ = press(t, a, "enter")
	assert.False(t, a.lists[model.KindIDCard].state.HasSelection())

	a, _ = press(t, a, "j")
	a, _ = press(t, a, "esc")
	assert.False(t, a.lists[model.KindIDCard].state.HasSelection())

	view := a.View()
	assert.Contains(t, view, "Reyes, Ana")
	assert.Contains(t, view, "August 2024")
}

func TestStaleDetailIsDropped(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))

	a, first := press(t, a, "l")
	a, _ = press(t, a, "l")
	a = update(t, a, first())
	assert.Nil(t, a.lists[model.KindIDCard].detail)
}

func TestGridSlotAtMatchesLayout(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))
	require.False(t, a.isCompactLayout())

	// 120 cols: grid card 72 wide, 68 inside, two 33-col cells with a gap of 2
	rowY := headerHeight + 2
	assert.Equal(t, 0, a.gridSlotAt(2, rowY))
	assert.Equal(t, 2, a.gridSlotAt(2, rowY+1))
	assert.Equal(t, 2, a.gridSlotAt(34, rowY+1))
	assert.Equal(t, -1, a.gridSlotAt(35, rowY+1))
	assert.Equal(t, 3, a.gridSlotAt(37, rowY+1))
	assert.Equal(t, 7, a.gridSlotAt(37, rowY+3))
	assert.Equal(t, -1, a.gridSlotAt(1, rowY+1))
	assert.Equal(t, -1, a.gridSlotAt(2, rowY-1))
	assert.Equal(t, -1, a.gridSlotAt(2, rowY+paginator.DefaultSlotCount))

	a = update(t, a, tea.MouseMsg{X: 40, Y: rowY + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 3, a.lists[model.KindIDCard].state.Selected)

	// clicking a header changes nothing
	a = update(t, a, tea.MouseMsg{X: 4, Y: rowY, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, 3, a.lists[model.KindIDCard].state.Selected)

	// clicking the selection again clears it
	a = update(t, a, tea.MouseMsg{X: 40, Y: rowY + 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.False(t, a.lists[model.KindIDCard].state.HasSelection())

	a = update(t, a, tea.MouseMsg{X: 1, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, tabResidents, a.activeTab)
}

func TestPagingKeys(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.General.SlotCount = 4
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))

	state := func() paginator.State { return a.lists[model.KindIDCard].state }
	require.Equal(t, 2, state().PageCount)

	a, _ = press(t, a, "l")
	require.True(t, state().HasSelection())

	a, _ = press(t, a, "]")
	assert.Equal(t, 2, state().Page)
	assert.False(t, state().HasSelection(), "page change clears the selection")
	assert.Equal(t, "Santos, Carla", a.lists[model.KindIDCard].page.Slot(2).Label)

	a, _ = press(t, a, "]")
	assert.Equal(t, 2, state().Page)
	a, _ = press(t, a, "[")
	assert.Equal(t, 1, state().Page)
	a, _ = press(t, a, "G")
	assert.Equal(t, 2, state().Page)
	a, _ = press(t, a, "g")
	assert.Equal(t, 1, state().Page)

	a = update(t, a, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 2, state().Page)
}

func TestRefreshKeepsPage(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.General.SlotCount = 4
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))

	a, _ = press(t, a, "]")
	a, _ = press(t, a, "l")
	require.Equal(t, 2, a.lists[model.KindIDCard].state.Page)
	require.True(t, a.lists[model.KindIDCard].state.HasSelection())

	a = update(t, a, loadRecordsCmd(a.source, model.KindIDCard, "")())
	assert.Equal(t, 2, a.lists[model.KindIDCard].state.Page)
	assert.False(t, a.lists[model.KindIDCard].state.HasSelection())
}

func TestSearchFiltersRecords(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))

	a, _ = press(t, a, "/")
	require.True(t, a.lists[model.KindIDCard].searching)
	a, _ = press(t, a, "ana")
	a, cmd := press(t, a, "enter")
	require.NotNil(t, cmd)
	assert.False(t, a.lists[model.KindIDCard].searching)
	assert.Equal(t, "ana", a.lists[model.KindIDCard].query)

	a = update(t, a, cmd())
	ls := a.lists[model.KindIDCard]
	require.Len(t, ls.items, 1)
	assert.Equal(t, "Reyes, Ana", ls.items[0].DisplayName)
	assert.Equal(t, 1, ls.state.Page)

	// a late result for the old query is ignored
	a = update(t, a, recordsLoadedMsg{kind: model.KindIDCard, query: "", items: nil})
	assert.Len(t, a.lists[model.KindIDCard].items, 1)

	a, cmd = press(t, a, "esc")
	require.NotNil(t, cmd)
	assert.Empty(t, a.lists[model.KindIDCard].query)
	a = update(t, a, cmd())
	assert.Len(t, a.lists[model.KindIDCard].items, 3)
}

func TestIdleLockAndUnlock(t *testing.T) {
	env := newTestEnv(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("Barangay#7"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, env.store.SetSetting(store.SettingPasswordHash, string(hash)))
	env.cfg.Security.IdleTimeoutSec = 60
	env.cfg.Security.MaxAttempts = 2
	env.cfg.Security.CooldownSec = 30

	a := env.app(t)
	require.True(t, a.locked())
	assert.Contains(t, a.View(), "brgy is locked")

	// keys other than the password do not reach the tabs
	a, _ = press(t, a, "5")
	assert.Equal(t, tabResidents, a.activeTab)

	a, _ = press(t, a, "wrong")
	a, _ = press(t, a, "enter")
	assert.Contains(t, a.lock.err, "1 attempts left")
	a, _ = press(t, a, "wrong")
	a, _ = press(t, a, "enter")
	assert.Contains(t, a.lock.err, "Too many attempts")

	env.clock.t = env.clock.t.Add(31 * time.Second)
	a, _ = press(t, a, "Barangay#7")
	a, _ = press(t, a, "enter")
	require.False(t, a.locked())
	assert.Empty(t, a.lock.err)

	env.clock.t = env.clock.t.Add(30 * time.Second)
	a = update(t, a, tickMsg{})
	assert.False(t, a.locked())

	env.clock.t = env.clock.t.Add(61 * time.Second)
	a = update(t, a, tickMsg{})
	assert.True(t, a.locked())
	assert.True(t, a.lock.shown)

	a, _ = press(t, a, "Barangay#7")
	a, _ = press(t, a, "enter")
	assert.False(t, a.locked())

	a, _ = press(t, a, "L")
	assert.True(t, a.locked())
}

func TestNoPasswordNeverLocks(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)
	assert.False(t, a.locked())

	env.clock.t = env.clock.t.Add(24 * time.Hour)
	a = update(t, a, tickMsg{})
	assert.False(t, a.locked())

	a, _ = press(t, a, "L")
	assert.False(t, a.locked())
}

func TestFirstRunShowsSetup(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st, err := store.Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	a := NewApp(Options{Store: st, Config: config.DefaultConfig(), Logger: zerolog.Nop()})
	assert.True(t, a.needSetup)
	require.NotNil(t, a.setupForm)
	assert.False(t, a.locked())
}

func TestValidateNewPassword(t *testing.T) {
	assert.NoError(t, validateNewPassword(""))
	assert.NoError(t, validateNewPassword("Kapitan#2024"))
	assert.ErrorIs(t, validateNewPassword("abc"), auth.ErrTooWeak)
}

func TestSettingsSlotCountRepaginates(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := loadIDs(t, env.app(t))
	require.Equal(t, 1, a.lists[model.KindIDCard].state.PageCount)

	a, _ = press(t, a, "6")
	require.Equal(t, tabSettings, a.activeTab)
	a, _ = press(t, a, "j")
	require.Equal(t, settingsFieldSlotCount, a.settings.cursor)
	a, _ = press(t, a, "enter")
	require.True(t, a.settings.editing)

	a.settings.input.SetValue("5")
	a, _ = press(t, a, "enter")
	assert.Error(t, a.settings.saveErr)
	assert.Equal(t, 40, a.cfg.General.SlotCount)

	a, _ = press(t, a, "enter")
	a.settings.input.SetValue("4")
	a, _ = press(t, a, "enter")
	require.NoError(t, a.settings.saveErr)
	assert.True(t, a.settings.saved)
	assert.Equal(t, 4, a.cfg.General.SlotCount)
	assert.Equal(t, 2, a.lists[model.KindIDCard].state.PageCount)

	saved, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, saved.General.SlotCount)
	assert.Contains(t, a.View(), "Slots per page")
}

func TestSettingsPasswordChange(t *testing.T) {
	env := newTestEnv(t)
	a := env.app(t)
	a.activeTab = tabSettings
	a.settings.cursor = settingsFieldPassword

	a, _ = press(t, a, "enter")
	a.settings.input.SetValue("weak")
	a, _ = press(t, a, "enter")
	assert.ErrorIs(t, a.settings.saveErr, auth.ErrTooWeak)

	a, _ = press(t, a, "enter")
	a.settings.input.SetValue("Kapitan#2024")
	a, _ = press(t, a, "enter")
	require.NoError(t, a.settings.saveErr)

	hash, ok, err := env.store.Setting(store.SettingPasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, auth.CheckPassword(hash, "Kapitan#2024"))
	assert.False(t, a.locked(), "changing the password keeps the session open")

	a, _ = press(t, a, "L")
	assert.True(t, a.locked())
}

func TestSummaryTab(t *testing.T) {
	env := newTestEnv(t)
	env.seedIDs(t)
	a := env.app(t)

	a = update(t, a, loadSummaryCmd(env.store, env.clock.now())())
	require.True(t, a.summary.loaded)
	require.NoError(t, a.summary.err)
	assert.Equal(t, 3, a.summary.stats.Residents)
	assert.Equal(t, 3, a.summary.stats.IDCards)
	require.Len(t, a.summary.months, summaryMonths)
	assert.Equal(t, time.September, a.summary.months[summaryMonths-1].Month.Month())

	a.activeTab = tabSummary
	view := a.View()
	assert.Contains(t, view, "Residents")
	assert.Contains(t, view, "Issued per month")
	assert.True(t, strings.Contains(view, "Aug 2024"))
}

func TestTooNarrow(t *testing.T) {
	env := newTestEnv(t)
	a := update(t, env.app(t), tea.WindowSizeMsg{Width: 60, Height: 20})
	assert.Contains(t, a.View(), "Terminal too narrow")
}
