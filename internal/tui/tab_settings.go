package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/components"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldSlotCount
	settingsFieldContinuation
	settingsFieldIdleTimeout
	settingsFieldMaxAttempts
	settingsFieldCooldown
	settingsFieldPassword
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message until the next edit
	saveErr error // non-nil if the last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

// updateSettingsKey handles cursor movement and starting an edit.
func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false
	a.settings.saveErr = nil

	cfg := a.cfg
	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldSlotCount:
		ti.Placeholder = "40 (even, at least 4)"
		ti.SetValue(strconv.Itoa(cfg.General.SlotCount))
	case settingsFieldContinuation:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(cfg.General.ContinuationHeaders))
	case settingsFieldIdleTimeout:
		ti.Placeholder = "300 (seconds, 0 never locks)"
		ti.SetValue(strconv.Itoa(cfg.Security.IdleTimeoutSec))
	case settingsFieldMaxAttempts:
		ti.Placeholder = "5"
		ti.SetValue(strconv.Itoa(cfg.Security.MaxAttempts))
	case settingsFieldCooldown:
		ti.Placeholder = "30 (seconds)"
		ti.SetValue(strconv.Itoa(cfg.Security.CooldownSec))
	case settingsFieldPassword:
		ti.Placeholder = "new password (empty removes the lock)"
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.saveErr = a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		if a.settings.saveErr != nil {
			a.log.Warn().Err(a.settings.saveErr).Int("field", a.settings.cursor).Msg("settings not saved")
		}
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited value to the live app and persists it.
func (a *App) settingsSave() error {
	val := strings.TrimSpace(a.settings.input.Value())
	if a.settings.cursor == settingsFieldPassword {
		return a.changePassword(a.settings.input.Value())
	}

	cfg := a.cfg
	relayout := false
	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			return fmt.Errorf("unknown theme %q", val)
		}
		cfg.Appearance.Theme = val
	case settingsFieldSlotCount:
		n, err := strconv.Atoi(val)
		if err != nil || n < 4 || n%2 != 0 {
			return fmt.Errorf("slot count must be an even number of at least 4")
		}
		cfg.General.SlotCount = n
		relayout = true
	case settingsFieldContinuation:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("enter true or false")
		}
		cfg.General.ContinuationHeaders = b
		relayout = true
	case settingsFieldIdleTimeout, settingsFieldMaxAttempts, settingsFieldCooldown:
		n, err := strconv.Atoi(val)
		if err != nil || n < 0 {
			return fmt.Errorf("enter a whole number")
		}
		switch a.settings.cursor {
		case settingsFieldIdleTimeout:
			cfg.Security.IdleTimeoutSec = n
		case settingsFieldMaxAttempts:
			if n == 0 {
				return fmt.Errorf("at least one attempt is required")
			}
			cfg.Security.MaxAttempts = n
		case settingsFieldCooldown:
			cfg.Security.CooldownSec = n
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.gate.IdleTimeout = time.Duration(cfg.Security.IdleTimeoutSec) * time.Second
	a.gate.MaxAttempts = cfg.Security.MaxAttempts
	a.gate.Cooldown = time.Duration(cfg.Security.CooldownSec) * time.Second
	if relayout {
		a.repaginate()
	}
	return nil
}

func (a *App) changePassword(pw string) error {
	if pw == "" {
		if err := a.store.SetSetting(store.SettingPasswordHash, ""); err != nil {
			return fmt.Errorf("storing password: %w", err)
		}
		a.gate.SetHash("", a.now())
		a.log.Info().Msg("password removed")
		return nil
	}
	if err := validateNewPassword(pw); err != nil {
		return err
	}
	hash, err := auth.HashPassword(pw)
	if err != nil {
		return err
	}
	if err := a.store.SetSetting(store.SettingPasswordHash, hash); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}
	a.gate.SetHash(hash, a.now())
	a.log.Info().Msg("password changed")
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg
	innerW := components.CardInnerWidth(cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	password := "(not set)"
	if a.gate.Hash != "" {
		password = "••••••••"
	}
	idle := fmt.Sprintf("%ds", cfg.Security.IdleTimeoutSec)
	if cfg.Security.IdleTimeoutSec == 0 {
		idle = "never"
	}

	fields := []struct {
		label string
		value string
	}{
		{"Theme", cfg.Appearance.Theme},
		{"Slots per page", strconv.Itoa(cfg.General.SlotCount)},
		{"Repeat headers", strconv.FormatBool(cfg.General.ContinuationHeaders)},
		{"Idle lock", idle},
		{"Max attempts", strconv.Itoa(cfg.Security.MaxAttempts)},
		{"Cooldown", fmt.Sprintf("%ds", cfg.Security.CooldownSec)},
		{"Password", password},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			if i == settingsFieldPassword && a.settings.input.Value() != "" {
				formBody.WriteString("  ")
				formBody.WriteString(fmt.Sprintf("%-16s ", ""))
				formBody.WriteString(components.StrengthMeter(auth.Strength(a.settings.input.Value()), 20))
				formBody.WriteString("\n")
			}
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString("  ")
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	total := 0
	for _, ls := range a.lists {
		total += len(ls.items)
	}

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Database:       ") + valueStyle.Render(a.dbPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:    ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Records loaded: ") + valueStyle.Render(cli.FormatNumber(int64(total))) + "\n")
	live := "off"
	if a.watcher != nil {
		live = "on"
	}
	infoBody.WriteString(labelStyle.Render("Live reload:    ") + valueStyle.Render(live))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
