package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// lockState is the password prompt shown while the gate is locked.
type lockState struct {
	input textinput.Model
	err   string
	shown bool // set once the idle lock has been announced
}

func newLockState() lockState {
	ti := textinput.New()
	ti.Placeholder = "password"
	ti.CharLimit = 128
	ti.Width = 32
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Focus()
	return lockState{input: ti}
}

func (a App) updateLock(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		now := a.now()
		err := a.gate.Unlock(a.lock.input.Value(), now)
		switch {
		case err == nil:
			a.log.Info().Msg("unlocked")
			a.lock = newLockState()
			return a, nil
		case errors.Is(err, auth.ErrLocked):
			_, until := a.gate.Frozen(now)
			secs := int(until.Sub(now).Seconds()) + 1
			a.lock.err = fmt.Sprintf("Too many attempts. Try again in %ds.", secs)
			a.log.Warn().Time("until", until).Msg("unlock frozen")
		case errors.Is(err, auth.ErrWrongPassword):
			a.lock.err = fmt.Sprintf("Wrong password. %d attempts left.", a.gate.Remaining())
		default:
			a.lock.err = err.Error()
		}
		a.lock.input.SetValue("")
		return a, nil
	case "esc":
		a.lock.input.SetValue("")
		return a, nil
	}

	var cmd tea.Cmd
	a.lock.input, cmd = a.lock.input.Update(msg)
	return a, cmd
}

func (a App) viewLock() string {
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

	mutedStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	errStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ brgy is locked"))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Enter the password to continue."))
	b.WriteString("\n\n")
	b.WriteString(a.lock.input.View())
	if a.lock.err != "" {
		b.WriteString("\n\n")
		b.WriteString(errStyle.Render(a.lock.err))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("[Enter] unlock  [Ctrl+C] quit"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}
