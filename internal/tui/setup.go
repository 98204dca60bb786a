package tui

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	Password string
	Confirm  string
	Theme    string
}

func newSetupForm(v *setupValues) *huh.Form {
	if !theme.Valid(v.Theme) {
		v.Theme = theme.Default.Name
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to brgy").
				Description("Barangay residents and records registry.\n\nSet a password to protect the records on this machine.\nLeave it empty to run without a lock."),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.Password).
				Validate(validateNewPassword),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&v.Confirm).
				Validate(func(s string) error {
					if s != v.Password {
						return errors.New("passwords do not match")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
		),
	).WithShowHelp(true)
}

// validateNewPassword accepts an empty password (no lock) or one of at
// least fair strength.
func validateNewPassword(pw string) error {
	if pw == "" {
		return nil
	}
	if s := auth.Strength(pw); !s.Acceptable() {
		return fmt.Errorf("%w: %s", auth.ErrTooWeak, s.Level)
	}
	return nil
}

// saveSetup stores the password hash and the chosen theme, then unlocks the
// gate with the new password.
func (a *App) saveSetup() error {
	v := a.setupVals

	theme.SetActive(v.Theme)
	a.cfg.Appearance.Theme = v.Theme
	if err := config.Save(a.cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if v.Password == "" {
		a.log.Info().Msg("setup complete without password")
		return nil
	}
	hash, err := auth.HashPassword(v.Password)
	if err != nil {
		return err
	}
	if err := a.store.SetSetting(store.SettingPasswordHash, hash); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}
	a.gate.SetHash(hash, a.now())
	if err := a.gate.Unlock(v.Password, a.now()); err != nil {
		return err
	}
	a.log.Info().Msg("setup complete")
	return nil
}
