package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/tui"
	"github.com/theirongolddev/brgy/internal/tui/theme"
	"github.com/theirongolddev/brgy/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagNoWatch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive registry",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload when the database changes")
	rootCmd.AddCommand(tuiCmd)
}

// defaultTUILogPath keeps TUI logs off the screen.
func defaultTUILogPath() string {
	return filepath.Join(pipeline.DataDir(), "brgy.log")
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	path := dbPath()
	var w *watch.Watcher
	if !flagNoWatch {
		w, err = watch.New(path, watch.DefaultDebounce, logger)
		if err != nil {
			// the app works without live reload
			logger.Warn().Err(err).Msg("database watcher unavailable")
			w = nil
		} else {
			defer w.Close()
		}
	}

	app := tui.NewApp(tui.Options{
		Store:   st,
		DBPath:  path,
		Config:  appCfg,
		Logger:  logger,
		Watcher: w,
		Now:     time.Now,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
