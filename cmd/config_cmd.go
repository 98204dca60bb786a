// Package cmd implements the brgy CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/brgy/internal/config"
	"github.com/theirongolddev/brgy/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:          %s\n", dbPath())
	fmt.Printf("    Slots per page:    %d\n", cfg.General.SlotCount)
	fmt.Printf("    Repeat headers:    %v\n", cfg.General.ContinuationHeaders)
	fmt.Println()

	fmt.Println("  [Security]")
	if cfg.Security.IdleTimeoutSec > 0 {
		fmt.Printf("    Idle lock:         %ds\n", cfg.Security.IdleTimeoutSec)
	} else {
		fmt.Println("    Idle lock:         never")
	}
	fmt.Printf("    Max attempts:      %d\n", cfg.Security.MaxAttempts)
	fmt.Printf("    Cooldown:          %ds\n", cfg.Security.CooldownSec)
	fmt.Printf("    Password:          %s\n", passwordStatus())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Logging.File)
	}
	fmt.Println()

	fmt.Println("  Run `brgy passwd` to change the password.")
	return nil
}

func passwordStatus() string {
	st, err := openStore()
	if err != nil {
		return "unknown (" + err.Error() + ")"
	}
	defer st.Close()

	hash, _, err := st.Setting(store.SettingPasswordHash)
	switch {
	case err != nil:
		return "unknown (" + err.Error() + ")"
	case hash == "":
		return "not set"
	default:
		return "set"
	}
}
