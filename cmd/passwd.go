package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/brgy/internal/auth"
	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/store"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	flagRemovePassword bool
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set the password that unlocks the interactive registry",
	Args:  cobra.NoArgs,
	RunE:  runPasswd,
}

func init() {
	passwdCmd.Flags().BoolVar(&flagRemovePassword, "remove", false, "Remove the password so the registry never locks")
	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if flagRemovePassword {
		if err := st.SetSetting(store.SettingPasswordHash, ""); err != nil {
			return fmt.Errorf("removing password: %w", err)
		}
		logger.Info().Msg("password removed")
		fmt.Println("\n  Password removed.")
		return nil
	}

	pw, err := promptPassword("  New password: ")
	if err != nil {
		return err
	}
	if pw == "" {
		return errors.New("empty password; use --remove to clear it")
	}

	score := auth.Strength(pw)
	fmt.Printf("  Strength: %s\n", score.Level)
	if !score.Acceptable() {
		fmt.Println(cli.RenderMuted("  Use at least 8 characters mixing cases, digits and symbols."))
		return fmt.Errorf("%w: %s", auth.ErrTooWeak, score.Level)
	}

	confirm, err := promptPassword("  Confirm password: ")
	if err != nil {
		return err
	}
	if confirm != pw {
		return errors.New("passwords do not match")
	}

	hash, err := auth.HashPassword(pw)
	if err != nil {
		return err
	}
	if err := st.SetSetting(store.SettingPasswordHash, hash); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}
	logger.Info().Msg("password changed")
	fmt.Println("\n  Password saved.")
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}
