package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/brgy/internal/validate"

	"github.com/spf13/cobra"
)

var businessForm validate.BusinessForm

var businessCmd = &cobra.Command{
	Use:   "business",
	Short: "Register and archive businesses",
}

var businessAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a business",
	Args:  cobra.NoArgs,
	RunE:  runBusinessAdd,
}

var businessArchiveCmd = &cobra.Command{
	Use:   "archive <business-id>",
	Short: "Archive a business; its permits leave every list",
	Args:  cobra.ExactArgs(1),
	RunE:  runBusinessArchive,
}

func init() {
	f := businessAddCmd.Flags()
	f.StringVar(&businessForm.Name, "name", "", "Business name")
	f.StringVar(&businessForm.OwnerName, "owner", "", "Owner's full name")
	f.StringVar(&businessForm.Address, "address", "", "Business address")
	f.StringVar(&businessForm.Category, "category", "retail", "Category: "+strings.Join(validate.Categories, ", "))

	businessCmd.AddCommand(businessAddCmd, businessArchiveCmd)
	rootCmd.AddCommand(businessCmd)
}

func runBusinessAdd(_ *cobra.Command, _ []string) error {
	b, errs := validate.Business(businessForm)
	if errs != nil {
		printFormErrors(errs)
		return fmt.Errorf("invalid business: %w", errs)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := st.AddBusiness(b)
	if err != nil {
		return err
	}
	logger.Info().Str("id", added.ID).Msg("business registered")

	fmt.Printf("\n  Registered %s (%s)\n  ID: %s\n\n", added.Name, added.OwnerName, added.ID)
	return nil
}

func runBusinessArchive(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ArchiveBusiness(args[0]); err != nil {
		return fmt.Errorf("business %s: %w", args[0], err)
	}
	logger.Info().Str("id", args[0]).Msg("business archived")
	fmt.Printf("\n  Archived business %s\n\n", args[0])
	return nil
}
