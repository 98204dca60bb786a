package cmd

import (
	"fmt"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/store"
	"github.com/theirongolddev/brgy/internal/validate"

	"github.com/spf13/cobra"
)

var (
	flagPurpose string
	flagIssued  string
)

var issueCmd = &cobra.Command{
	Use:   "issue <id|clearance|permit> <owner-id>",
	Short: "Issue a barangay ID, clearance or business permit",
	Long: "Issue a barangay ID or clearance to a resident, or a permit to a business.\n" +
		"Clearances need a --purpose.",
	Args: cobra.ExactArgs(2),
	RunE: runIssue,
}

func init() {
	issueCmd.Flags().StringVar(&flagPurpose, "purpose", "", "Purpose of the record")
	issueCmd.Flags().StringVar(&flagIssued, "date", "", "Issue date as YYYY-MM-DD (default now)")
	rootCmd.AddCommand(issueCmd)
}

func runIssue(_ *cobra.Command, args []string) error {
	req, errs := validate.IssueRequest(validate.IssueForm{
		Kind:    args[0],
		OwnerID: args[1],
		Purpose: flagPurpose,
	})
	if errs != nil {
		printFormErrors(errs)
		return fmt.Errorf("invalid request: %w", errs)
	}

	at, err := parseDateFlag("--date", flagIssued)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.IssueRecord(req.Kind, req.OwnerID, req.Purpose, at)
	if err != nil {
		return fmt.Errorf("issuing %s: %w", req.Kind, err)
	}
	logger.Info().
		Str("kind", rec.Kind.String()).
		Str("owner", rec.OwnerID).
		Str("id", rec.ID).
		Msg("record issued")

	owner := rec.OwnerID
	if rec.Kind == model.KindBusiness {
		if b, err := st.Business(rec.OwnerID); err == nil {
			owner = b.Name
		}
	} else if r, err := st.Resident(rec.OwnerID); err == nil {
		owner = r.DisplayName()
	}

	fmt.Printf("\n  Issued %s to %s on %s\n  Record ID: %s\n",
		recordNoun(rec.Kind), owner, cli.FormatDate(rec.Issued), rec.ID)
	if page := pageOf(st, rec); page > 0 {
		fmt.Println(cli.RenderMuted(fmt.Sprintf("  Listed on page %d", page)))
	}
	fmt.Println()
	return nil
}

// pageOf finds the list page a record lands on with the configured layout.
func pageOf(st *store.Store, rec model.Record) int {
	src := newSource(st)
	items, err := src.Fetch(rec.Kind, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("locating issued record")
		return 0
	}
	pager, err := src.Paginate(items, appCfg.General.SlotCount, appCfg.General.ContinuationHeaders)
	if err != nil {
		logger.Warn().Err(err).Msg("locating issued record")
		return 0
	}
	return pager.Locate(rec.ID)
}

func recordNoun(k model.Kind) string {
	switch k {
	case model.KindIDCard:
		return "barangay ID"
	case model.KindClearance:
		return "clearance"
	case model.KindBusiness:
		return "business permit"
	}
	return k.String()
}
