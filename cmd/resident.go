package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/validate"

	"github.com/spf13/cobra"
)

var residentForm validate.ResidentForm

var residentCmd = &cobra.Command{
	Use:   "resident",
	Short: "Register, show and archive residents",
}

var residentAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a resident",
	Args:  cobra.NoArgs,
	RunE:  runResidentAdd,
}

var residentShowCmd = &cobra.Command{
	Use:   "show <resident-id>",
	Short: "Show a resident and the records issued to them",
	Args:  cobra.ExactArgs(1),
	RunE:  runResidentShow,
}

var residentArchiveCmd = &cobra.Command{
	Use:   "archive <resident-id>",
	Short: "Archive a resident; their records leave every list",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setResidentArchived(args[0], true)
	},
}

var residentRestoreCmd = &cobra.Command{
	Use:   "restore <resident-id>",
	Short: "Restore an archived resident",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return setResidentArchived(args[0], false)
	},
}

func init() {
	f := residentAddCmd.Flags()
	f.StringVar(&residentForm.FirstName, "first", "", "First name")
	f.StringVar(&residentForm.MiddleName, "middle", "", "Middle name")
	f.StringVar(&residentForm.LastName, "last", "", "Last name")
	f.StringVar(&residentForm.Suffix, "suffix", "", "Suffix: Jr., Sr., II, III, IV")
	f.StringVar(&residentForm.Sex, "sex", "", "Sex: M or F")
	f.StringVar(&residentForm.Birthdate, "birthdate", "", "Birthdate as YYYY-MM-DD")
	f.StringVar(&residentForm.CivilStatus, "civil-status", "single", "single, married, widowed or separated")
	f.StringVar(&residentForm.Address, "address", "", "Home address")
	f.StringVar(&residentForm.Contact, "contact", "", "Mobile number, 09XXXXXXXXX")

	residentCmd.AddCommand(residentAddCmd, residentShowCmd, residentArchiveCmd, residentRestoreCmd)
	rootCmd.AddCommand(residentCmd)
}

// printFormErrors lists validation messages field by field.
func printFormErrors(errs validate.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	fmt.Println()
	for _, f := range fields {
		fmt.Println(cli.RenderError(errs[f]))
	}
	fmt.Println()
}

func runResidentAdd(_ *cobra.Command, _ []string) error {
	r, errs := validate.Resident(residentForm, time.Now())
	if errs != nil {
		printFormErrors(errs)
		return fmt.Errorf("invalid resident: %w", errs)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	added, err := st.AddResident(r)
	if err != nil {
		return err
	}
	logger.Info().Str("id", added.ID).Msg("resident registered")

	fmt.Printf("\n  Registered %s\n  ID: %s\n\n", added.DisplayName(), added.ID)
	return nil
}

func runResidentShow(_ *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.Resident(args[0])
	if err != nil {
		return fmt.Errorf("resident %s: %w", args[0], err)
	}

	now := time.Now()
	age := "-"
	if !r.Birthdate.IsZero() {
		age = fmt.Sprintf("%d", r.Age(now))
	}
	status := "active"
	if r.Archived {
		status = "archived"
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(r.DisplayName()))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:    []string{"Field", "Value"},
		RightAlign: []bool{false, false},
		Rows: [][]string{
			{"ID", r.ID},
			{"Sex", r.Sex},
			{"Birthdate", cli.FormatDate(r.Birthdate)},
			{"Age", age},
			{"Civil status", r.CivilStatus},
			{"Address", r.Address},
			{"Contact", r.Contact},
			{"Registered", cli.FormatDate(r.Registered) + " (" + cli.FormatAge(r.Registered, now) + ")"},
			{"Status", status},
		},
	}))

	var issued []model.ListItem
	for _, kind := range []model.Kind{model.KindIDCard, model.KindClearance} {
		items, err := st.Records(kind)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.OwnerID == r.ID {
				issued = append(issued, it)
			}
		}
	}
	pipeline.SortByIssuedDesc(issued)

	rows := make([][]string, 0, len(issued))
	for _, it := range issued {
		rows = append(rows, []string{cli.FormatDate(it.Issued), it.Kind.Title(), it.Purpose, it.ID})
	}
	if len(rows) > 0 {
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:      "Issued records",
			Headers:    []string{"Issued", "Kind", "Purpose", "Record ID"},
			RightAlign: []bool{false, false, false, false},
			Rows:       rows,
		}))
	}
	fmt.Println()
	return nil
}

func setResidentArchived(id string, archived bool) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if archived {
		err = st.ArchiveResident(id)
	} else {
		err = st.RestoreResident(id)
	}
	if err != nil {
		return fmt.Errorf("resident %s: %w", id, err)
	}

	verb := "Archived"
	if !archived {
		verb = "Restored"
	}
	logger.Info().Str("id", id).Bool("archived", archived).Msg("resident updated")
	fmt.Printf("\n  %s resident %s\n\n", verb, id)
	return nil
}
