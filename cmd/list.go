package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/model"
	"github.com/theirongolddev/brgy/internal/paginator"
	"github.com/theirongolddev/brgy/internal/pipeline"
	"github.com/theirongolddev/brgy/internal/validate"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	maxGridCellWidth = 44
)

var (
	flagPage  int
	flagSlots int
	flagSince string
	flagUntil string
)

func init() {
	for _, lc := range []struct {
		use     string
		aliases []string
		short   string
		kind    model.Kind
	}{
		{"residents", []string{"res"}, "List registered residents by month", model.KindResident},
		{"ids", []string{"id-cards"}, "List issued barangay IDs by month", model.KindIDCard},
		{"clearances", nil, "List issued clearances by month", model.KindClearance},
		{"businesses", []string{"permits"}, "List registered businesses and permits by month", model.KindBusiness},
	} {
		rootCmd.AddCommand(newListCmd(lc.use, lc.aliases, lc.short, lc.kind))
	}
}

func newListCmd(use string, aliases []string, short string, kind model.Kind) *cobra.Command {
	c := &cobra.Command{
		Use:     use + " [keywords...]",
		Aliases: aliases,
		Short:   short,
		Long:    short + ". Keywords narrow the list to names or purposes containing all of them.",
		RunE: func(_ *cobra.Command, args []string) error {
			return runList(kind, args)
		},
	}
	c.Flags().IntVar(&flagPage, "page", 1, "Page to show")
	c.Flags().IntVar(&flagSlots, "slots", 0, "Slots per page (default from config)")
	c.Flags().StringVar(&flagSince, "since", "", "Only records issued on or after YYYY-MM-DD")
	c.Flags().StringVar(&flagUntil, "until", "", "Only records issued before YYYY-MM-DD")
	return c
}

func runList(kind model.Kind, keywords []string) error {
	since, err := parseDateFlag("--since", flagSince)
	if err != nil {
		return err
	}
	until, err := parseDateFlag("--until", flagUntil)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	src := newSource(st)
	items, err := src.Fetch(kind, keywords)
	if err != nil {
		return err
	}
	items = pipeline.FilterByTime(items, since, until)

	slots := appCfg.General.SlotCount
	if flagSlots > 0 {
		slots = flagSlots
	}
	pager, err := src.Paginate(items, slots, appCfg.General.ContinuationHeaders)
	if err != nil {
		return fmt.Errorf("paging %s: %w", kind.Title(), err)
	}

	if len(items) == 0 {
		if len(keywords) > 0 || !since.IsZero() || !until.IsZero() {
			fmt.Printf("\n  No %s match the filter.\n", strings.ToLower(kind.Title()))
		} else {
			fmt.Printf("\n  No %s yet.\n", strings.ToLower(kind.Title()))
		}
		return nil
	}

	state := pager.Goto(pager.Start(), flagPage)
	page := pager.Layout(state.Page)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  page %d of %d", strings.ToUpper(kind.Title()), state.Page, state.PageCount)))
	fmt.Println()
	fmt.Print(cli.RenderGrid(page, paginator.NoSelection, gridCellWidth(), func(it model.ListItem) string {
		return it.Issued.Format("Jan 2")
	}))
	fmt.Println(cli.RenderMuted(fmt.Sprintf("  %s records · %d slots per page · --page N for more",
		cli.FormatNumber(int64(len(items))), pager.SlotCount())))
	return nil
}

// gridCellWidth sizes the two grid columns to the terminal.
func gridCellWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultTermWidth
	}
	// box borders and padding take 4 columns, the column separator 3
	w := (width - 4 - 3 - 2) / paginator.Columns
	if w > maxGridCellWidth {
		w = maxGridCellWidth
	}
	return w
}

// parseDateFlag reads a YYYY-MM-DD flag value; empty means unbounded.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := time.ParseInLocation(validate.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	return d, nil
}
