package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/brgy/internal/cli"
	"github.com/theirongolddev/brgy/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagMonths int

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Registry totals and records issued per month",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().IntVarP(&flagMonths, "months", "m", 12, "Months to show")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	if stats.Residents == 0 && stats.Businesses == 0 && stats.ArchivedResidents == 0 {
		fmt.Println("\n  The registry is empty.")
		fmt.Println("  Register someone with `brgy resident add`, then come back!")
		return nil
	}

	months := flagMonths
	if months < 1 {
		months = 1
	}
	now := time.Now()
	recs, err := st.RecordsSince(now.AddDate(0, -months, 0))
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	series := pipeline.LastMonths(pipeline.AggregateMonths(recs), now, months)

	fmt.Println()
	fmt.Println(cli.RenderTitle("BARANGAY REGISTRY"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Registry", "Count"},
		Rows: [][]string{
			{"Residents", cli.FormatNumber(int64(stats.Residents))},
			{"Archived residents", cli.FormatNumber(int64(stats.ArchivedResidents))},
			{"Businesses", cli.FormatNumber(int64(stats.Businesses))},
			{"---"},
			{"Barangay IDs issued", cli.FormatNumber(int64(stats.IDCards))},
			{"Clearances issued", cli.FormatNumber(int64(stats.Clearances))},
		},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(series))
	totals := make([]float64, 0, len(series))
	for i := len(series) - 1; i >= 0; i-- {
		m := series[i]
		rows = append(rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatNumber(int64(m.Residents)),
			cli.FormatNumber(int64(m.IDCards)),
			cli.FormatNumber(int64(m.Clearances)),
			cli.FormatNumber(int64(m.Businesses)),
			cli.FormatNumber(int64(m.Total())),
		})
	}
	for _, m := range series {
		totals = append(totals, float64(m.Total()))
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Last %d months", months),
		Headers: []string{"Month", "Residents", "IDs", "Clearances", "Businesses", "Total"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Printf("  Trend  %s\n\n", cli.RenderSparkline(totals))
	return nil
}
