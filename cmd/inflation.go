package cmd

import (
	"fmt"

	"finsight/internal/cli"

	"github.com/spf13/cobra"
)

var inflationCmd = &cobra.Command{
	Use:   "inflation",
	Short: "Personal inflation rate with category breakdown",
	RunE:  runInflation,
}

func init() {
	rootCmd.AddCommand(inflationCmd)
}

func runInflation(_ *cobra.Command, _ []string) error {
	advice, data, _, _, err := computeAdvice()
	if err != nil {
		return err
	}
	inf := advice.Inflation

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PERSONAL INFLATION  %s", data.Profile.Name)))
	fmt.Println()

	printInflationSummary(inf)

	if data.Spending.Total() == 0 {
		fmt.Println("  No spending recorded; the breakdown below uses the standard basket.")
		fmt.Println()
	}

	maxContribution := inf.Breakdown[0].ContributionPct
	rows := make([][]string, 0, len(inf.Breakdown))
	for _, contrib := range inf.Breakdown {
		rows = append(rows, []string{
			contrib.Category,
			fmt.Sprintf("%.1f%%", contrib.WeightPct),
			cli.FormatRate(contrib.Rate),
			fmt.Sprintf("%.1f%%", contrib.ContributionPct),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Category Breakdown",
		Headers: []string{"Category", "Weight", "Rate", "Contribution"},
		Rows:    rows,
	}))
	fmt.Println()

	for _, contrib := range inf.Breakdown {
		fmt.Printf("  %-14s %s\n", contrib.Category,
			cli.RenderContributionBar(contrib.ContributionPct, maxContribution, 30))
	}
	fmt.Println()
	return nil
}
