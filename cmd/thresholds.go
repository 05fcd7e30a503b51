package cmd

import (
	"fmt"

	"finsight/internal/cli"
	"finsight/internal/model"

	"github.com/spf13/cobra"
)

// advicePriorityFor grades an overrun for display: past 1.5x the
// warning line it is high, otherwise medium.
func advicePriorityFor(spend, warning float64) model.Priority {
	if spend > 1.5*warning {
		return model.PriorityHigh
	}
	return model.PriorityMedium
}

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Personalized spending thresholds and savings band",
	RunE:  runThresholds,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)
}

func runThresholds(_ *cobra.Command, _ []string) error {
	advice, data, _, _, err := computeAdvice()
	if err != nil {
		return err
	}
	income := data.Profile.MonthlyIncome

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDING THRESHOLDS  %s", data.Profile.Name)))
	fmt.Println()

	rows := make([][]string, 0, len(advice.Thresholds.Categories))
	for _, ct := range advice.Thresholds.Categories {
		spend := data.Spending[ct.Category]
		status := "ok"
		if spend > ct.WarningFraction*income {
			status = cli.PriorityStyle(advicePriorityFor(spend, ct.WarningFraction*income)).Render("over")
		}
		rows = append(rows, []string{
			ct.Category,
			cli.FormatINR(ct.TargetFraction * income),
			cli.FormatINR(ct.WarningFraction * income),
			cli.FormatINR(spend),
			status,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Per Category",
		Headers: []string{"Category", "Target", "Warning", "Actual", "Status"},
		Rows:    rows,
	}))
	fmt.Println()

	for _, ct := range advice.Thresholds.Categories {
		fmt.Printf("  %-14s %s\n", ct.Category, ct.Reasoning)
	}
	fmt.Println()

	printSavingsBand(advice.Thresholds.Savings, income)
	fmt.Printf("  %s\n\n", advice.Thresholds.Savings.Reasoning)
	return nil
}
