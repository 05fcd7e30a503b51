package cmd

import (
	"fmt"

	"finsight/internal/cli"
	"finsight/internal/model"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Spending-to-goal insights: accelerations and risk flags",
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(_ *cobra.Command, _ []string) error {
	advice, data, _, _, err := computeAdvice()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("INSIGHTS  %s", data.Profile.Name)))
	fmt.Println()

	any := false
	for _, g := range advice.Goals {
		if len(g.Insights) == 0 {
			continue
		}
		any = true
		fmt.Printf("  %s\n", g.Title)
		for _, in := range g.Insights {
			switch in.Kind {
			case model.InsightOptimization:
				fmt.Printf("    ↑ %s\n", in.Message)
				fmt.Printf("      %s → %s (%.0f%% faster)\n",
					cli.FormatMonths(in.OldTimelineMonths),
					cli.FormatMonths(in.NewTimelineMonths),
					in.ImprovementPct)
			case model.InsightRisk:
				marker := cli.PriorityStyle(in.Severity).Render("!")
				fmt.Printf("    %s %s\n", marker, in.Message)
			}
		}
		fmt.Println()
	}

	if !any {
		fmt.Println("  No cross-goal insights; spending and goals look consistent.")
		fmt.Println()
	}
	return nil
}
