package cmd

import (
	"fmt"

	"finsight/internal/cli"

	"github.com/spf13/cobra"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Suggested financial goals with funding progress",
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	advice, data, _, _, err := computeAdvice()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("GOALS  %s", data.Profile.Name)))
	fmt.Println()

	if len(data.Goals) > 0 {
		fmt.Printf("  %d existing goal(s) carried from your profile.\n\n", len(data.Goals))
	}

	if len(advice.Goals) == 0 {
		fmt.Println("  No new goals suggested; your existing goals cover the essentials.")
		fmt.Println()
		return nil
	}

	for _, g := range advice.Goals {
		fmt.Printf("  %s  %s\n", g.Title, cli.PriorityStyle(g.Priority).Render(g.Priority.String()))
		fmt.Printf("    %s of %s  %s\n",
			cli.FormatINR(g.CurrentAmount),
			cli.FormatINR(g.TargetAmount),
			cli.RenderGoalProgress(g.ProgressFraction(), 24))
		fmt.Printf("    Contribute %s/mo", cli.FormatINRCompact(g.MonthlyContribution))
		if g.MonthlyContribution > 0 && g.Remaining() > 0 {
			fmt.Printf(", done in %s", cli.FormatMonths(g.Remaining()/g.MonthlyContribution))
		}
		fmt.Println()
		if g.Description != "" {
			fmt.Printf("    %s\n", g.Description)
		}
		fmt.Println()
	}
	return nil
}
