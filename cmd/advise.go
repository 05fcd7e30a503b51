package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finsight/internal/advisor"
	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/model"
	"finsight/internal/store"

	"github.com/spf13/cobra"
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Full advice report: inflation, thresholds, goals, recommendations",
	RunE:  runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(_ *cobra.Command, _ []string) error {
	advice, data, cfg, asOf, err := computeAdvice()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FINANCIAL ADVICE  %s", data.Profile.Name)))
	fmt.Println()

	printInflationSummary(advice.Inflation)

	// Run history: delta against the previous run plus a trend line.
	if !flagNoStore {
		if history := recordRun(cfg, data.Profile.ID, advice, asOf); len(history) > 1 {
			prev := history[len(history)-2]
			rates := make([]float64, len(history))
			for i, r := range history {
				rates[i] = r.PersonalRate
			}
			fmt.Printf("  Trend: %s  (%s vs last run)\n\n",
				cli.RenderSparkline(rates),
				cli.FormatDelta(advice.Inflation.PersonalRate, prev.PersonalRate))
		}
	}

	printSavingsBand(advice.Thresholds.Savings, data.Profile.MonthlyIncome)
	printGoalsTable(advice.Goals)
	printRecommendations(advice.Recommendations)

	fmt.Println("  " + commentary(cfg, advice))
	fmt.Println()
	return nil
}

// recordRun appends this computation to the run history and returns
// the updated history, oldest first. Store failures are reported but
// never fail the command.
func recordRun(cfg config.Config, profileID string, advice model.AdviceResult, asOf time.Time) []store.RunRecord {
	db, err := store.Open(storePath(cfg))
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Run history unavailable: %v\n", err)
		}
		return nil
	}
	defer func() { _ = db.Close() }()

	if err := db.RecordRun(profileID, asOf, advice); err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Recording run failed: %v\n", err)
		}
		return nil
	}

	history, err := db.RunHistory(profileID, 12)
	if err != nil {
		return nil
	}
	return history
}

func printInflationSummary(inf model.InflationResult) {
	sev := cli.SeverityStyle(inf.Severity)
	fmt.Printf("  Personal inflation: %s (%s)\n",
		sev.Render(cli.FormatRate(inf.PersonalRate)),
		sev.Render(inf.Severity.String()))
	fmt.Printf("  Local baseline:     %s (%s)\n", cli.FormatRate(inf.LocationBaseline), inf.Tier)
	fmt.Printf("  Difference:         %s points\n\n", cli.FormatDelta(inf.PersonalRate, inf.LocationBaseline))
}

func printSavingsBand(band model.SavingsBand, income float64) {
	rows := [][]string{
		{"Minimum", cli.FormatPercent(band.Minimum), cli.FormatINR(band.Minimum * income)},
		{"Target", cli.FormatPercent(band.Target), cli.FormatINR(band.Target * income)},
		{"Optimal", cli.FormatPercent(band.Optimal), cli.FormatINR(band.Optimal * income)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings Band",
		Headers: []string{"Level", "Rate", "Per Month"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printGoalsTable(goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Println("  No new goals suggested.")
		fmt.Println()
		return
	}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.Title,
			cli.FormatINRCompact(g.TargetAmount),
			cli.FormatINRCompact(g.MonthlyContribution) + "/mo",
			cli.PriorityStyle(g.Priority).Render(g.Priority.String()),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Suggested Goals",
		Headers: []string{"Goal", "Target", "Contribution", "Priority"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printRecommendations(recs []model.Recommendation) {
	if len(recs) == 0 {
		fmt.Println("  No actions needed right now.")
		fmt.Println()
		return
	}
	for _, rec := range recs {
		marker := cli.PriorityStyle(rec.Priority).Render("●")
		fmt.Printf("  %s %s", marker, rec.Title)
		if rec.MonthlyAmount > 0 {
			fmt.Printf("  (%s/mo)", cli.FormatINRCompact(rec.MonthlyAmount))
		}
		fmt.Println()
		if rec.Rationale != "" {
			fmt.Printf("    %s\n", rec.Rationale)
		}
	}
	fmt.Println()
}

// commentary fetches remote narrative when an advisor is configured,
// falling back to the deterministic local text.
func commentary(cfg config.Config, advice model.AdviceResult) string {
	if client := advisor.NewClient(cfg.Advisor.BaseURL, config.GetAdvisorKey(cfg)); client != nil {
		if text, err := client.Commentary(context.Background(), advice); err == nil {
			return text
		} else if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Advisor unavailable: %v\n", err)
		}
	}
	return advisor.Fallback(advice)
}

// storePath returns the SQLite database location inside the data dir.
func storePath(cfg config.Config) string {
	return filepath.Join(dataDir(cfg), "finsight.db")
}
