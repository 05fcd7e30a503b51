package engine

import (
	"fmt"
	"sort"

	"finsight/internal/model"
)

// Optimization-potential table: how much of a category's spend can
// realistically be redirected to a goal. Suggestions below the absolute
// cutoff are noise and are not emitted.
var optimizationPotential = []struct {
	Category     string
	MaxReduction float64
}{
	{"entertainment", 0.40},
	{"food", 0.15},
	{"shopping", 0.35},
	{"travel", 0.30},
	{"miscellaneous", 0.25},
}

const (
	minInsightSavings    = 1_000 // rupees/month
	maxInsightsPerGoal   = 3
	lowSavingsRateCutoff = 0.10
	discretionaryFactor  = 1.5
	longTimelineMonths   = 60
)

// Categories counted as discretionary for the goal-risk check.
var discretionaryCategories = []string{"entertainment", "shopping", "travel", "miscellaneous"}

// CrossLink attaches spending-linked insights to each goal: the top
// acceleration opportunities by redirected savings, plus goal-at-risk
// flags. The input slice is not mutated; annotated copies are returned.
func CrossLink(
	goals []model.Goal,
	spending model.SpendingSnapshot,
	profile model.UserProfile,
) []model.Goal {
	income := profile.MonthlyIncome
	savingsRate := 0.0
	if income > 0 {
		savingsRate = (income - spending.Total()) / income
	}

	var discretionary float64
	for _, c := range discretionaryCategories {
		discretionary += spending[c]
	}

	out := make([]model.Goal, len(goals))
	for i, goal := range goals {
		g := goal
		g.Insights = nil

		remaining := g.Remaining()
		if remaining > 0 && g.MonthlyContribution > 0 {
			g.Insights = append(g.Insights, optimizations(g, remaining, spending)...)
		}

		// Risk flags, fixed order: funding risk first, then behavior,
		// then timeline.
		oldMonths := timelineMonths(remaining, g.MonthlyContribution)
		if savingsRate < lowSavingsRateCutoff {
			g.Insights = append(g.Insights, model.GoalInsight{
				Kind:     model.InsightRisk,
				Severity: model.PriorityHigh,
				Message:  fmt.Sprintf("Savings rate %.0f%% is under 10%%; this goal's funding is at risk.", savingsRate*100),
				NavigateTo: "spending-insights",
			})
		}
		if discretionary > discretionaryFactor*g.MonthlyContribution {
			g.Insights = append(g.Insights, model.GoalInsight{
				Kind:     model.InsightRisk,
				Severity: model.PriorityMedium,
				Message: fmt.Sprintf(
					"Discretionary spend ₹%.0f is %.1f× this goal's monthly contribution.",
					discretionary, discretionary/g.MonthlyContribution,
				),
				NavigateTo: "spending-insights",
			})
		}
		if remaining > 0 && oldMonths > longTimelineMonths {
			g.Insights = append(g.Insights, model.GoalInsight{
				Kind:     model.InsightRisk,
				Severity: model.PriorityMedium,
				Message: fmt.Sprintf(
					"At the current pace this goal takes %.0f months; consider raising the contribution.",
					oldMonths,
				),
				NavigateTo: "goals",
			})
		}

		out[i] = g
	}
	return out
}

// optimizations scans the potential table and returns the top
// opportunities for one goal, largest savings first.
func optimizations(g model.Goal, remaining float64, spending model.SpendingSnapshot) []model.GoalInsight {
	oldMonths := timelineMonths(remaining, g.MonthlyContribution)

	var found []model.GoalInsight
	for _, row := range optimizationPotential {
		savings := spending[row.Category] * row.MaxReduction
		if savings < minInsightSavings {
			continue
		}
		newMonths := timelineMonths(remaining, g.MonthlyContribution+savings)
		improvement := 0.0
		if oldMonths > 0 {
			improvement = (oldMonths - newMonths) / oldMonths * 100
		}
		found = append(found, model.GoalInsight{
			Kind:              model.InsightOptimization,
			Category:          row.Category,
			MonthlySavings:    savings,
			OldTimelineMonths: oldMonths,
			NewTimelineMonths: newMonths,
			ImprovementPct:    improvement,
			Severity:          model.PriorityLow,
			Message: fmt.Sprintf(
				"Trim %s by ₹%.0f/month to finish %.0f months sooner (%.0f%% faster).",
				row.Category, savings, oldMonths-newMonths, improvement,
			),
			NavigateTo: "spending-insights",
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].MonthlySavings > found[j].MonthlySavings
	})
	if len(found) > maxInsightsPerGoal {
		found = found[:maxInsightsPerGoal]
	}
	return found
}

func timelineMonths(remaining, monthly float64) float64 {
	if monthly <= 0 {
		return 0
	}
	return remaining / monthly
}
