package engine

import (
	"fmt"

	"finsight/internal/model"
)

// Rule cutoffs for the recommendation checks.
const (
	wealthIncomeCutoff     = 150_000
	wealthAllocation       = 0.20
	diversificationCutoff  = 0.6
	highReturnCutoff       = 12.0 // annual percent
	investShareTarget      = 0.20
	retirementAgeCutoff    = 45
	retirementAllocation   = 0.30
)

// Categories checked by the budget-control rule, in emission order.
var budgetControlCategories = []string{
	"entertainment", "shopping", "miscellaneous", "food", "transport",
}

// RecommendInputs carries everything the rule checks read.
type RecommendInputs struct {
	Profile    model.UserProfile
	Spending   model.SpendingSnapshot
	Portfolio  model.PortfolioSummary
	Thresholds model.ThresholdSet
	Goals      []model.Goal
	// ExistingIDs suppresses re-emission of recommendations the caller
	// already holds. Not an error; the rule simply stays silent.
	ExistingIDs map[string]bool
}

// Recommend runs the fixed sequence of independent rule checks. Each
// rule emits zero or one recommendation; evaluation order is fixed so
// the output ordering is deterministic.
func Recommend(in RecommendInputs) []model.Recommendation {
	var recs []model.Recommendation
	emit := func(r model.Recommendation) {
		if in.ExistingIDs[r.ID] {
			return
		}
		recs = append(recs, r)
	}

	income := in.Profile.MonthlyIncome

	// Budget control: category spend above its warning threshold.
	for _, category := range budgetControlCategories {
		ct, ok := in.Thresholds.Category(category)
		if !ok {
			continue
		}
		spend := in.Spending[category]
		warning := ct.WarningFraction * income
		if spend <= warning {
			continue
		}
		monthlySavings := spend - ct.TargetFraction*income
		priority := model.PriorityMedium
		if spend > 1.5*warning {
			priority = model.PriorityHigh
		}
		emit(model.Recommendation{
			ID:            "budget-control-" + category,
			Title:         fmt.Sprintf("Rein in %s spending", category),
			Category:      "budget",
			Priority:      priority,
			SourceContext: "threshold analysis",
			Rationale: fmt.Sprintf(
				"%s spend ₹%.0f is above your ₹%.0f warning level (%s).",
				category, spend, warning, ct.Reasoning,
			),
			Impact:        fmt.Sprintf("₹%.0f/month freed, ₹%.0f over a year", monthlySavings, monthlySavings*12),
			MonthlyAmount: monthlySavings,
			NavigateTo:    "spending-insights",
		})
	}

	// Savings acceleration: rate below the personalized minimum.
	savingsRate := 0.0
	if income > 0 {
		savingsRate = (income - in.Spending.Total()) / income
	}
	if savingsRate < in.Thresholds.Savings.Minimum {
		required := (in.Thresholds.Savings.Target - savingsRate) * income
		emit(model.Recommendation{
			ID:            "savings-acceleration",
			Title:         "Raise your savings rate",
			Category:      "savings",
			Priority:      model.PriorityHigh,
			SourceContext: "savings band analysis",
			Rationale: fmt.Sprintf(
				"You save %.0f%% of income; your minimum band is %.0f%%.",
				savingsRate*100, in.Thresholds.Savings.Minimum*100,
			),
			Impact:        fmt.Sprintf("₹%.0f more per month reaches your %.0f%% target", required, in.Thresholds.Savings.Target*100),
			MonthlyAmount: required,
			NavigateTo:    "spending-insights",
		})
	}

	// Wealth building: high income, no investment-flavored goal yet.
	if income > wealthIncomeCutoff && !hasCategory(in.Goals, "investment") {
		amount := income * wealthAllocation
		emit(model.Recommendation{
			ID:            "wealth-building",
			Title:         "Start a wealth-building allocation",
			Category:      "investment",
			Priority:      model.PriorityMedium,
			SourceContext: "goal coverage analysis",
			Rationale:     "Income supports a dedicated investment goal, but none exists yet.",
			Impact:        fmt.Sprintf("₹%.0f/month (20%% of income) into long-term assets", amount),
			MonthlyAmount: amount,
			NavigateTo:    "goals",
		})
	}

	// Diversification: concentrated portfolio.
	if in.Portfolio.DiversificationScore < diversificationCutoff {
		emit(model.Recommendation{
			ID:            "diversification",
			Title:         "Spread your portfolio wider",
			Category:      "investment",
			Priority:      model.PriorityMedium,
			SourceContext: "portfolio analysis",
			Rationale: fmt.Sprintf(
				"Diversification score %.2f is below the %.1f comfort line.",
				in.Portfolio.DiversificationScore, diversificationCutoff,
			),
			Impact:     "Lower drawdown risk without giving up expected return",
			NavigateTo: "portfolio",
		})
	}

	// Scale investment: strong returns, thin monthly allocation.
	if in.Portfolio.AnnualReturnPct > highReturnCutoff &&
		in.Portfolio.MonthlyInvestment < investShareTarget*income {
		gap := investShareTarget*income - in.Portfolio.MonthlyInvestment
		emit(model.Recommendation{
			ID:            "scale-investment",
			Title:         "Scale up what is working",
			Category:      "investment",
			Priority:      model.PriorityHigh,
			SourceContext: "portfolio analysis",
			Rationale: fmt.Sprintf(
				"Returns run at %.1f%% but only ₹%.0f/month is invested.",
				in.Portfolio.AnnualReturnPct, in.Portfolio.MonthlyInvestment,
			),
			Impact:        fmt.Sprintf("₹%.0f/month more brings investing to 20%% of income", gap),
			MonthlyAmount: gap,
			NavigateTo:    "portfolio",
		})
	}

	// Retirement acceleration: late start needs an urgent push.
	if in.Profile.Age > retirementAgeCutoff {
		amount := income * retirementAllocation
		emit(model.Recommendation{
			ID:            "retirement-acceleration",
			Title:         "Accelerate retirement savings",
			Category:      "retirement",
			Priority:      model.PriorityUrgent,
			SourceContext: "age-runway analysis",
			Rationale: fmt.Sprintf(
				"At %d, the compounding runway to %d is short; contributions matter more than returns now.",
				in.Profile.Age, retirementAge,
			),
			Impact:        fmt.Sprintf("₹%.0f/month (30%% of income) toward the corpus", amount),
			MonthlyAmount: amount,
			NavigateTo:    "goals",
		})
	}

	return recs
}

func hasCategory(goals []model.Goal, category string) bool {
	for _, g := range goals {
		if g.Category == category {
			return true
		}
	}
	return false
}
