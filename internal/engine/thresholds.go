package engine

import (
	"fmt"

	"finsight/internal/config"
	"finsight/internal/model"
)

// categoryBase holds the unadjusted income fractions for one governed
// spending category. Warning is the flag level, target is where the
// budget-control rules steer the user.
type categoryBase struct {
	category string
	warning  float64
	target   float64
}

// Evaluation order is fixed so the output slice ordering is stable.
var categoryBases = []categoryBase{
	{"housing", 0.40, 0.35},
	{"food", 0.25, 0.20},
	{"transport", 0.15, 0.12},
	{"entertainment", 0.15, 0.10},
	{"shopping", 0.12, 0.08},
	{"miscellaneous", 0.08, 0.05},
}

type ageBracket struct {
	label    string
	maxAge   int // inclusive
	spending float64
	savings  float64
}

var ageBrackets = []ageBracket{
	{"under 25", 24, 1.10, 0.90},
	{"25-35", 35, 1.00, 1.00},
	{"36-50", 50, 0.90, 1.10},
	{"over 50", model.MaxAge, 0.80, 1.25},
}

type incomeBracket struct {
	label  string
	max    float64 // exclusive, 0 = open
	factor float64
}

var incomeBrackets = []incomeBracket{
	{"under ₹30k", 30_000, 1.20},
	{"₹30k-75k", 75_000, 1.00},
	{"₹75k-1.5L", 150_000, 0.90},
	{"above ₹1.5L", 0, 0.80},
}

// tierSpendingMultipliers scales category thresholds by city tier:
// metro rents and commutes eat a bigger income share.
var tierSpendingMultipliers = map[config.Tier]float64{
	config.Tier1:    1.15,
	config.Tier1_5:  1.05,
	config.Tier2:    0.95,
	config.TierNone: 0.90,
}

// riskSavingsMultipliers: higher risk tolerance lowers the mandated
// savings floor, since more capital is expected to flow to investments.
var riskSavingsMultipliers = map[model.RiskTier]float64{
	model.RiskConservative:            1.15,
	model.RiskModerate:                1.00,
	model.RiskAggressive:              0.85,
	model.RiskSophisticatedAggressive: 0.75,
}

// Savings band base fractions and clamp bounds.
const (
	savingsBaseMin     = 0.15
	savingsBaseTarget  = 0.22
	savingsBaseOptimal = 0.32
	savingsFloor       = 0.10
	savingsCeiling     = 0.40
)

func ageBracketFor(age int) ageBracket {
	for _, b := range ageBrackets {
		if age <= b.maxAge {
			return b
		}
	}
	return ageBrackets[len(ageBrackets)-1]
}

func incomeBracketFor(income float64) incomeBracket {
	for _, b := range incomeBrackets {
		if b.max == 0 || income < b.max {
			return b
		}
	}
	return incomeBrackets[len(incomeBrackets)-1]
}

// ComputeThresholds derives personalized spending and savings thresholds
// for a profile. Out-of-range age or income is a precondition violation
// surfaced to the caller, not clamped: the goal math downstream depends
// on these bounds.
func ComputeThresholds(profile model.UserProfile) (model.ThresholdSet, error) {
	if err := profile.Validate(); err != nil {
		return model.ThresholdSet{}, err
	}

	ageB := ageBracketFor(profile.Age)
	incomeB := incomeBracketFor(profile.MonthlyIncome)
	tier := config.ResolveTier(profile.Location)
	tierM := tierSpendingMultipliers[tier]

	factor := ageB.spending * incomeB.factor * tierM

	categories := make([]model.CategoryThreshold, 0, len(categoryBases))
	for _, base := range categoryBases {
		categories = append(categories, model.CategoryThreshold{
			Category:        base.category,
			WarningFraction: base.warning * factor,
			TargetFraction:  base.target * factor,
			Reasoning: fmt.Sprintf(
				"base %.0f%%/%.0f%% of income, age %s ×%.2f, income %s ×%.2f, %s city ×%.2f",
				base.warning*100, base.target*100,
				ageB.label, ageB.spending,
				incomeB.label, incomeB.factor,
				tier, tierM,
			),
		})
	}

	riskM := riskSavingsMultipliers[profile.Risk]
	savingsFactor := riskM * ageB.savings

	minimum := clamp(savingsBaseMin*savingsFactor, savingsFloor, savingsCeiling)
	target := clamp(savingsBaseTarget*savingsFactor, minimum, savingsCeiling)
	optimal := clamp(savingsBaseOptimal*savingsFactor, target, savingsCeiling)

	savings := model.SavingsBand{
		Minimum: minimum,
		Target:  target,
		Optimal: optimal,
		Reasoning: fmt.Sprintf(
			"base 15/22/32%% of income, %s risk ×%.2f, age %s ×%.2f, clamped to 10-40%%",
			profile.Risk, riskM, ageB.label, ageB.savings,
		),
	}

	return model.ThresholdSet{Categories: categories, Savings: savings}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
