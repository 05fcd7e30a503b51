package engine

import (
	"math"
	"testing"

	"finsight/internal/model"
)

func TestRecommendBudgetControlScenario(t *testing.T) {
	profile := model.UserProfile{
		ID: "u1", Age: 30, MonthlyIncome: 100_000,
		Location: "Jaipur", Risk: model.RiskModerate, Profession: "Engineer",
	}
	spending := model.SpendingSnapshot{
		"entertainment": 25_000,
		"food":          15_000,
		"housing":       30_000,
		"transport":     5_000,
	}
	thresholds, err := ComputeThresholds(profile)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}

	recs := Recommend(RecommendInputs{
		Profile:    profile,
		Spending:   spending,
		Portfolio:  model.PortfolioSummary{DiversificationScore: 0.8, AnnualReturnPct: 8},
		Thresholds: thresholds,
	})

	var budget []model.Recommendation
	for _, r := range recs {
		if r.Category == "budget" {
			budget = append(budget, r)
		}
	}
	if len(budget) != 1 {
		t.Fatalf("budget-control recommendations = %d, want exactly 1 (only entertainment exceeds)", len(budget))
	}

	rec := budget[0]
	if rec.ID != "budget-control-entertainment" {
		t.Fatalf("rec id = %s, want budget-control-entertainment", rec.ID)
	}

	ct, _ := thresholds.Category("entertainment")
	wantSavings := 25_000 - ct.TargetFraction*profile.MonthlyIncome
	if math.Abs(rec.MonthlyAmount-wantSavings) > 1e-9 {
		t.Fatalf("monthly savings = %.2f, want %.2f (spend - target threshold)", rec.MonthlyAmount, wantSavings)
	}
}

func TestRecommendSavingsAcceleration(t *testing.T) {
	profile := model.UserProfile{Age: 30, MonthlyIncome: 50_000, Risk: model.RiskModerate}
	spending := model.SpendingSnapshot{"housing": 18_000, "food": 12_000, "transport": 6_000,
		"entertainment": 6_000, "shopping": 5_000} // 47k spent, 6% saved
	thresholds, err := ComputeThresholds(profile)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}

	recs := Recommend(RecommendInputs{
		Profile: profile, Spending: spending,
		Portfolio:  model.PortfolioSummary{DiversificationScore: 0.8},
		Thresholds: thresholds,
	})

	found := false
	for _, r := range recs {
		if r.ID == "savings-acceleration" {
			found = true
			if r.MonthlyAmount <= 0 {
				t.Fatalf("savings acceleration amount = %.2f, want > 0", r.MonthlyAmount)
			}
		}
	}
	if !found {
		t.Fatal("no savings-acceleration recommendation for a 6% savings rate")
	}
}

func TestRecommendWealthAndRetirementRules(t *testing.T) {
	profile := model.UserProfile{Age: 50, MonthlyIncome: 200_000, Risk: model.RiskModerate}
	thresholds, err := ComputeThresholds(profile)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}

	recs := Recommend(RecommendInputs{
		Profile:  profile,
		Spending: model.SpendingSnapshot{"housing": 40_000},
		Portfolio: model.PortfolioSummary{
			DiversificationScore: 0.4,
			AnnualReturnPct:      14,
			MonthlyInvestment:    10_000,
		},
		Thresholds: thresholds,
	})

	byID := make(map[string]model.Recommendation, len(recs))
	for _, r := range recs {
		byID[r.ID] = r
	}

	wealth, ok := byID["wealth-building"]
	if !ok {
		t.Fatal("wealth-building rule did not fire for income 200k with no investment goal")
	}
	if wealth.MonthlyAmount != 200_000*0.20 {
		t.Fatalf("wealth sizing = %.0f, want %.0f", wealth.MonthlyAmount, 200_000*0.20)
	}

	if _, ok := byID["diversification"]; !ok {
		t.Fatal("diversification rule did not fire for score 0.4")
	}
	if _, ok := byID["scale-investment"]; !ok {
		t.Fatal("scale-investment rule did not fire for 14% returns at 5% allocation")
	}

	retire, ok := byID["retirement-acceleration"]
	if !ok {
		t.Fatal("retirement-acceleration rule did not fire at age 50")
	}
	if retire.Priority != model.PriorityUrgent {
		t.Fatalf("retirement priority = %s, want urgent", retire.Priority)
	}
	if retire.MonthlyAmount != 200_000*0.30 {
		t.Fatalf("retirement sizing = %.0f, want %.0f", retire.MonthlyAmount, 200_000*0.30)
	}
}

func TestRecommendSuppressesExistingAndInvestmentGoals(t *testing.T) {
	profile := model.UserProfile{Age: 50, MonthlyIncome: 200_000, Risk: model.RiskModerate}
	thresholds, err := ComputeThresholds(profile)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}

	recs := Recommend(RecommendInputs{
		Profile:  profile,
		Spending: model.SpendingSnapshot{"housing": 40_000},
		Portfolio: model.PortfolioSummary{
			DiversificationScore: 0.9,
			AnnualReturnPct:      8,
		},
		Thresholds:  thresholds,
		Goals:       []model.Goal{{ID: "startup-fund", Category: "investment"}},
		ExistingIDs: map[string]bool{"retirement-acceleration": true},
	})

	for _, r := range recs {
		if r.ID == "wealth-building" {
			t.Fatal("wealth-building fired despite an investment-category goal")
		}
		if r.ID == "retirement-acceleration" {
			t.Fatal("retirement-acceleration re-emitted despite existing id")
		}
	}
}
