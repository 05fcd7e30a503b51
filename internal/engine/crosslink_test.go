package engine

import (
	"math"
	"testing"

	"finsight/internal/model"
)

func TestCrossLinkOptimizations(t *testing.T) {
	profile := model.UserProfile{Age: 30, MonthlyIncome: 100_000}
	spending := model.SpendingSnapshot{
		"entertainment": 10_000, // 40% -> 4,000 savings
		"food":          20_000, // 15% -> 3,000
		"shopping":      8_000,  // 35% -> 2,800
		"travel":        5_000,  // 30% -> 1,500
		"miscellaneous": 2_000,  // 25% -> 500, under cutoff
	}
	goals := []model.Goal{{
		ID: "emergency-fund", Category: "emergency",
		TargetAmount: 600_000, CurrentAmount: 0, MonthlyContribution: 10_000,
	}}

	linked := CrossLink(goals, spending, profile)
	if len(linked) != 1 {
		t.Fatalf("linked goals = %d, want 1", len(linked))
	}

	var opts []model.GoalInsight
	for _, in := range linked[0].Insights {
		if in.Kind == model.InsightOptimization {
			opts = append(opts, in)
		}
	}
	if len(opts) != 3 {
		t.Fatalf("optimizations = %d, want top 3", len(opts))
	}
	if opts[0].Category != "entertainment" || opts[1].Category != "food" || opts[2].Category != "shopping" {
		t.Fatalf("optimization order = %s/%s/%s, want entertainment/food/shopping",
			opts[0].Category, opts[1].Category, opts[2].Category)
	}
	for _, in := range opts {
		if in.Category == "miscellaneous" {
			t.Fatal("miscellaneous suggestion emitted below the ₹1,000 cutoff")
		}
	}

	// Timeline math: 600k remaining at 10k/month is 60 months; with
	// 4k redirected it drops to ~42.9 months.
	top := opts[0]
	if math.Abs(top.OldTimelineMonths-60) > 1e-9 {
		t.Fatalf("old timeline = %.2f, want 60", top.OldTimelineMonths)
	}
	wantNew := 600_000.0 / 14_000.0
	if math.Abs(top.NewTimelineMonths-wantNew) > 1e-9 {
		t.Fatalf("new timeline = %.2f, want %.2f", top.NewTimelineMonths, wantNew)
	}
	wantImprovement := (60 - wantNew) / 60 * 100
	if math.Abs(top.ImprovementPct-wantImprovement) > 1e-9 {
		t.Fatalf("improvement = %.2f%%, want %.2f%%", top.ImprovementPct, wantImprovement)
	}
}

func TestCrossLinkRiskFlags(t *testing.T) {
	profile := model.UserProfile{Age: 30, MonthlyIncome: 50_000}
	// 48k of 50k spent: savings rate 4%, discretionary 21k
	spending := model.SpendingSnapshot{
		"housing":       15_000,
		"food":          12_000,
		"entertainment": 9_000,
		"shopping":      9_000,
		"miscellaneous": 3_000,
	}
	goals := []model.Goal{{
		ID: "retirement-corpus", Category: "retirement",
		TargetAmount: 2_000_000, MonthlyContribution: 5_000, // 400-month timeline
	}}

	linked := CrossLink(goals, spending, profile)
	var kinds []model.Priority
	risky := 0
	for _, in := range linked[0].Insights {
		if in.Kind == model.InsightRisk {
			risky++
			kinds = append(kinds, in.Severity)
		}
	}
	if risky != 3 {
		t.Fatalf("risk insights = %d, want 3 (low savings, discretionary, long timeline)", risky)
	}
	if kinds[0] != model.PriorityHigh {
		t.Fatalf("low savings rate severity = %s, want high", kinds[0])
	}
}

func TestCrossLinkDoesNotMutateInput(t *testing.T) {
	goals := []model.Goal{{ID: "g", TargetAmount: 100_000, MonthlyContribution: 2_000}}
	_ = CrossLink(goals, model.SpendingSnapshot{"entertainment": 10_000}, model.UserProfile{MonthlyIncome: 50_000})
	if goals[0].Insights != nil {
		t.Fatal("CrossLink mutated the input goal slice")
	}
}

func TestCrossLinkCompletedGoalGetsNoOptimizations(t *testing.T) {
	goals := []model.Goal{{
		ID: "done", TargetAmount: 100_000, CurrentAmount: 100_000, MonthlyContribution: 2_000,
	}}
	linked := CrossLink(goals, model.SpendingSnapshot{"entertainment": 20_000}, model.UserProfile{MonthlyIncome: 200_000})
	for _, in := range linked[0].Insights {
		if in.Kind == model.InsightOptimization {
			t.Fatal("optimization emitted for a fully funded goal")
		}
	}
}
