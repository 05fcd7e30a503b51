package engine

import (
	"testing"
	"time"

	"finsight/internal/model"
)

var goalAsOf = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func findGoal(t *testing.T, goals []model.Goal, id string) model.Goal {
	t.Helper()
	for _, g := range goals {
		if g.ID == id {
			return g
		}
	}
	t.Fatalf("goal %q not generated", id)
	return model.Goal{}
}

func TestGenerateGoalsMumbaiScenario(t *testing.T) {
	profile := model.UserProfile{
		ID: "u1", Age: 28, MonthlyIncome: 125_000,
		Location: "Mumbai, Maharashtra", Risk: model.RiskAggressive,
		Profession: "Software Engineer",
	}

	goals, err := GenerateGoals(profile, model.PortfolioSummary{}, nil, goalAsOf)
	if err != nil {
		t.Fatalf("GenerateGoals: %v", err)
	}

	emergency := findGoal(t, goals, "emergency-fund")
	if emergency.TargetAmount != 125_000*6 {
		t.Fatalf("emergency target = %.0f, want %.0f", emergency.TargetAmount, 125_000.0*6)
	}
	if emergency.Priority != model.PriorityHigh {
		t.Fatalf("emergency priority = %s, want high", emergency.Priority)
	}

	housing := findGoal(t, goals, "housing-downpayment")
	unscaled := 125_000.0 * 24
	if housing.TargetAmount <= unscaled {
		t.Fatalf("housing target = %.0f, want > unscaled %.0f (Mumbai property multiplier)",
			housing.TargetAmount, unscaled)
	}

	// age 28 > 25: retirement corpus present
	findGoal(t, goals, "retirement-corpus")
	// technology track
	findGoal(t, goals, "tech-skill-upgrade")
	findGoal(t, goals, "startup-fund") // aggressive, income > 1L
}

func TestGenerateGoalsFreelanceScenario(t *testing.T) {
	profile := model.UserProfile{
		ID: "u2", Age: 25, MonthlyIncome: 55_000,
		Location: "Indore, Madhya Pradesh", Risk: model.RiskModerate,
		Profession: "Content Writer",
	}

	goals, err := GenerateGoals(profile, model.PortfolioSummary{}, nil, goalAsOf)
	if err != nil {
		t.Fatalf("GenerateGoals: %v", err)
	}

	for _, g := range goals {
		if g.ID == "housing-downpayment" {
			t.Fatal("housing goal generated despite income <= 80,000 gate")
		}
	}

	buffer := findGoal(t, goals, "freelance-buffer")
	if buffer.TargetAmount != 55_000*6 {
		t.Fatalf("freelance buffer target = %.0f, want %.0f (income × 6, tier-2 general ×1.0)",
			buffer.TargetAmount, 55_000.0*6)
	}
}

func TestGenerateGoalsIdempotent(t *testing.T) {
	profile := model.UserProfile{
		ID: "u3", Age: 40, MonthlyIncome: 90_000,
		Location: "Chennai", Risk: model.RiskModerate, Profession: "Teacher",
	}
	portfolio := model.PortfolioSummary{BankBalance: 200_000, MutualFunds: 300_000}

	first, err := GenerateGoals(profile, portfolio, nil, goalAsOf)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := GenerateGoals(profile, portfolio, first, goalAsOf)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("second call emitted %d goals, want 0", len(second))
	}
}

func TestGenerateGoalsInvariants(t *testing.T) {
	profiles := []model.UserProfile{
		{Age: 22, MonthlyIncome: 20_000, Location: "", Risk: model.RiskConservative, Profession: "Nurse"},
		{Age: 34, MonthlyIncome: 160_000, Location: "Gurgaon", Risk: model.RiskSophisticatedAggressive, Profession: "Founder"},
		{Age: 58, MonthlyIncome: 45_000, Location: "Varanasi", Risk: model.RiskModerate, Profession: "Shop Owner"},
	}
	portfolio := model.PortfolioSummary{BankBalance: 10_000_000} // overfunds small targets

	for _, p := range profiles {
		goals, err := GenerateGoals(p, portfolio, nil, goalAsOf)
		if err != nil {
			t.Fatalf("GenerateGoals(%+v): %v", p, err)
		}
		for _, g := range goals {
			if g.MonthlyContribution <= 0 {
				t.Fatalf("%s: monthly contribution %.2f <= 0", g.ID, g.MonthlyContribution)
			}
			if g.CurrentAmount > g.TargetAmount {
				t.Fatalf("%s: current %.0f exceeds target %.0f", g.ID, g.CurrentAmount, g.TargetAmount)
			}
			if g.TargetAmount < 0 || g.CurrentAmount < 0 {
				t.Fatalf("%s: negative amounts %+v", g.ID, g)
			}
		}
	}
}

func TestGenerateGoalsAtRetirementAge(t *testing.T) {
	profile := model.UserProfile{
		ID: "u4", Age: 65, MonthlyIncome: 90_000,
		Location: "Kochi", Risk: model.RiskModerate, Profession: "Doctor",
	}

	goals, err := GenerateGoals(profile, model.PortfolioSummary{}, nil, goalAsOf)
	if err != nil {
		t.Fatalf("GenerateGoals: %v", err)
	}

	// Zero accumulation years: the corpus goal must not appear, and no
	// goal may carry a non-finite or non-positive contribution.
	for _, g := range goals {
		if g.ID == "retirement-corpus" {
			t.Fatal("retirement corpus generated at retirement age")
		}
		if !(g.MonthlyContribution > 0) {
			t.Fatalf("%s: monthly contribution %v, want > 0", g.ID, g.MonthlyContribution)
		}
	}

	// One year out the goal is still emitted with a finite contribution.
	profile.Age = 64
	goals, err = GenerateGoals(profile, model.PortfolioSummary{}, nil, goalAsOf)
	if err != nil {
		t.Fatalf("GenerateGoals at 64: %v", err)
	}
	ret := findGoal(t, goals, "retirement-corpus")
	if !(ret.MonthlyContribution > 0) {
		t.Fatalf("retirement contribution %v, want > 0", ret.MonthlyContribution)
	}
}

func TestEmergencyMonthsAdjustments(t *testing.T) {
	cases := []struct {
		name   string
		age    int
		income float64
		risk   model.RiskTier
		want   int
	}{
		{"baseline", 30, 60_000, model.RiskModerate, 6},
		{"aggressive keeps six", 28, 125_000, model.RiskAggressive, 6},
		{"young minus one", 22, 60_000, model.RiskModerate, 5},
		{"older plus one", 55, 60_000, model.RiskModerate, 7},
		{"conservative plus one", 30, 60_000, model.RiskConservative, 7},
		{"sophisticated minus one", 30, 60_000, model.RiskSophisticatedAggressive, 5},
		{"high income minus one", 30, 200_000, model.RiskModerate, 5},
		{"low income plus one", 30, 25_000, model.RiskModerate, 7},
		{"clamped low", 24, 200_000, model.RiskSophisticatedAggressive, 3},
		{"clamped high", 55, 25_000, model.RiskConservative, 9},
	}

	for _, tc := range cases {
		if got := emergencyMonths(tc.age, tc.income, tc.risk); got != tc.want {
			t.Fatalf("%s: emergencyMonths = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestEmergencyFundMonotonicity(t *testing.T) {
	// Within an income bracket, more income never shrinks the target.
	base := model.UserProfile{Age: 30, Location: "Pune", Risk: model.RiskModerate, Profession: "Engineer"}

	var prev float64
	for income := 80_000.0; income <= 140_000; income += 10_000 {
		p := base
		p.MonthlyIncome = income
		goals, err := GenerateGoals(p, model.PortfolioSummary{}, nil, goalAsOf)
		if err != nil {
			t.Fatalf("income %.0f: %v", income, err)
		}
		target := findGoal(t, goals, "emergency-fund").TargetAmount
		if target < prev {
			t.Fatalf("emergency target decreased: %.0f -> %.0f at income %.0f", prev, target, income)
		}
		prev = target
	}

	// Past 45, increasing age never decreases the month count.
	prevMonths := 0
	for age := 46; age <= 65; age++ {
		months := emergencyMonths(age, 60_000, model.RiskModerate)
		if months < prevMonths {
			t.Fatalf("emergencyMonths decreased at age %d: %d -> %d", age, prevMonths, months)
		}
		prevMonths = months
	}
}
