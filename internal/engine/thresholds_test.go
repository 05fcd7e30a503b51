package engine

import (
	"errors"
	"strings"
	"testing"

	"finsight/internal/model"
)

func validProfile() model.UserProfile {
	return model.UserProfile{
		ID:            "u1",
		Age:           30,
		MonthlyIncome: 100_000,
		Location:      "Pune",
		Risk:          model.RiskModerate,
		Profession:    "Software Engineer",
	}
}

func TestComputeThresholdsSavingsOrdering(t *testing.T) {
	profiles := []model.UserProfile{
		{Age: 22, MonthlyIncome: 25_000, Risk: model.RiskConservative},
		{Age: 30, MonthlyIncome: 100_000, Risk: model.RiskModerate},
		{Age: 45, MonthlyIncome: 200_000, Risk: model.RiskAggressive},
		{Age: 60, MonthlyIncome: 60_000, Risk: model.RiskSophisticatedAggressive},
	}

	for _, p := range profiles {
		ts, err := ComputeThresholds(p)
		if err != nil {
			t.Fatalf("ComputeThresholds(%+v): %v", p, err)
		}
		s := ts.Savings
		if !(s.Minimum <= s.Target && s.Target <= s.Optimal) {
			t.Fatalf("savings band not ordered for %+v: %.3f/%.3f/%.3f", p, s.Minimum, s.Target, s.Optimal)
		}
		if s.Minimum < 0.10 || s.Optimal > 0.40 {
			t.Fatalf("savings band outside [0.10, 0.40] for %+v: %.3f/%.3f", p, s.Minimum, s.Optimal)
		}
	}
}

func TestComputeThresholdsWarningAboveTarget(t *testing.T) {
	ts, err := ComputeThresholds(validProfile())
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}
	for _, ct := range ts.Categories {
		if ct.WarningFraction <= ct.TargetFraction {
			t.Fatalf("%s: warning %.3f <= target %.3f", ct.Category, ct.WarningFraction, ct.TargetFraction)
		}
		if ct.Reasoning == "" {
			t.Fatalf("%s: empty reasoning string", ct.Category)
		}
	}
}

func TestComputeThresholdsReasoningNamesFactors(t *testing.T) {
	p := validProfile()
	p.Location = "Mumbai"
	ts, err := ComputeThresholds(p)
	if err != nil {
		t.Fatalf("ComputeThresholds: %v", err)
	}
	ent, ok := ts.Category("entertainment")
	if !ok {
		t.Fatal("no entertainment threshold")
	}
	for _, want := range []string{"age", "income", "tier-1"} {
		if !strings.Contains(ent.Reasoning, want) {
			t.Fatalf("reasoning %q missing %q", ent.Reasoning, want)
		}
	}
}

func TestComputeThresholdsRiskLowersSavingsFloor(t *testing.T) {
	conservative := validProfile()
	conservative.Risk = model.RiskConservative
	aggressive := validProfile()
	aggressive.Risk = model.RiskSophisticatedAggressive

	c, err := ComputeThresholds(conservative)
	if err != nil {
		t.Fatalf("conservative: %v", err)
	}
	a, err := ComputeThresholds(aggressive)
	if err != nil {
		t.Fatalf("aggressive: %v", err)
	}
	if a.Savings.Minimum > c.Savings.Minimum {
		t.Fatalf("aggressive minimum %.3f > conservative minimum %.3f",
			a.Savings.Minimum, c.Savings.Minimum)
	}
}

func TestComputeThresholdsPreconditions(t *testing.T) {
	young := validProfile()
	young.Age = 17
	if _, err := ComputeThresholds(young); !errors.Is(err, model.ErrAgeOutOfRange) {
		t.Fatalf("age 17 err = %v, want ErrAgeOutOfRange", err)
	}

	old := validProfile()
	old.Age = 70
	if _, err := ComputeThresholds(old); !errors.Is(err, model.ErrAgeOutOfRange) {
		t.Fatalf("age 70 err = %v, want ErrAgeOutOfRange", err)
	}

	broke := validProfile()
	broke.MonthlyIncome = 0
	if _, err := ComputeThresholds(broke); !errors.Is(err, model.ErrNonPositiveIncome) {
		t.Fatalf("zero income err = %v, want ErrNonPositiveIncome", err)
	}
}
