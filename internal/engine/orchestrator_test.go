package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

func testEngine() Engine {
	return New(config.DefaultConfig())
}

func pipelineProfile() model.UserProfile {
	return model.UserProfile{
		ID:            "u1",
		Name:          "Asha",
		Age:           31,
		MonthlyIncome: 120_000,
		Location:      "Bangalore",
		Risk:          model.RiskModerate,
		Profession:    "Software Engineer",
	}
}

func pipelineSpending() model.SpendingSnapshot {
	return model.SpendingSnapshot{
		"housing":       35_000,
		"food":          18_000,
		"transport":     7_000,
		"entertainment": 9_000,
		"shopping":      6_000,
	}
}

func TestComputeDeterministic(t *testing.T) {
	e := testEngine()
	asOf := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	portfolio := model.PortfolioSummary{BankBalance: 300_000, MutualFunds: 500_000, MonthlyInvestment: 15_000}

	first, err := e.Compute(pipelineProfile(), pipelineSpending(), portfolio, nil, asOf)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := e.Compute(pipelineProfile(), pipelineSpending(), portfolio, nil, asOf)
	if err != nil {
		t.Fatalf("Compute (repeat): %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different advice")
	}

	if len(first.Goals) == 0 {
		t.Fatal("no goals generated for a complete profile")
	}
	if first.Inflation.PersonalRate <= 0 {
		t.Fatalf("personal rate = %.1f, want > 0", first.Inflation.PersonalRate)
	}
	if len(first.Thresholds.Categories) == 0 {
		t.Fatal("no category thresholds")
	}
}

func TestComputeRegenerationIdempotent(t *testing.T) {
	e := testEngine()
	asOf := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	portfolio := model.PortfolioSummary{BankBalance: 200_000}

	first, err := e.Compute(pipelineProfile(), pipelineSpending(), portfolio, nil, asOf)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// Feeding the first run's goals back in must not duplicate them.
	second, err := e.Compute(pipelineProfile(), pipelineSpending(), portfolio, first.Goals, asOf)
	if err != nil {
		t.Fatalf("Compute (with existing goals): %v", err)
	}
	if len(second.Goals) != 0 {
		t.Fatalf("regeneration produced %d duplicate goals", len(second.Goals))
	}
}

func TestComputePreconditionErrors(t *testing.T) {
	e := testEngine()
	asOf := time.Now()

	young := pipelineProfile()
	young.Age = 17
	if _, err := e.Compute(young, pipelineSpending(), model.PortfolioSummary{}, nil, asOf); !errors.Is(err, model.ErrAgeOutOfRange) {
		t.Fatalf("age 17: err = %v, want ErrAgeOutOfRange", err)
	}

	broke := pipelineProfile()
	broke.MonthlyIncome = 0
	if _, err := e.Compute(broke, pipelineSpending(), model.PortfolioSummary{}, nil, asOf); !errors.Is(err, model.ErrNonPositiveIncome) {
		t.Fatalf("zero income: err = %v, want ErrNonPositiveIncome", err)
	}

	bad := pipelineSpending()
	bad["food"] = -1
	if _, err := e.Compute(pipelineProfile(), bad, model.PortfolioSummary{}, nil, asOf); !errors.Is(err, model.ErrNegativeSpending) {
		t.Fatalf("negative spending: err = %v, want ErrNegativeSpending", err)
	}
}

func TestComputeEmptySpendingDegrades(t *testing.T) {
	e := testEngine()
	asOf := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	res, err := e.Compute(pipelineProfile(), model.SpendingSnapshot{}, model.PortfolioSummary{}, nil, asOf)
	if err != nil {
		t.Fatalf("empty spending should degrade, got error: %v", err)
	}
	if res.Inflation.PersonalRate <= 0 {
		t.Fatalf("fallback personal rate = %.1f, want > 0", res.Inflation.PersonalRate)
	}
}
