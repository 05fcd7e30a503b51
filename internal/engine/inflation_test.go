package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"finsight/internal/model"
)

var asOfFixed = time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)

func checkWeightsSum(t *testing.T, spending model.SpendingSnapshot) {
	t.Helper()
	weights := blendWeights(spending)
	var sum float64
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Fatalf("weights for %v sum to %.9f, want 1.0", spending, sum)
	}
}

func TestBlendWeightsSumToOne(t *testing.T) {
	checkWeightsSum(t, model.SpendingSnapshot{})
	checkWeightsSum(t, model.SpendingSnapshot{"food": 10_000})
	checkWeightsSum(t, model.SpendingSnapshot{
		"food": 20_000, "housing": 35_000, "transport": 10_000, "entertainment": 8_000,
	})
	checkWeightsSum(t, model.SpendingSnapshot{
		"food": 5_000, "travel": 12_000, "pets": 3_000,
	})
	checkWeightsSum(t, model.SpendingSnapshot{
		"food": 1, "housing": 1, "transport": 1, "entertainment": 1,
		"shopping": 1, "healthcare": 1, "education": 1, "miscellaneous": 1,
	})
}

func TestComputeInflationMumbaiScenario(t *testing.T) {
	spending := model.SpendingSnapshot{
		"food":          20_000,
		"housing":       35_000,
		"transport":     10_000,
		"entertainment": 8_000,
	}

	res, err := ComputeInflation(spending, "Mumbai, Maharashtra", 12, asOfFixed, 6.5)
	if err != nil {
		t.Fatalf("ComputeInflation: %v", err)
	}
	if res.PersonalRate <= 6.5 {
		t.Fatalf("Mumbai personal rate = %.1f, want > 6.5", res.PersonalRate)
	}
	if res.Tier != "tier-1" {
		t.Fatalf("tier = %s, want tier-1", res.Tier)
	}
	if res.Severity < model.SeverityModerate {
		t.Fatalf("severity = %s, too low for rate %.1f", res.Severity, res.PersonalRate)
	}

	// One-decimal rounding
	if got := res.PersonalRate * 10; math.Abs(got-math.Round(got)) > 1e-9 {
		t.Fatalf("personal rate %.4f is not rounded to one decimal", res.PersonalRate)
	}

	// Breakdown covers every weighted category and contributions sum to 100.
	var contribSum float64
	for _, row := range res.Breakdown {
		contribSum += row.ContributionPct
	}
	if math.Abs(contribSum-100) > 1e-6 {
		t.Fatalf("contributions sum to %.4f, want 100", contribSum)
	}
}

func TestComputeInflationZeroSpendMatchesDefaultPath(t *testing.T) {
	empty, err := ComputeInflation(model.SpendingSnapshot{}, "Jaipur", 3, asOfFixed, 6.5)
	if err != nil {
		t.Fatalf("empty snapshot: %v", err)
	}
	zeroed, err := ComputeInflation(model.SpendingSnapshot{"food": 0, "housing": 0}, "Jaipur", 3, asOfFixed, 6.5)
	if err != nil {
		t.Fatalf("zeroed snapshot: %v", err)
	}
	if empty.PersonalRate != zeroed.PersonalRate {
		t.Fatalf("zero-spend rate %.1f != empty-snapshot rate %.1f", zeroed.PersonalRate, empty.PersonalRate)
	}
	if math.IsNaN(empty.PersonalRate) {
		t.Fatal("default path produced NaN")
	}
}

func TestComputeInflationNegativeAmountRejected(t *testing.T) {
	_, err := ComputeInflation(model.SpendingSnapshot{"food": -50}, "", 3, asOfFixed, 6.5)
	if !errors.Is(err, model.ErrNegativeSpending) {
		t.Fatalf("err = %v, want ErrNegativeSpending", err)
	}
}

func TestComputeInflationTrendFactorAppliesPastSixMonths(t *testing.T) {
	spending := model.SpendingSnapshot{"food": 10_000, "housing": 20_000}

	short, err := ComputeInflation(spending, "Delhi", 6, asOfFixed, 6.5)
	if err != nil {
		t.Fatalf("short horizon: %v", err)
	}
	long, err := ComputeInflation(spending, "Delhi", 7, asOfFixed, 6.5)
	if err != nil {
		t.Fatalf("long horizon: %v", err)
	}
	if long.PersonalRate <= short.PersonalRate {
		t.Fatalf("trend factor missing: 7-month rate %.1f <= 6-month rate %.1f",
			long.PersonalRate, short.PersonalRate)
	}
}

func TestSeverityMonotonic(t *testing.T) {
	prev := severityFor(0)
	for rate := 0.0; rate <= 20; rate += 0.5 {
		s := severityFor(rate)
		if s < prev {
			t.Fatalf("severity not monotone: %s at %.1f after %s", s, rate, prev)
		}
		prev = s
	}
	if severityFor(16) != model.SeverityExtremelyHigh {
		t.Fatalf("severity at 16 = %s, want Extremely High", severityFor(16))
	}
	if severityFor(2) != model.SeverityVeryLow {
		t.Fatalf("severity at 2 = %s, want Very Low", severityFor(2))
	}
}
