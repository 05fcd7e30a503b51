package config

import (
	"math"
	"testing"
)

func TestStandardWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range StandardWeights {
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("standard weights sum = %.9f, want 1.0", sum)
	}
}

func TestBaseRatesCoverStandardCategories(t *testing.T) {
	for category := range StandardWeights {
		if _, ok := BaseRates[category]; !ok {
			t.Fatalf("no base rate for standard category %q", category)
		}
	}
}

func TestResolveTier(t *testing.T) {
	cases := []struct {
		location string
		want     Tier
	}{
		{"Mumbai, Maharashtra", Tier1},
		{"Navi Mumbai", Tier1},
		{"BENGALURU", Tier1},
		{"Jaipur, Rajasthan", Tier1_5},
		{"Indore, Madhya Pradesh", Tier2},
		{"Shillong, Meghalaya", TierNone},
		{"", TierNone},
	}

	for _, tc := range cases {
		if got := ResolveTier(tc.location); got != tc.want {
			t.Fatalf("ResolveTier(%q) = %s, want %s", tc.location, got, tc.want)
		}
	}
}

func TestDefaultTierMultipliersAboveFloor(t *testing.T) {
	m := MultipliersFor(TierNone)
	for name, v := range map[string]float64{
		"property": m.Property,
		"living":   m.Living,
		"general":  m.General,
	} {
		if v < 0.7 {
			t.Fatalf("default %s multiplier = %.2f, want >= 0.7", name, v)
		}
	}
}

func TestCategoryRateMultiplierUnknownCategory(t *testing.T) {
	got := CategoryRateMultiplier(Tier1, "vintage-stamps")
	want := tierCategoryRateMultipliers[Tier1]["miscellaneous"]
	if got != want {
		t.Fatalf("unknown category multiplier = %.2f, want miscellaneous %.2f", got, want)
	}
}

func TestSeasonalFactorsNearUnity(t *testing.T) {
	for i, f := range SeasonalFactors {
		if f < 0.95 || f > 1.10 {
			t.Fatalf("seasonal factor for month %d = %.2f, outside [0.95, 1.10]", i+1, f)
		}
	}
}
