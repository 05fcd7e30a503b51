package engine

import (
	"math"
	"sort"
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

// severityFor buckets a personal rate. Cutoffs are exclusive floors,
// checked highest first, so the bucket is monotone in the rate.
func severityFor(rate float64) model.Severity {
	switch {
	case rate > 15:
		return model.SeverityExtremelyHigh
	case rate > 12:
		return model.SeverityVeryHigh
	case rate > 9:
		return model.SeverityHigh
	case rate > 6:
		return model.SeverityModerate
	case rate > 3:
		return model.SeverityLow
	default:
		return model.SeverityVeryLow
	}
}

func baseRateFor(category string) float64 {
	if r, ok := config.BaseRates[category]; ok {
		return r
	}
	return config.BaseRates["miscellaneous"]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// sortedKeys pins map iteration order so float accumulation is
// deterministic across runs.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ComputeInflation derives the personal inflation rate from categorized
// spending, location, and the projection horizon. Weights blend the
// personal spend shares with the standard table: categories present in
// the snapshot carry their spend share scaled into the weight mass the
// standard table assigns them collectively; absent standard categories
// keep their standard weight. The blended weights always sum to 1.0.
//
// A snapshot with zero total spend degrades to the location-only path:
// standard weights against location-adjusted rates.
func ComputeInflation(
	spending model.SpendingSnapshot,
	location string,
	horizonMonths int,
	asOf time.Time,
	baseline float64,
) (model.InflationResult, error) {
	if err := spending.Validate(); err != nil {
		return model.InflationResult{}, err
	}

	adj := ResolveLocation(location)
	weights := blendWeights(spending)

	var raw float64
	breakdown := make([]model.CategoryContribution, 0, len(weights))
	for _, category := range sortedKeys(weights) {
		weight := weights[category]
		rate := baseRateFor(category) * config.CategoryRateMultiplier(adj.Tier, category)
		raw += weight * rate
		breakdown = append(breakdown, model.CategoryContribution{
			Category:  category,
			WeightPct: weight * 100,
			Rate:      rate,
		})
	}
	if raw > 0 {
		for i := range breakdown {
			breakdown[i].ContributionPct = breakdown[i].WeightPct / 100 * breakdown[i].Rate / raw * 100
		}
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].ContributionPct != breakdown[j].ContributionPct {
			return breakdown[i].ContributionPct > breakdown[j].ContributionPct
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	personal := raw * config.SeasonalFactors[asOf.Month()-1]
	if horizonMonths > config.TrendHorizonMonths {
		personal *= config.TrendFactor
	}
	personal = round1(personal)

	locationBaseline := round1(baseline * adj.Multipliers.General)

	return model.InflationResult{
		PersonalRate:     personal,
		BaselineRate:     baseline,
		LocationBaseline: locationBaseline,
		Difference:       round1(personal - locationBaseline),
		Severity:         severityFor(personal),
		Tier:             string(adj.Tier),
		Breakdown:        breakdown,
	}, nil
}

// blendWeights computes the category weight map described above.
// The returned weights sum to 1.0 within floating tolerance.
func blendWeights(spending model.SpendingSnapshot) map[string]float64 {
	total := spending.Total()
	weights := make(map[string]float64, len(config.StandardWeights))

	if total <= 0 {
		for category, w := range config.StandardWeights {
			weights[category] = w
		}
		return weights
	}

	// Weight mass the standard table assigns to the categories the user
	// actually spent in. Personal shares are scaled into this mass so the
	// absent categories keep their standard weights and the sum stays 1.
	var presentMass float64
	for _, category := range sortedKeys(spending) {
		if spending[category] > 0 {
			presentMass += config.StandardWeights[category]
		}
	}

	// Non-standard categories (e.g. "travel") carry their full spend share;
	// standard ones are scaled into the present mass. Whatever mass is left
	// after placing the personal weights is split across the absent standard
	// categories in proportion to their standard weights.
	var placed float64
	for _, category := range sortedKeys(spending) {
		amount := spending[category]
		if amount <= 0 {
			continue
		}
		share := amount / total
		if _, ok := config.StandardWeights[category]; ok {
			share *= presentMass
		}
		weights[category] = share
		placed += share
	}

	absentMass := 1 - presentMass
	remaining := 1 - placed
	for category, w := range config.StandardWeights {
		if _, present := weights[category]; !present && absentMass > 0 && remaining > 0 {
			weights[category] = w / absentMass * remaining
		}
	}

	return weights
}
