// Package engine implements the pure calculators behind finsight advice:
// location adjustment, personal inflation, thresholds, goals, and
// recommendations. Every function is deterministic for identical inputs;
// the current date is always passed in, never read from a clock.
package engine

import (
	"fmt"

	"finsight/internal/config"
)

// Adjustment is the resolved cost-of-living adjustment for a location.
type Adjustment struct {
	Tier        config.Tier
	Multipliers config.TierMultipliers
}

// ResolveLocation maps a free-text location to its tier and multiplier
// triple. Unmatched locations fall back to the default tier silently;
// that is the documented degradation path, not an error.
func ResolveLocation(location string) Adjustment {
	tier := config.ResolveTier(location)
	return Adjustment{Tier: tier, Multipliers: config.MultipliersFor(tier)}
}

// AdjustAmount scales a goal amount by the multiplier matching the goal
// category: property for housing, living for emergency/safety, general
// for everything else. Returns the adjusted amount and a human-readable
// note describing what was applied.
func (a Adjustment) AdjustAmount(amount float64, goalCategory string) (float64, string) {
	var factor float64
	var flavor string
	switch goalCategory {
	case "housing":
		factor = a.Multipliers.Property
		flavor = "property"
	case "emergency":
		factor = a.Multipliers.Living
		flavor = "living"
	default:
		factor = a.Multipliers.General
		flavor = "general"
	}

	adjusted := amount * factor
	note := fmt.Sprintf("%s cost adjustment ×%.2f (%s)", flavor, factor, a.Tier)
	return adjusted, note
}
