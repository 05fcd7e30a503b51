package config

import "strings"

// Tier labels a city's cost-of-living classification.
type Tier string

const (
	Tier1    Tier = "tier-1"
	Tier1_5  Tier = "tier-1.5"
	Tier2    Tier = "tier-2"
	TierNone Tier = "default"
)

// TierMultipliers holds the three scalar adjustment factors for a tier.
// Property scales housing-flavored amounts, Living scales safety and
// emergency-fund amounts, General everything else.
type TierMultipliers struct {
	Property float64
	Living   float64
	General  float64
}

// tierCities maps lowercase city substrings to their tier. First match
// wins; entries are grouped by tier and checked tier-1 first so
// "Navi Mumbai" still lands in tier-1.
var tierCities = []struct {
	Tier   Tier
	Cities []string
}{
	{Tier1, []string{
		"mumbai", "delhi", "new delhi", "bangalore", "bengaluru",
		"hyderabad", "chennai", "kolkata", "pune", "gurgaon",
		"gurugram", "noida",
	}},
	{Tier1_5, []string{
		"ahmedabad", "jaipur", "lucknow", "chandigarh", "kochi",
		"coimbatore", "nagpur", "surat", "visakhapatnam",
	}},
	{Tier2, []string{
		"indore", "bhopal", "patna", "vadodara", "ludhiana", "agra",
		"nashik", "rajkot", "varanasi", "madurai", "mysuru", "mysore",
	}},
}

// tierMultipliers maps each tier to its adjustment triple. Living stays
// at 1.0 for matched tiers: day-to-day essentials are already reflected
// in the income the month counts multiply.
var tierMultipliers = map[Tier]TierMultipliers{
	Tier1:    {Property: 1.5, Living: 1.0, General: 1.2},
	Tier1_5:  {Property: 1.25, Living: 1.0, General: 1.1},
	Tier2:    {Property: 1.0, Living: 1.0, General: 1.0},
	TierNone: {Property: 0.9, Living: 0.9, General: 0.9},
}

// tierCategoryRateMultipliers scales per-category inflation rates by
// tier. Metro demand pushes food, transport, healthcare, and education
// harder than the headline triple suggests.
var tierCategoryRateMultipliers = map[Tier]map[string]float64{
	Tier1: {
		"food": 1.25, "housing": 1.15, "transport": 1.20,
		"entertainment": 1.10, "shopping": 1.10, "healthcare": 1.30,
		"education": 1.25, "miscellaneous": 1.05,
	},
	Tier1_5: {
		"food": 1.10, "housing": 1.05, "transport": 1.10,
		"entertainment": 1.05, "shopping": 1.05, "healthcare": 1.15,
		"education": 1.10, "miscellaneous": 1.00,
	},
	Tier2: {
		"food": 1.00, "housing": 1.00, "transport": 1.00,
		"entertainment": 1.00, "shopping": 1.00, "healthcare": 1.00,
		"education": 1.00, "miscellaneous": 1.00,
	},
	TierNone: {
		"food": 0.95, "housing": 0.95, "transport": 0.95,
		"entertainment": 0.95, "shopping": 0.95, "healthcare": 0.95,
		"education": 0.95, "miscellaneous": 0.95,
	},
}

// ResolveTier matches a free-text location against the city table.
// Unknown locations resolve to TierNone; never an error.
func ResolveTier(location string) Tier {
	loc := strings.ToLower(location)
	if loc == "" {
		return TierNone
	}
	for _, group := range tierCities {
		for _, city := range group.Cities {
			if strings.Contains(loc, city) {
				return group.Tier
			}
		}
	}
	return TierNone
}

// MultipliersFor returns the adjustment triple for a tier.
func MultipliersFor(tier Tier) TierMultipliers {
	if m, ok := tierMultipliers[tier]; ok {
		return m
	}
	return tierMultipliers[TierNone]
}

// CategoryRateMultiplier returns the per-category inflation multiplier
// for a tier. Unknown categories behave like miscellaneous.
func CategoryRateMultiplier(tier Tier, category string) float64 {
	table, ok := tierCategoryRateMultipliers[tier]
	if !ok {
		table = tierCategoryRateMultipliers[TierNone]
	}
	if m, ok := table[category]; ok {
		return m
	}
	return table["miscellaneous"]
}
