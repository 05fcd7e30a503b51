package model

// Severity buckets a personal inflation rate, ordered low to high.
type Severity int

const (
	SeverityVeryLow Severity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityVeryHigh
	SeverityExtremelyHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityVeryLow:
		return "Very Low"
	case SeverityLow:
		return "Low"
	case SeverityModerate:
		return "Moderate"
	case SeverityHigh:
		return "High"
	case SeverityVeryHigh:
		return "Very High"
	case SeverityExtremelyHigh:
		return "Extremely High"
	default:
		return "Unknown"
	}
}

// CategoryContribution is one row of the inflation breakdown: how much a
// spending category contributed to the personal rate.
type CategoryContribution struct {
	Category        string
	WeightPct       float64 // share of total weight, percent
	Rate            float64 // location-adjusted category rate, percent
	ContributionPct float64 // share of the raw weighted sum, percent
}

// InflationResult is the output of the inflation engine.
type InflationResult struct {
	PersonalRate     float64 // percent, rounded to one decimal
	BaselineRate     float64 // fixed government baseline
	LocationBaseline float64 // baseline scaled by the city tier
	Difference       float64 // personal minus location baseline
	Severity         Severity
	Tier             string // resolved city tier label
	Breakdown        []CategoryContribution
}
