package model

// Recommendation is a generated, prioritized suggestion linking an
// observed metric to an action with a quantified impact. Recommendations
// are ephemeral: regenerated on every orchestration call, never mutated.
type Recommendation struct {
	ID            string
	Title         string
	Category      string // budget, savings, investment, retirement
	Priority      Priority
	SourceContext string // which analysis produced it
	Rationale     string
	Impact        string  // human-readable quantified impact
	MonthlyAmount float64 // the rupee figure behind Impact, if any
	NavigateTo    string  // optional view hint for the presentation layer
}

// AdviceResult is the combined output of one orchestration call.
type AdviceResult struct {
	Inflation       InflationResult
	Thresholds      ThresholdSet
	Goals           []Goal
	Recommendations []Recommendation
}
