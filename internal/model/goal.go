package model

import "time"

// Priority orders goals and recommendations, lowest to highest urgency.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "unknown"
	}
}

// ParsePriority maps a stored label back to a Priority. Unknown labels
// default to medium.
func ParsePriority(s string) Priority {
	switch s {
	case "low":
		return PriorityLow
	case "high":
		return PriorityHigh
	case "urgent":
		return PriorityUrgent
	default:
		return PriorityMedium
	}
}

// Goal is one target amount with a funding plan. Goals are regenerated
// per calculation; IDs are stable slugs so a goal already present in the
// caller's list is never re-emitted.
type Goal struct {
	ID                  string
	Title               string
	Category            string // emergency, housing, retirement, career, business
	TargetAmount        float64
	CurrentAmount       float64
	MonthlyContribution float64
	TargetDate          time.Time
	Priority            Priority
	Icon                string
	Description         string
	Insights            []GoalInsight
}

// Remaining returns the unfunded portion, never negative.
func (g Goal) Remaining() float64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}

// ProgressFraction returns funding progress in [0, 1].
func (g Goal) ProgressFraction() float64 {
	if g.TargetAmount <= 0 {
		return 1
	}
	frac := g.CurrentAmount / g.TargetAmount
	if frac > 1 {
		return 1
	}
	return frac
}

// GoalInsight links a goal to a spending behavior: either an
// acceleration opportunity (cut category X, finish N months sooner) or
// a risk flag. Navigation hints are data for the presentation layer,
// not a UI call.
type GoalInsight struct {
	Kind              InsightKind
	Category          string // spending category, for optimizations
	MonthlySavings    float64
	OldTimelineMonths float64
	NewTimelineMonths float64
	ImprovementPct    float64
	Severity          Priority
	Message           string
	NavigateTo        string // view hint, e.g. "spending-insights"
}

// InsightKind discriminates goal insights.
type InsightKind int

const (
	InsightOptimization InsightKind = iota
	InsightRisk
)

func (k InsightKind) String() string {
	if k == InsightRisk {
		return "risk"
	}
	return "optimization"
}
