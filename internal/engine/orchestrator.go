package engine

import (
	"time"

	"finsight/internal/config"
	"finsight/internal/model"
)

// Engine is the orchestration façade: one synchronous entry point that
// runs the whole calculator pipeline. It holds only configuration,
// never per-call state, so concurrent Compute calls need no
// coordination.
type Engine struct {
	Baseline      float64 // government inflation baseline, percent
	HorizonMonths int     // projection horizon for the trend factor
}

// New builds an Engine from user config.
func New(cfg config.Config) Engine {
	horizon := cfg.General.HorizonMonths
	if horizon <= 0 {
		horizon = 12
	}
	return Engine{
		Baseline:      config.GovernmentBaseline(cfg),
		HorizonMonths: horizon,
	}
}

// Compute runs the full pipeline: inflation, thresholds, goals with
// cross-linked insights, and recommendations. asOf pins every
// date-relative figure so identical inputs yield identical outputs.
//
// Precondition violations (age/income bounds, negative spending) are
// returned immediately; missing data (absent categories, unmatched
// location, empty goal list) degrades through documented fallbacks.
func (e Engine) Compute(
	profile model.UserProfile,
	spending model.SpendingSnapshot,
	portfolio model.PortfolioSummary,
	existingGoals []model.Goal,
	asOf time.Time,
) (model.AdviceResult, error) {
	if err := profile.Validate(); err != nil {
		return model.AdviceResult{}, err
	}
	if err := spending.Validate(); err != nil {
		return model.AdviceResult{}, err
	}

	inflation, err := ComputeInflation(spending, profile.Location, e.HorizonMonths, asOf, e.Baseline)
	if err != nil {
		return model.AdviceResult{}, err
	}

	thresholds, err := ComputeThresholds(profile)
	if err != nil {
		return model.AdviceResult{}, err
	}

	goals, err := GenerateGoals(profile, portfolio, existingGoals, asOf)
	if err != nil {
		return model.AdviceResult{}, err
	}
	goals = CrossLink(goals, spending, profile)

	// Recommendation duplicate suppression keys off goal ids too, so a
	// caller-supplied goal list suppresses the matching wealth rules.
	allGoals := append(append([]model.Goal{}, existingGoals...), goals...)
	recs := Recommend(RecommendInputs{
		Profile:    profile,
		Spending:   spending,
		Portfolio:  portfolio,
		Thresholds: thresholds,
		Goals:      allGoals,
	})

	return model.AdviceResult{
		Inflation:       inflation,
		Thresholds:      thresholds,
		Goals:           goals,
		Recommendations: recs,
	}, nil
}
