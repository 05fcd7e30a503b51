// Package model defines domain types for finsight profiles and advice results.
package model

import (
	"errors"
	"fmt"
)

// Age bounds the engines are calibrated for. Ages outside this range
// invalidate the goal math, so they are rejected rather than clamped.
const (
	MinAge = 18
	MaxAge = 65
)

var (
	// ErrAgeOutOfRange indicates an age outside the supported 18-65 band.
	ErrAgeOutOfRange = errors.New("model: age out of range (want 18-65)")
	// ErrNonPositiveIncome indicates a zero or negative monthly income.
	ErrNonPositiveIncome = errors.New("model: monthly income must be positive")
	// ErrNegativeSpending indicates a negative category amount in a snapshot.
	ErrNegativeSpending = errors.New("model: spending amount must be non-negative")
)

// RiskTier is the user's risk tolerance, ordered from most to least cautious.
type RiskTier int

const (
	RiskConservative RiskTier = iota
	RiskModerate
	RiskAggressive
	RiskSophisticatedAggressive
)

// String returns the config/file representation of the tier.
func (r RiskTier) String() string {
	switch r {
	case RiskConservative:
		return "conservative"
	case RiskModerate:
		return "moderate"
	case RiskAggressive:
		return "aggressive"
	case RiskSophisticatedAggressive:
		return "sophisticated_aggressive"
	default:
		return "unknown"
	}
}

// ParseRiskTier maps a stored tier string back to its enum value.
// Unknown strings fall back to moderate.
func ParseRiskTier(s string) RiskTier {
	switch s {
	case "conservative":
		return RiskConservative
	case "aggressive":
		return RiskAggressive
	case "sophisticated_aggressive":
		return RiskSophisticatedAggressive
	default:
		return RiskModerate
	}
}

// UserProfile describes one user for a single calculation call.
// Immutable once handed to the engines.
type UserProfile struct {
	ID            string
	Name          string
	Age           int
	MonthlyIncome float64 // rupees per month
	Location      string  // free text, e.g. "Mumbai, Maharashtra"
	Risk          RiskTier
	Profession    string // free text, e.g. "Software Engineer"
}

// Validate checks the precondition bounds the downstream math depends on.
func (p UserProfile) Validate() error {
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("%w: got %d", ErrAgeOutOfRange, p.Age)
	}
	if p.MonthlyIncome <= 0 {
		return fmt.Errorf("%w: got %.2f", ErrNonPositiveIncome, p.MonthlyIncome)
	}
	return nil
}

// SpendingSnapshot maps category name to monthly spend in rupees.
// Categories not present are treated as zero by every engine.
type SpendingSnapshot map[string]float64

// Validate rejects negative amounts. Missing categories are fine;
// negative ones are a caller bug.
func (s SpendingSnapshot) Validate() error {
	for category, amount := range s {
		if amount < 0 {
			return fmt.Errorf("%w: %s = %.2f", ErrNegativeSpending, category, amount)
		}
	}
	return nil
}

// Total returns the sum across all categories.
func (s SpendingSnapshot) Total() float64 {
	var total float64
	for _, amount := range s {
		total += amount
	}
	return total
}

// PortfolioSummary holds aggregate current holdings, supplied by an
// external portfolio provider. Used to seed goal current amounts and
// drive the investment recommendation rules.
type PortfolioSummary struct {
	BankBalance   float64
	FixedDeposits float64
	MutualFunds   float64
	Stocks        float64
	Gold          float64
	NPS           float64

	MonthlyInvestment    float64 // SIPs and other recurring investments
	AnnualReturnPct      float64 // trailing 12-month return, percent
	DiversificationScore float64 // 0-1, higher is better spread
}

// Liquid returns holdings that can back an emergency fund.
func (p PortfolioSummary) Liquid() float64 {
	return p.BankBalance + p.FixedDeposits
}

// Invested returns market-linked holdings counted toward retirement.
func (p PortfolioSummary) Invested() float64 {
	return p.MutualFunds + p.Stocks + p.NPS
}
