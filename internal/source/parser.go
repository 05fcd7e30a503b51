// Package source discovers and parses JSON profile documents from the
// data directory.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"finsight/internal/model"
)

// ParseResult holds the output of parsing a single profile document.
type ParseResult struct {
	Profile   model.UserProfile
	Spending  model.SpendingSnapshot
	Portfolio model.PortfolioSummary
	Goals     []model.Goal
	Err       error
}

// ParseFile reads a profile document and maps it onto domain types.
// Unknown risk labels fall back to moderate and malformed goal dates
// are dropped rather than failing the whole document; a document that
// fails profile validation is returned with Err set.
func ParseFile(df DiscoveredFile) ParseResult {
	data, err := os.ReadFile(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}

	var raw RawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return ParseResult{Err: fmt.Errorf("parsing %s: %w", df.Path, err)}
	}

	profile := model.UserProfile{
		ID:            raw.ID,
		Name:          raw.Name,
		Age:           raw.Age,
		MonthlyIncome: raw.MonthlyIncome,
		Location:      raw.Location,
		Risk:          model.ParseRiskTier(raw.Risk),
		Profession:    raw.Profession,
	}
	if profile.ID == "" {
		profile.ID = df.ProfileID
	}

	spending := model.SpendingSnapshot{}
	for category, amount := range raw.Spending {
		spending[category] = amount
	}

	var portfolio model.PortfolioSummary
	if raw.Portfolio != nil {
		portfolio = model.PortfolioSummary{
			BankBalance:          raw.Portfolio.BankBalance,
			FixedDeposits:        raw.Portfolio.FixedDeposits,
			MutualFunds:          raw.Portfolio.MutualFunds,
			Stocks:               raw.Portfolio.Stocks,
			Gold:                 raw.Portfolio.Gold,
			NPS:                  raw.Portfolio.NPS,
			MonthlyInvestment:    raw.Portfolio.MonthlyInvestment,
			AnnualReturnPct:      raw.Portfolio.AnnualReturnPct,
			DiversificationScore: raw.Portfolio.Diversification,
		}
	}

	goals := make([]model.Goal, 0, len(raw.Goals))
	for _, rg := range raw.Goals {
		if rg.ID == "" {
			continue
		}
		goals = append(goals, model.Goal{
			ID:                  rg.ID,
			Title:               rg.Title,
			Category:            rg.Category,
			TargetAmount:        rg.TargetAmount,
			CurrentAmount:       rg.CurrentAmount,
			MonthlyContribution: rg.MonthlyContribution,
			TargetDate:          parseDate(rg.TargetDate),
			Priority:            model.ParsePriority(rg.Priority),
			Icon:                rg.Icon,
			Description:         rg.Description,
		})
	}

	result := ParseResult{
		Profile:   profile,
		Spending:  spending,
		Portfolio: portfolio,
		Goals:     goals,
	}
	if err := profile.Validate(); err != nil {
		result.Err = fmt.Errorf("%s: %w", df.Path, err)
	} else if err := spending.Validate(); err != nil {
		result.Err = fmt.Errorf("%s: %w", df.Path, err)
	}
	return result
}

// parseDate accepts RFC 3339 or a bare date; anything else is treated
// as unset.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts
	}
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts
	}
	return time.Time{}
}
