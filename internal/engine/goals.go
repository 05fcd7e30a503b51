package engine

import (
	"fmt"
	"time"

	"finsight/internal/model"
)

// Contribution floors, rupees per month. A goal is never emitted with a
// zero or negative monthly contribution.
const (
	emergencyFloor  = 2_000
	housingFloor    = 5_000
	retirementFloor = 3_000
)

// Income cutoffs used by the goal rule table.
const (
	highIncomeCutoff    = 150_000
	lowIncomeCutoff     = 30_000
	housingIncomeGate   = 80_000
	startupIncomeGate   = 100_000
	freelanceIncomeGate = 80_000
)

// retirementAge closes the retirement corpus amortization.
const retirementAge = 65

// replacementRatio is the fraction of current income the retirement
// corpus is sized to replace.
const replacementRatio = 0.8

// emergencyMonths computes the month count for the emergency fund:
// 6 plus bounded adjustments, clamped to [3, 9].
func emergencyMonths(age int, income float64, risk model.RiskTier) int {
	months := 6
	if age >= 50 {
		months++
	}
	if age < 25 {
		months--
	}
	if risk == model.RiskConservative {
		months++
	}
	if risk == model.RiskSophisticatedAggressive {
		months--
	}
	if income > highIncomeCutoff {
		months--
	}
	if income < lowIncomeCutoff {
		months++
	}
	if months < 3 {
		months = 3
	}
	if months > 9 {
		months = 9
	}
	return months
}

// GenerateGoals synthesizes the goal set for a profile and portfolio.
// Rules are evaluated in a fixed order so output ordering is stable.
// Goals whose id is already in existing are not re-emitted; regeneration
// with the previous output as input therefore yields nothing new.
func GenerateGoals(
	profile model.UserProfile,
	portfolio model.PortfolioSummary,
	existing []model.Goal,
	asOf time.Time,
) ([]model.Goal, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(existing))
	for _, g := range existing {
		seen[g.ID] = true
	}

	adj := ResolveLocation(profile.Location)
	income := profile.MonthlyIncome

	var goals []model.Goal
	emit := func(g model.Goal) {
		if seen[g.ID] {
			return
		}
		target, note := adj.AdjustAmount(g.TargetAmount, g.Category)
		monthly, _ := adj.AdjustAmount(g.MonthlyContribution, g.Category)
		g.TargetAmount = target
		g.MonthlyContribution = monthly
		if g.CurrentAmount > g.TargetAmount {
			g.CurrentAmount = g.TargetAmount
		}
		g.Description += " " + note
		goals = append(goals, g)
	}

	// Emergency fund
	months := emergencyMonths(profile.Age, income, profile.Risk)
	target := income * float64(months)
	current := portfolio.Liquid()
	if current > target {
		current = target
	}
	emit(model.Goal{
		ID:                  "emergency-fund",
		Title:               "Emergency Fund",
		Category:            "emergency",
		TargetAmount:        target,
		CurrentAmount:       current,
		MonthlyContribution: maxf(emergencyFloor, (target-current)/12),
		TargetDate:          asOf.AddDate(1, 0, 0),
		Priority:            model.PriorityHigh,
		Icon:                "shield",
		Description:         fmt.Sprintf("%d months of income as a liquid safety net.", months),
	})

	// Housing down payment, gated on age and income
	if profile.Age < 35 && income > housingIncomeGate {
		housingTarget := income * 24
		emit(model.Goal{
			ID:                  "housing-downpayment",
			Title:               "Home Down Payment",
			Category:            "housing",
			TargetAmount:        housingTarget,
			MonthlyContribution: maxf(housingFloor, housingTarget/72),
			TargetDate:          asOf.AddDate(6, 0, 0),
			Priority:            model.PriorityMedium,
			Icon:                "home",
			Description:         "24 months of income toward a home down payment.",
		})
	}

	// Retirement corpus. Skipped at retirementAge and beyond: there is
	// no accumulation window left to spread contributions over.
	if profile.Age > 25 && profile.Age < retirementAge {
		years := retirementAge - profile.Age
		retTarget := income * 12 * float64(years) * replacementRatio
		retCurrent := portfolio.Invested()
		if retCurrent > retTarget {
			retCurrent = retTarget
		}
		priority := model.PriorityMedium
		if profile.Age > 45 {
			priority = model.PriorityHigh
		}
		emit(model.Goal{
			ID:                  "retirement-corpus",
			Title:               "Retirement Corpus",
			Category:            "retirement",
			TargetAmount:        retTarget,
			CurrentAmount:       retCurrent,
			MonthlyContribution: maxf(retirementFloor, (retTarget-retCurrent)/float64(years*12)),
			TargetDate:          asOf.AddDate(years, 0, 0),
			Priority:            priority,
			Icon:                "sunset",
			Description:         fmt.Sprintf("%.0f%% income replacement over %d years to age %d.", replacementRatio*100, years, retirementAge),
		})
	}

	for _, g := range professionGoals(profile, asOf) {
		emit(g)
	}

	return goals, nil
}

// professionGoals returns the track-specific goal rules, unadjusted.
// Targets are income-scaled multiples with fixed floors, mirroring the
// emergency-fund style of bounded, explainable arithmetic.
func professionGoals(profile model.UserProfile, asOf time.Time) []model.Goal {
	income := profile.MonthlyIncome
	var out []model.Goal

	switch ClassifyProfession(profile.Profession) {
	case TrackTechnology:
		skills := income * 1.5
		out = append(out, model.Goal{
			ID: "tech-skill-upgrade", Title: "Skill Upgrade Fund", Category: "career",
			TargetAmount: skills, MonthlyContribution: maxf(1_500, skills/18),
			TargetDate: asOf.AddDate(1, 6, 0), Priority: model.PriorityHigh, Icon: "book",
			Description: "Certifications and courses to stay current.",
		})
		equipment := maxf(60_000, income*0.6)
		out = append(out, model.Goal{
			ID: "tech-equipment", Title: "Equipment Fund", Category: "career",
			TargetAmount: equipment, MonthlyContribution: maxf(1_000, equipment/12),
			TargetDate: asOf.AddDate(1, 0, 0), Priority: model.PriorityHigh, Icon: "laptop",
			Description: "Workstation and tooling refresh.",
		})
		if profile.Risk >= model.RiskAggressive && income > startupIncomeGate {
			startup := income * 12
			out = append(out, model.Goal{
				ID: "startup-fund", Title: "Startup Fund", Category: "investment",
				TargetAmount: startup, MonthlyContribution: maxf(5_000, startup/36),
				TargetDate: asOf.AddDate(3, 0, 0), Priority: model.PriorityMedium, Icon: "rocket",
				Description: "A year of runway for a venture of your own.",
			})
		}

	case TrackMedical:
		practice := income * 18
		out = append(out, model.Goal{
			ID: "practice-setup", Title: "Practice Setup Fund", Category: "business",
			TargetAmount: practice, MonthlyContribution: maxf(5_000, practice/60),
			TargetDate: asOf.AddDate(5, 0, 0), Priority: model.PriorityHigh, Icon: "stethoscope",
			Description: "Capital for an independent practice.",
		})
		ce := income * 1.2
		out = append(out, model.Goal{
			ID: "medical-ce", Title: "Continuing Education", Category: "career",
			TargetAmount: ce, MonthlyContribution: maxf(2_000, ce/12),
			TargetDate: asOf.AddDate(1, 0, 0), Priority: model.PriorityHigh, Icon: "book",
			Description: "Conferences, journals, and recertification.",
		})
		liability := income * 3
		out = append(out, model.Goal{
			ID: "liability-cover", Title: "Liability Insurance Reserve", Category: "career",
			TargetAmount: liability, MonthlyContribution: maxf(1_500, liability/24),
			TargetDate: asOf.AddDate(2, 0, 0), Priority: model.PriorityMedium, Icon: "shield",
			Description: "Professional indemnity premiums and buffer.",
		})

	case TrackTeaching:
		pd := income * 1.0
		out = append(out, model.Goal{
			ID: "teacher-pd", Title: "Professional Development", Category: "career",
			TargetAmount: pd, MonthlyContribution: maxf(1_000, pd/12),
			TargetDate: asOf.AddDate(1, 0, 0), Priority: model.PriorityHigh, Icon: "book",
			Description: "Workshops and higher-qualification exams.",
		})
		breakFund := income * 2
		out = append(out, model.Goal{
			ID: "season-break-fund", Title: "Break Months Fund", Category: "career",
			TargetAmount: breakFund, MonthlyContribution: maxf(1_500, breakFund/10),
			TargetDate: asOf.AddDate(0, 10, 0), Priority: model.PriorityMedium, Icon: "calendar",
			Description: "Covers the unpaid vacation months.",
		})

	case TrackCreative:
		skills := income * 1.5
		out = append(out, model.Goal{
			ID: "creative-skills", Title: "Craft Development Fund", Category: "career",
			TargetAmount: skills, MonthlyContribution: maxf(1_500, skills/18),
			TargetDate: asOf.AddDate(1, 6, 0), Priority: model.PriorityHigh, Icon: "palette",
			Description: "Courses and mentorship for the craft.",
		})
		tools := maxf(40_000, income*0.5)
		out = append(out, model.Goal{
			ID: "creative-tools", Title: "Tools & Software Fund", Category: "career",
			TargetAmount: tools, MonthlyContribution: maxf(1_000, tools/12),
			TargetDate: asOf.AddDate(1, 0, 0), Priority: model.PriorityHigh, Icon: "wrench",
			Description: "Gear and subscriptions that earn their keep.",
		})
		if income < freelanceIncomeGate {
			buffer := income * 6
			out = append(out, model.Goal{
				ID: "freelance-buffer", Title: "Freelance Income Buffer", Category: "career",
				TargetAmount: buffer, MonthlyContribution: maxf(2_000, buffer/24),
				TargetDate: asOf.AddDate(2, 0, 0), Priority: model.PriorityMedium, Icon: "umbrella",
				Description: "Six months of income to smooth irregular payments.",
			})
		}

	case TrackBusiness:
		expansion := income * 24
		out = append(out, model.Goal{
			ID: "business-expansion", Title: "Expansion Capital", Category: "business",
			TargetAmount: expansion, MonthlyContribution: maxf(10_000, expansion/60),
			TargetDate: asOf.AddDate(5, 0, 0), Priority: model.PriorityHigh, Icon: "trending-up",
			Description: "Growth capital without leaning on credit.",
		})
		reserve := income * 6
		out = append(out, model.Goal{
			ID: "business-reserve", Title: "Business Emergency Fund", Category: "business",
			TargetAmount: reserve, MonthlyContribution: maxf(3_000, reserve/18),
			TargetDate: asOf.AddDate(1, 6, 0), Priority: model.PriorityHigh, Icon: "shield",
			Description: "Separate reserve so a slow quarter never touches home savings.",
		})
	}

	return out
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
