package tui

import (
	"fmt"
	"strings"

	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/tui/components"
	"finsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderInflationTab(cw int) string {
	t := theme.Active
	inf := a.advice.Inflation
	var b strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	// Rates summary card
	var summary strings.Builder
	line := func(label, value string) {
		summary.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", label)))
		summary.WriteString(valueStyle.Render(value))
		summary.WriteString("\n")
	}
	line("Personal rate", cli.FormatRate(inf.PersonalRate))
	line("Government baseline", cli.FormatRate(inf.BaselineRate))
	line("Location baseline", fmt.Sprintf("%s (%s tier)", cli.FormatRate(inf.LocationBaseline), inf.Tier))
	line("Difference", fmt.Sprintf("%+.1fpp", inf.Difference))
	summary.WriteString(labelStyle.Render(fmt.Sprintf("%-22s", "Severity")))
	summary.WriteString(cli.SeverityStyle(inf.Severity).Render(inf.Severity.String()))
	b.WriteString(components.ContentCard("Personal Inflation", summary.String(), cw))
	b.WriteString("\n")

	// Seasonal profile: the personal rate replayed across the year,
	// current month's seasonal factor divided out first.
	current := config.SeasonalFactors[int(a.asOf.Month())-1]
	seasonal := make([]float64, len(config.SeasonalFactors))
	for m, f := range config.SeasonalFactors {
		seasonal[m] = inf.PersonalRate * f / current
	}
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	var season strings.Builder
	season.WriteString(components.Sparkline(seasonal, t.Cyan))
	season.WriteString("\n")
	season.WriteString(dimStyle.Render("JFMAMJJASOND"))
	season.WriteString("\n")
	season.WriteString(labelStyle.Render(fmt.Sprintf("%s now, peaks at %s",
		cli.FormatRate(inf.PersonalRate), cli.FormatRate(peakRate(seasonal)))))
	b.WriteString(components.ContentCard("Seasonal Profile", season.String(), cw))
	b.WriteString("\n")

	// Per-category rates
	if a.spending.Total() > 0 {
		innerW := components.CardInnerWidth(cw)
		rows := make([]components.HBarRow, len(inf.Breakdown))
		for i, c := range inf.Breakdown {
			rows[i] = components.HBarRow{
				Label: c.Category,
				Value: c.WeightPct,
				Note:  fmt.Sprintf("%.1f%% wt · %s", c.WeightPct, cli.FormatRate(c.Rate)),
			}
		}
		b.WriteString(components.ContentCard(
			"Basket Weights & Category Rates",
			components.HBarList(rows, t.Accent, innerW),
			cw,
		))
		b.WriteString("\n")
	} else {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		b.WriteString(components.ContentCard(
			"Basket Weights & Category Rates",
			dim.Render("No spending recorded. Rate computed from the standard basket."),
			cw,
		))
		b.WriteString("\n")
	}

	// Spending vs thresholds
	if len(a.advice.Thresholds.Categories) > 0 {
		innerW := components.CardInnerWidth(cw)
		var body strings.Builder
		first := true
		for _, ct := range a.advice.Thresholds.Categories {
			actual := a.spending[ct.Category]
			warning := ct.WarningFraction * a.profile.MonthlyIncome
			if warning <= 0 {
				continue
			}
			if !first {
				body.WriteString("\n")
			}
			first = false
			label := fmt.Sprintf("%-14s", ct.Category)
			body.WriteString(components.ThresholdBar(label, actual/warning, innerW))
		}
		b.WriteString(components.ContentCard("Spending vs Warning Thresholds", body.String(), cw))
	}

	return b.String()
}

func peakRate(rates []float64) float64 {
	peak := rates[0]
	for _, r := range rates[1:] {
		if r > peak {
			peak = r
		}
	}
	return peak
}
