package tui

import (
	"fmt"
	"strings"

	"finsight/internal/cli"
	"finsight/internal/model"
	"finsight/internal/tui/components"
	"finsight/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	inf := a.advice.Inflation
	var b strings.Builder

	// Row 1: Metric cards
	rateDelta := fmt.Sprintf("local baseline %s", cli.FormatRate(inf.LocationBaseline))
	spendTotal := a.spending.Total()
	savingsTarget := a.advice.Thresholds.Savings.Target

	widths := components.LayoutRow(cw, 4)
	cards := []string{
		components.MetricCard("Personal Rate", cli.FormatRate(inf.PersonalRate), rateDelta, widths[0]),
		components.MetricCard("Severity", inf.Severity.String(), severityNote(inf.Difference), widths[1]),
		components.MetricCard("Monthly Spend", cli.FormatINRCompact(spendTotal), cli.FormatINR(spendTotal), widths[2]),
		components.MetricCard("Savings Target", cli.FormatPercent(savingsTarget), cli.FormatINRCompact(savingsTarget*a.profile.MonthlyIncome)+"/mo", widths[3]),
	}
	if a.isCompactLayout() {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.MetricCard("Personal Rate", cli.FormatRate(inf.PersonalRate), rateDelta, halves[0]),
			components.MetricCard("Monthly Spend", cli.FormatINRCompact(spendTotal), cli.FormatINR(spendTotal), halves[1]),
		}))
		b.WriteString("\n")
	} else {
		b.WriteString(components.CardRow(cards))
		b.WriteString("\n")
	}

	// Row 2: Category contributions
	if len(inf.Breakdown) > 0 {
		innerW := components.CardInnerWidth(cw)
		rows := make([]components.HBarRow, len(inf.Breakdown))
		for i, c := range inf.Breakdown {
			rows[i] = components.HBarRow{
				Label: c.Category,
				Value: c.ContributionPct,
				Note:  fmt.Sprintf("%.1f%%", c.ContributionPct),
			}
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Category Contributions (%s tier)", inf.Tier),
			components.HBarList(rows, t.Blue, innerW),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Top recommendations
	if len(a.advice.Recommendations) > 0 {
		top := a.advice.Recommendations
		if len(top) > 3 {
			top = top[:3]
		}

		titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
		mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

		var body strings.Builder
		for i, rec := range top {
			if i > 0 {
				body.WriteString("\n")
			}
			body.WriteString(priorityMark(rec.Priority))
			body.WriteString(" ")
			body.WriteString(titleStyle.Render(rec.Title))
			body.WriteString("\n   ")
			body.WriteString(mutedStyle.Render(truncStr(rec.Impact, components.CardInnerWidth(cw)-4)))
			body.WriteString("\n")
		}
		b.WriteString(components.ContentCard("Top Recommendations", body.String(), cw))
	}

	return b.String()
}

func severityNote(difference float64) string {
	if difference > 0 {
		return fmt.Sprintf("+%.1fpp vs local", difference)
	}
	return fmt.Sprintf("%.1fpp vs local", difference)
}

func priorityMark(p model.Priority) string {
	t := theme.Active
	switch {
	case p >= model.PriorityUrgent:
		return lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("●")
	case p >= model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(t.Orange).Render("●")
	case p >= model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(t.Yellow).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("●")
	}
}
