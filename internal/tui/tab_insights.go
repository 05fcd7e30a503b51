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

func (a App) renderInsightsTab(cw int) string {
	t := theme.Active

	type goalInsights struct {
		goal     model.Goal
		insights []model.GoalInsight
	}

	var flagged []goalInsights
	for _, g := range a.advice.Goals {
		if len(g.Insights) > 0 {
			flagged = append(flagged, goalInsights{goal: g, insights: g.Insights})
		}
	}

	if len(flagged) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return components.ContentCard("Insights",
			dim.Render("No cross-link insights. Spending and goal timelines look balanced."), cw)
	}

	upStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	innerW := components.CardInnerWidth(cw)

	for _, fg := range flagged {
		var body strings.Builder
		first := true
		for _, ins := range fg.insights {
			if !first {
				body.WriteString("\n")
			}
			first = false

			switch ins.Kind {
			case model.InsightOptimization:
				body.WriteString(upStyle.Render("↑ "))
				body.WriteString(msgStyle.Render(truncStr(ins.Message, innerW-2)))
				body.WriteString("\n  ")
				body.WriteString(detailStyle.Render(fmt.Sprintf(
					"cut %s by %s/mo: %s instead of %s (%.0f%% faster)",
					ins.Category,
					cli.FormatINRCompact(ins.MonthlySavings),
					cli.FormatMonths(ins.NewTimelineMonths),
					cli.FormatMonths(ins.OldTimelineMonths),
					ins.ImprovementPct,
				)))
				body.WriteString("\n")
			case model.InsightRisk:
				body.WriteString(cli.PriorityStyle(ins.Severity).Render("! "))
				body.WriteString(msgStyle.Render(truncStr(ins.Message, innerW-2)))
				body.WriteString("\n")
			}
		}

		title := fg.goal.Title
		if fg.goal.Icon != "" {
			title = fg.goal.Icon + " " + title
		}
		b.WriteString(components.ContentCard(title, body.String(), cw))
		b.WriteString("\n")
	}

	return b.String()
}
