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

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	goals := a.advice.Goals

	if len(goals) == 0 {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return components.ContentCard("Goals",
			dim.Render("No goals synthesized. Check that the profile has income and age set."), cw)
	}

	var b strings.Builder

	// Goal list with funding bars
	innerW := components.CardInnerWidth(cw)
	labelW := 0
	for _, g := range goals {
		if len(g.Title) > labelW {
			labelW = len(g.Title)
		}
	}
	if labelW > 28 {
		labelW = 28
	}
	barW := innerW - labelW - 28
	if barW < 10 {
		barW = 10
	}

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	blankStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var list strings.Builder
	for i, g := range goals {
		if i > 0 {
			list.WriteString("\n")
		}
		marker := blankStyle.Render("  ")
		if i == a.goalCursor {
			marker = cursorStyle.Render("▸ ")
		}
		note := goalNote(g)
		list.WriteString(marker)
		list.WriteString(components.GoalBar(truncStr(g.Title, labelW), g.ProgressFraction(), note, labelW, barW))
	}
	b.WriteString(components.ContentCard(fmt.Sprintf("Goals (%d)", len(goals)), list.String(), cw))
	b.WriteString("\n")

	// Detail card for the selected goal
	g := goals[a.goalCursor]
	b.WriteString(a.renderGoalDetail(g, cw))

	return b.String()
}

func goalNote(g model.Goal) string {
	if g.Remaining() == 0 {
		return "funded"
	}
	if g.MonthlyContribution <= 0 {
		return cli.FormatINRCompact(g.Remaining()) + " left"
	}
	months := g.Remaining() / g.MonthlyContribution
	return cli.FormatMonths(months)
}

func (a App) renderGoalDetail(g model.Goal, cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	line("Target", cli.FormatINR(g.TargetAmount))
	line("Saved", cli.FormatINR(g.CurrentAmount))
	line("Monthly", cli.FormatINR(g.MonthlyContribution))
	if !g.TargetDate.IsZero() {
		line("Target date", g.TargetDate.Format("Jan 2006"))
	}
	barW := components.CardInnerWidth(cw) - 16 - 6
	if barW < 10 {
		barW = 10
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Progress")))
	b.WriteString(components.ProgressBar(g.ProgressFraction(), barW))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-16s", "Priority")))
	b.WriteString(cli.PriorityStyle(g.Priority).Render(g.Priority.String()))
	b.WriteString("\n")

	if g.Description != "" {
		b.WriteString("\n")
		b.WriteString(descStyle.Render(truncStr(g.Description, components.CardInnerWidth(cw))))
	}
	if n := len(g.Insights); n > 0 {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("%d insight(s) on the Insights tab", n)))
	}

	title := g.Title
	if g.Icon != "" {
		title = g.Icon + " " + title
	}
	return components.ContentCard(title, b.String(), cw)
}
