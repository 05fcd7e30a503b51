package tui

import (
	"fmt"
	"strings"

	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/tui/components"
	"finsight/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type settingsState struct {
	cursor int
	saved  bool // flash after a successful config write
}

const (
	settingTheme = iota
	settingDefaultProfile
	settingDataDir
	settingBaseline
	settingHorizon
	settingsFieldCount
)

// settingsActivate handles enter on the selected settings row. Only the
// theme row is editable in the TUI; the rest point at the config file.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	if a.settings.cursor != settingTheme {
		return a, nil
	}

	// Cycle to the next theme and persist the choice.
	cur := a.cfg.Appearance.Theme
	next := theme.All[0].Name
	for i, t := range theme.All {
		if t.Name == cur {
			next = theme.All[(i+1)%len(theme.All)].Name
			break
		}
	}
	a.cfg.Appearance.Theme = next
	theme.SetActive(next)
	a.settings.saved = config.Save(a.cfg) == nil
	return a, nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)

	defaultProfile := a.cfg.General.DefaultProfile
	if defaultProfile == "" {
		defaultProfile = "(first discovered)"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Theme", a.cfg.Appearance.Theme},
		{"Default profile", defaultProfile},
		{"Data directory", a.dataDir},
		{"Govt baseline", cli.FormatRate(config.GovernmentBaseline(a.cfg))},
		{"Horizon", fmt.Sprintf("%d months", a.cfg.General.HorizonMonths)},
	}

	var body strings.Builder
	for i, row := range rows {
		marker := "  "
		if i == a.settings.cursor {
			marker = cursorStyle.Render("▸ ")
		}
		body.WriteString(marker)
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", row.label)))
		body.WriteString(valueStyle.Render(row.value))
		if i == settingTheme && a.settings.saved {
			body.WriteString(okStyle.Render("  saved"))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(dimStyle.Render("Enter cycles the theme. Edit " + config.ConfigPath() + " for the rest."))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", body.String(), cw))
	b.WriteString("\n")

	// Profile summary, handy when juggling multiple documents
	var p strings.Builder
	line := func(label, value string) {
		p.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", label)))
		p.WriteString(valueStyle.Render(value))
		p.WriteString("\n")
	}
	line("Name", a.profile.Name)
	line("Age", fmt.Sprintf("%d", a.profile.Age))
	line("Income", cli.FormatINR(a.profile.MonthlyIncome)+"/mo")
	line("Location", a.profile.Location)
	line("Risk", a.profile.Risk.String())
	if a.profile.Profession != "" {
		line("Profession", a.profile.Profession)
	}
	b.WriteString(components.ContentCard("Active Profile", p.String(), cw))

	return b.String()
}
