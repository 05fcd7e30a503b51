// Package tui provides the interactive Bubble Tea dashboard for finsight.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finsight/internal/config"
	"finsight/internal/engine"
	"finsight/internal/model"
	"finsight/internal/source"
	"finsight/internal/tui/components"
	"finsight/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial profile load and advice
// computation finish.
type DataLoadedMsg struct {
	Profile  model.UserProfile
	Spending model.SpendingSnapshot
	Advice   model.AdviceResult
	Err      error
	LoadTime time.Duration
}

// RefreshDataMsg is sent when a manual refresh completes.
type RefreshDataMsg struct {
	Profile  model.UserProfile
	Spending model.SpendingSnapshot
	Advice   model.AdviceResult
	Err      error
	LoadTime time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	cfg       config.Config
	dataDir   string
	profileID string
	asOf      time.Time

	// Data
	profile  model.UserProfile
	spending model.SpendingSnapshot
	advice   model.AdviceResult
	loadErr  error
	loaded   bool
	loadTime time.Duration

	refreshing bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	goalCursor int
	settings   settingsState

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model.
func NewApp(cfg config.Config, dataDir, profileID string, asOf time.Time) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:       cfg,
		dataDir:   dataDir,
		profileID: profileID,
		asOf:      asOf,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.cfg, a.dataDir, a.profileID, a.asOf),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabGoals && a.goalCursor > 0 {
				a.goalCursor--
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabGoals && a.goalCursor < len(a.advice.Goals)-1 {
				a.goalCursor++
			}
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first line
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			if key == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.cfg, a.dataDir, a.profileID, a.asOf)
		}

		// Goals tab cursor
		if a.activeTab == tabGoals {
			switch key {
			case "j", "down":
				if a.goalCursor < len(a.advice.Goals)-1 {
					a.goalCursor++
				}
				return a, nil
			case "k", "up":
				if a.goalCursor > 0 {
					a.goalCursor--
				}
				return a, nil
			}
		}

		// Settings tab navigation
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsActivate()
			}
		}

		// Tab navigation
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.profile = msg.Profile
			a.spending = msg.Spending
			a.advice = msg.Advice
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.profile = msg.Profile
			a.spending = msg.Spending
			a.advice = msg.Advice
			a.loadErr = nil
			if a.goalCursor >= len(a.advice.Goals) {
				a.goalCursor = 0
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  finsight needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ finsight"))
	b.WriteString(subtitleStyle.Render(" · Personal Inflation & Goals"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading profile data..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Could not load profile"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(truncStr(a.loadErr.Error(), a.width-12)))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("Run 'finsight setup' to create a profile, or press r to retry."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o i g n x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate goals / settings"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Change setting"},
		{"r", "Reload profile data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	statusBar := components.RenderStatusBar(w, a.profile.Name, a.asOf.Format("2006-01-02"))

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabInflation:
		content = a.renderInflationTab(cw)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	case tabInsights:
		content = a.renderInsightsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// Tab indexes, matching components.Tabs order.
const (
	tabOverview = iota
	tabInflation
	tabGoals
	tabInsights
	tabSettings
)

// ─── Data Loading ───────────────────────────────────────────────

// pickProfileFile selects the document to load: explicit flag first,
// then the configured default, then the only discovered profile.
func pickProfileFile(files []source.DiscoveredFile, profileID, defaultID string) (source.DiscoveredFile, error) {
	if len(files) == 0 {
		return source.DiscoveredFile{}, errors.New("no profile documents found")
	}

	want := profileID
	if want == "" {
		want = defaultID
	}
	if want != "" {
		for _, f := range files {
			if f.ProfileID == want {
				return f, nil
			}
		}
		return source.DiscoveredFile{}, fmt.Errorf("profile %q not found", want)
	}

	if len(files) == 1 {
		return files[0], nil
	}
	return source.DiscoveredFile{}, fmt.Errorf("%d profiles found, pass --profile to choose one", len(files))
}

func loadAdvice(cfg config.Config, dataDir, profileID string, asOf time.Time) (model.UserProfile, model.SpendingSnapshot, model.AdviceResult, error) {
	files, err := source.ScanDir(dataDir)
	if err != nil {
		return model.UserProfile{}, nil, model.AdviceResult{}, err
	}

	df, err := pickProfileFile(files, profileID, cfg.General.DefaultProfile)
	if err != nil {
		return model.UserProfile{}, nil, model.AdviceResult{}, err
	}

	res := source.ParseFile(df)
	if res.Err != nil {
		return model.UserProfile{}, nil, model.AdviceResult{}, res.Err
	}

	advice, err := engine.New(cfg).Compute(res.Profile, res.Spending, res.Portfolio, res.Goals, asOf)
	if err != nil {
		return model.UserProfile{}, nil, model.AdviceResult{}, err
	}
	return res.Profile, res.Spending, advice, nil
}

func loadDataCmd(cfg config.Config, dataDir, profileID string, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		profile, spending, advice, err := loadAdvice(cfg, dataDir, profileID, asOf)
		return DataLoadedMsg{
			Profile:  profile,
			Spending: spending,
			Advice:   advice,
			Err:      err,
			LoadTime: time.Since(start),
		}
	}
}

func refreshDataCmd(cfg config.Config, dataDir, profileID string, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		profile, spending, advice, err := loadAdvice(cfg, dataDir, profileID, asOf)
		return RefreshDataMsg{
			Profile:  profile,
			Spending: spending,
			Advice:   advice,
			Err:      err,
			LoadTime: time.Since(start),
		}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1.
// Hitboxes are derived from the same width rules used by RenderTabBar:
// one leading space, two spaces between tabs.
func (a App) tabAtX(x int) int {
	pos := 1
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 2
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards and empty lines keep the app background.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
