package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"finsight/internal/config"
	"finsight/internal/model"
	"finsight/internal/source"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create a profile with a guided form",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

var spendingPrompts = []struct {
	category string
	label    string
}{
	{"housing", "Rent / EMI"},
	{"food", "Food & groceries"},
	{"transport", "Transport"},
	{"entertainment", "Entertainment"},
	{"shopping", "Shopping"},
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	var (
		name        string
		ageStr      string
		incomeStr   string
		location    string
		risk        string
		profession  string
		theme       = cfg.Appearance.Theme
		makeDefault = true
	)
	spendingInputs := make([]string, len(spendingPrompts))

	positiveNumber := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || v < 0 {
			return fmt.Errorf("enter a non-negative number")
		}
		return nil
	}

	identity := huh.NewGroup(
		huh.NewInput().Title("Name").Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			}),
		huh.NewInput().Title("Age (18-65)").Value(&ageStr).
			Validate(func(s string) error {
				age, err := strconv.Atoi(strings.TrimSpace(s))
				if err != nil || age < model.MinAge || age > model.MaxAge {
					return fmt.Errorf("age must be %d-%d", model.MinAge, model.MaxAge)
				}
				return nil
			}),
		huh.NewInput().Title("Monthly income (₹)").Value(&incomeStr).
			Validate(func(s string) error {
				v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err != nil || v <= 0 {
					return fmt.Errorf("income must be a positive number")
				}
				return nil
			}),
		huh.NewInput().Title("City").Placeholder("e.g. Mumbai, Jaipur, Indore").Value(&location),
		huh.NewInput().Title("Profession").Placeholder("e.g. Software Engineer").Value(&profession),
		huh.NewSelect[string]().Title("Risk appetite").
			Options(
				huh.NewOption("Conservative", "conservative"),
				huh.NewOption("Moderate", "moderate"),
				huh.NewOption("Aggressive", "aggressive"),
				huh.NewOption("Sophisticated aggressive", "sophisticated_aggressive"),
			).Value(&risk),
	)

	spendingFields := make([]huh.Field, 0, len(spendingPrompts))
	for i, prompt := range spendingPrompts {
		spendingFields = append(spendingFields,
			huh.NewInput().Title(prompt.label+" (₹/month, blank to skip)").
				Value(&spendingInputs[i]).Validate(positiveNumber))
	}
	spending := huh.NewGroup(spendingFields...)

	prefs := huh.NewGroup(
		huh.NewSelect[string]().Title("Theme").
			Options(
				huh.NewOption("Flexoki Dark", "flexoki-dark"),
				huh.NewOption("Nord", "nord"),
				huh.NewOption("Terminal (ANSI 16)", "terminal"),
			).Value(&theme),
		huh.NewConfirm().Title("Make this the default profile?").Value(&makeDefault),
	)

	if err := huh.NewForm(identity, spending, prefs).Run(); err != nil {
		return err
	}

	age, _ := strconv.Atoi(strings.TrimSpace(ageStr))
	income, _ := strconv.ParseFloat(strings.TrimSpace(incomeStr), 64)

	doc := source.RawDocument{
		ID:            slugify(name),
		Name:          strings.TrimSpace(name),
		Age:           age,
		MonthlyIncome: income,
		Location:      strings.TrimSpace(location),
		Risk:          risk,
		Profession:    strings.TrimSpace(profession),
		Spending:      map[string]float64{},
	}
	for i, prompt := range spendingPrompts {
		raw := strings.TrimSpace(spendingInputs[i])
		if raw == "" {
			continue
		}
		if amount, err := strconv.ParseFloat(raw, 64); err == nil && amount > 0 {
			doc.Spending[prompt.category] = amount
		}
	}

	profilesDir := filepath.Join(dataDir(cfg), "profiles")
	if err := os.MkdirAll(profilesDir, 0o750); err != nil {
		return fmt.Errorf("creating profiles dir: %w", err)
	}
	path := filepath.Join(profilesDir, doc.ID+".json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}

	cfg.Appearance.Theme = theme
	if makeDefault {
		cfg.General.DefaultProfile = doc.ID
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Profile saved to %s\n", path)
	fmt.Println("  Run `finsight advise` to see your report.")
	fmt.Println()
	return nil
}

// slugify turns a display name into a stable profile id.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "profile"
	}
	return slug
}
