package cmd

import (
	"fmt"
	"os"

	"finsight/internal/cli"
	"finsight/internal/config"
	"finsight/internal/source"
	"finsight/internal/store"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles known to the store",
	RunE:  runProfilesList,
}

var profilesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import profile documents from the data directory into the store",
	RunE:  runProfilesSync,
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored profile with its goals and latest run",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesShow,
}

var profilesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a profile and its stored history",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfilesRm,
}

func init() {
	profilesCmd.AddCommand(profilesSyncCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesRmCmd)
	rootCmd.AddCommand(profilesCmd)
}

func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	db, err := store.Open(storePath(cfg))
	if err != nil {
		return nil, cfg, err
	}
	return db, cfg, nil
}

func runProfilesList(_ *cobra.Command, _ []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	profiles, err := db.ListProfiles()
	if err != nil {
		return err
	}
	count, err := db.ProfileCount()
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("No stored profiles. Run `finsight profiles sync` to import documents.")
		return nil
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.ID,
			p.Name,
			fmt.Sprintf("%d", p.Age),
			cli.FormatINR(p.MonthlyIncome),
			p.Location,
			p.Risk.String(),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Profiles (%d)", count),
		Headers: []string{"ID", "Name", "Age", "Income", "Location", "Risk"},
		Rows:    rows,
	}))
	return nil
}

func runProfilesSync(_ *cobra.Command, _ []string) error {
	db, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	files, err := source.ScanDir(dataDir(cfg))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no profile documents in %s", dataDir(cfg))
	}

	imported := 0
	for _, df := range files {
		res := source.ParseFile(df)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "  Skipping %s: %v\n", df.ProfileID, res.Err)
			continue
		}
		if err := db.SaveProfile(res.Profile, res.Spending, res.Portfolio); err != nil {
			return fmt.Errorf("saving %s: %w", res.Profile.ID, err)
		}
		if err := db.SaveGoals(res.Profile.ID, res.Goals); err != nil {
			return fmt.Errorf("saving goals for %s: %w", res.Profile.ID, err)
		}
		imported++
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Imported %s\n", res.Profile.ID)
		}
	}
	fmt.Printf("Imported %d of %d profile(s).\n", imported, len(files))
	return nil
}

func runProfilesShow(_ *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id := args[0]
	profile, spending, portfolio, err := db.LoadProfile(id)
	if err != nil {
		return fmt.Errorf("profile %q: %w", id, err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROFILE  %s", profile.Name)))
	fmt.Println()
	fmt.Printf("  Age %d · %s · %s · %s\n",
		profile.Age, cli.FormatINR(profile.MonthlyIncome)+"/mo", profile.Location, profile.Risk)
	if total := spending.Total(); total > 0 {
		fmt.Printf("  Monthly spend: %s across %d categories\n", cli.FormatINR(total), len(spending))
	}
	if net := portfolio.Liquid() + portfolio.Invested() + portfolio.Gold; net > 0 {
		fmt.Printf("  Portfolio:     %s\n", cli.FormatINRCompact(net))
	}

	goals, err := db.LoadGoals(id)
	if err != nil {
		return err
	}
	if len(goals) > 0 {
		fmt.Printf("  Goals:         %d stored\n", len(goals))
	}

	if run, err := db.LatestRun(id); err == nil {
		fmt.Printf("  Last run:      %s personal rate, %s (%s)\n",
			cli.FormatRate(run.PersonalRate), run.Severity, run.CreatedAt.Format("2006-01-02"))
	}
	fmt.Println()
	return nil
}

func runProfilesRm(_ *cobra.Command, args []string) error {
	db, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.DeleteProfile(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted profile %s and its history.\n", args[0])
	return nil
}
