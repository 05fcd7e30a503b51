package cmd

import (
	"fmt"
	"os"
	"time"

	"finsight/internal/config"
	"finsight/internal/engine"
	"finsight/internal/model"
	"finsight/internal/source"

	"github.com/spf13/cobra"
)

var (
	flagProfile string
	flagDataDir string
	flagAsOf    string
	flagQuiet   bool
	flagNoStore bool
)

var rootCmd = &cobra.Command{
	Use:   "finsight",
	Short: "Personalized financial insight CLI",
	Long:  "Compute your personal inflation rate, spending thresholds, goals, and recommendations.",
	RunE:  runAdvise,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile id (defaults to config or the only profile)")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default ~/.finsight)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Compute as of this date (YYYY-MM-DD, default today)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoStore, "no-store", false, "Skip recording the run to history")
}

// dataDir resolves the data directory from flag or config.
func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.DataDir(cfg)
}

// asOfTime resolves the --as-of flag, defaulting to now.
func asOfTime() (time.Time, error) {
	if flagAsOf == "" {
		return time.Now(), nil
	}
	ts, err := time.Parse("2006-01-02", flagAsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: use YYYY-MM-DD", flagAsOf)
	}
	return ts, nil
}

// loadProfileData is the shared loading path used by all commands. It
// scans the data directory, picks the requested profile (or the config
// default, or the only one present), and parses its document.
func loadProfileData(cfg config.Config) (source.ParseResult, error) {
	dir := dataDir(cfg)
	files, err := source.ScanDir(dir)
	if err != nil {
		return source.ParseResult{}, err
	}
	if len(files) == 0 {
		return source.ParseResult{}, fmt.Errorf("no profiles in %s; run `finsight setup` first", dir)
	}

	want := flagProfile
	if want == "" {
		want = cfg.General.DefaultProfile
	}
	if want == "" {
		if len(files) > 1 {
			return source.ParseResult{}, fmt.Errorf("%d profiles found; pick one with --profile", len(files))
		}
		want = files[0].ProfileID
	}

	for _, df := range files {
		if df.ProfileID != want {
			continue
		}
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Loading profile %s...\n", df.ProfileID)
		}
		res := source.ParseFile(df)
		if res.Err != nil {
			return source.ParseResult{}, res.Err
		}
		return res, nil
	}
	return source.ParseResult{}, fmt.Errorf("profile %q not found in %s", want, dir)
}

// computeAdvice runs the full pipeline for the selected profile.
func computeAdvice() (model.AdviceResult, source.ParseResult, config.Config, time.Time, error) {
	cfg, err := config.Load()
	if err != nil {
		return model.AdviceResult{}, source.ParseResult{}, cfg, time.Time{}, err
	}

	asOf, err := asOfTime()
	if err != nil {
		return model.AdviceResult{}, source.ParseResult{}, cfg, time.Time{}, err
	}

	data, err := loadProfileData(cfg)
	if err != nil {
		return model.AdviceResult{}, source.ParseResult{}, cfg, time.Time{}, err
	}

	eng := engine.New(cfg)
	advice, err := eng.Compute(data.Profile, data.Spending, data.Portfolio, data.Goals, asOf)
	if err != nil {
		return model.AdviceResult{}, source.ParseResult{}, cfg, time.Time{}, err
	}
	return advice, data, cfg, asOf, nil
}
