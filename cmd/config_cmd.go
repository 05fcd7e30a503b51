// Package cmd implements the finsight CLI commands.
package cmd

import (
	"fmt"

	"finsight/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DefaultProfile != "" {
		fmt.Printf("    Default profile: %s\n", cfg.General.DefaultProfile)
	} else {
		fmt.Println("    Default profile: not set")
	}
	fmt.Printf("    Data directory:  %s\n", config.DataDir(cfg))
	fmt.Printf("    Horizon months:  %d\n", cfg.General.HorizonMonths)
	fmt.Println()

	fmt.Println("  [Advisor]")
	if cfg.Advisor.BaseURL != "" {
		fmt.Printf("    Endpoint: %s\n", cfg.Advisor.BaseURL)
	} else {
		fmt.Println("    Endpoint: not configured (local fallback)")
	}
	key := config.GetAdvisorKey(cfg)
	if key != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(key))
	} else {
		fmt.Println("    API key:  not configured")
	}
	fmt.Println()

	fmt.Println("  [Baseline]")
	if cfg.Baseline.GovernmentRate != nil {
		fmt.Printf("    Government rate: %.1f%% (override)\n", *cfg.Baseline.GovernmentRate)
	} else {
		fmt.Printf("    Government rate: %.1f%% (published default)\n", config.DefaultGovernmentBaseline)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `finsight setup` to reconfigure.")
	return nil
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
