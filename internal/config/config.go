// Package config holds finsight user configuration and the versioned
// lookup tables (city tiers, category rates, seasonal factors) the
// engines consume.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all finsight configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Appearance AppearanceConfig `toml:"appearance"`
	Baseline   BaselineConfig   `toml:"baseline"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultProfile string `toml:"default_profile,omitempty"`
	DataDir        string `toml:"data_dir,omitempty"`
	HorizonMonths  int    `toml:"horizon_months"`
}

// AdvisorConfig holds the conversational advice service settings.
// When unset, the deterministic fallback text is used.
type AdvisorConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
	APIKey  string `toml:"api_key,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// BaselineConfig allows overriding the published inflation baseline,
// e.g. after a new CPI release.
type BaselineConfig struct {
	GovernmentRate *float64 `toml:"government_rate,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HorizonMonths: 12,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "finsight")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "finsight")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// GetAdvisorKey returns the advisor API key from env var or config, in that order.
func GetAdvisorKey(cfg Config) string {
	if key := os.Getenv("FINSIGHT_ADVISOR_KEY"); key != "" {
		return key
	}
	return cfg.Advisor.APIKey
}

// GovernmentBaseline returns the configured baseline or the published default.
func GovernmentBaseline(cfg Config) float64 {
	if cfg.Baseline.GovernmentRate != nil {
		return *cfg.Baseline.GovernmentRate
	}
	return DefaultGovernmentBaseline
}

// DataDir returns the profile data directory, defaulting to ~/.finsight.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".finsight")
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
