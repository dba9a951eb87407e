package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Billing BillingConfig `toml:"billing"`
	Timer   TimerConfig   `toml:"timer"`
	Suggest SuggestConfig `toml:"suggest"`
}

type BillingConfig struct {
	Currency          string  `toml:"currency"`
	DefaultHourlyRate float64 `toml:"default_hourly_rate"`
}

type TimerConfig struct {
	WarnAfterHours int  `toml:"warn_after_hours"`
	AutoStopHours  int  `toml:"auto_stop_hours"`
	Notifications  bool `toml:"notifications"`
}

type SuggestConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

func DefaultConfig() Config {
	return Config{
		Billing: BillingConfig{
			Currency: "kr",
		},
		Timer: TimerConfig{
			WarnAfterHours: 8,
			AutoStopHours:  12,
			Notifications:  true,
		},
		Suggest: SuggestConfig{
			Model: "gpt-4o-mini",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "tids"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Suggest.APIKey = v
	}
	if v := os.Getenv("TIDS_SUGGEST_MODEL"); v != "" {
		cfg.Suggest.Model = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// WriteDefault creates the config file with default values if it does
// not exist yet, and returns its path.
func WriteDefault() (string, error) {
	if err := EnsureConfigDir(); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	cfg := DefaultConfig()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing default config: %w", err)
	}
	return path, nil
}
