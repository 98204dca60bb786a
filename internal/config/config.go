package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all brgy configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Security   SecurityConfig   `toml:"security"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds storage and layout preferences.
type GeneralConfig struct {
	DBPath              string `toml:"db_path,omitempty"`
	SlotCount           int    `toml:"slot_count"`
	ContinuationHeaders bool   `toml:"continuation_headers"`
}

// SecurityConfig holds the lock screen settings.
type SecurityConfig struct {
	IdleTimeoutSec int `toml:"idle_timeout_sec"`
	MaxAttempts    int `toml:"max_attempts"`
	CooldownSec    int `toml:"cooldown_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig holds the log level and an optional log file. The TUI
// always logs to a file so it does not draw over the screen.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			SlotCount:           40,
			ContinuationHeaders: true,
		},
		Security: SecurityConfig{
			IdleTimeoutSec: 300,
			MaxAttempts:    5,
			CooldownSec:    30,
		},
		Appearance: AppearanceConfig{
			Theme: "narra",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "brgy")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "brgy")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path, returning defaults if it doesn't exist.
// Invalid values fall back to their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.General.SlotCount < 4 || c.General.SlotCount%2 != 0 {
		c.General.SlotCount = def.General.SlotCount
	}
	if c.Security.IdleTimeoutSec < 0 {
		c.Security.IdleTimeoutSec = def.Security.IdleTimeoutSec
	}
	if c.Security.MaxAttempts <= 0 {
		c.Security.MaxAttempts = def.Security.MaxAttempts
	}
	if c.Security.CooldownSec < 0 {
		c.Security.CooldownSec = def.Security.CooldownSec
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// DBPath returns the database path from env var or config, in that order.
// An empty result means the caller should use its default location.
func DBPath(cfg Config) string {
	if p := os.Getenv("BRGY_DB"); p != "" {
		return p
	}
	return cfg.General.DBPath
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
