// Package config resolves coach settings from defaults, an optional TOML
// file, and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	// DefaultDirName is the folder under the user's home directory holding entries.
	DefaultDirName = ".coach"
	// DefaultEditor runs when neither the config file nor EDITOR names one.
	DefaultEditor = "vi"
	// DefaultMaxEntryBytes bounds entry files. A typical hand-written entry is 1-2K.
	DefaultMaxEntryBytes = 8 * 1024
	// DefaultLogLevel keeps the CLI quiet unless something goes wrong.
	DefaultLogLevel = "warn"
	// DefaultLookbackDays limits how far back carry-over searches for a previous entry.
	DefaultLookbackDays = 7
)

// Config holds every tunable of the coach CLI.
type Config struct {
	Home          string `toml:"home" env:"COACH_HOME"`
	Editor        string `toml:"editor" env:"EDITOR"`
	MaxEntryBytes int    `toml:"max_entry_bytes" env:"COACH_MAX_ENTRY_BYTES"`
	LogLevel      string `toml:"log_level" env:"COACH_LOG_LEVEL"`
	CarryTasks    bool   `toml:"carry_tasks" env:"COACH_CARRY_TASKS"`
	LookbackDays  int    `toml:"lookback_days" env:"COACH_LOOKBACK_DAYS"`

	// Path is the config file that was read, if any.
	Path string `toml:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Editor:        DefaultEditor,
		MaxEntryBytes: DefaultMaxEntryBytes,
		LogLevel:      DefaultLogLevel,
		LookbackDays:  DefaultLookbackDays,
	}
}

// Load layers the config file (COACH_CONFIG or ~/.config/coach/config.toml)
// and environment variables over Default. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := filePath()
	if err != nil {
		return Config{}, err
	}
	if err := loadFile(&cfg, path); err != nil {
		return Config{}, err
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func filePath() (string, error) {
	if override, ok := os.LookupEnv("COACH_CONFIG"); ok && strings.TrimSpace(override) != "" {
		return expandHome(strings.TrimSpace(override))
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		// No config dir (e.g. HOME unset); settle for defaults and env.
		return "", nil
	}
	return filepath.Join(dir, "coach", "config.toml"), nil
}

func loadFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	cfg.Path = path
	return nil
}

func (c *Config) resolve() error {
	home := strings.TrimSpace(c.Home)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home: %w", err)
		}
		home = filepath.Join(userHome, DefaultDirName)
	}
	home, err := expandHome(home)
	if err != nil {
		return err
	}
	c.Home = home

	if strings.TrimSpace(c.Editor) == "" {
		c.Editor = DefaultEditor
	}
	if c.MaxEntryBytes <= 0 {
		return fmt.Errorf("max_entry_bytes must be positive, got %d", c.MaxEntryBytes)
	}
	if c.LookbackDays < 0 {
		return fmt.Errorf("lookback_days must not be negative, got %d", c.LookbackDays)
	}
	return nil
}

func expandHome(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
