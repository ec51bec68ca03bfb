package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/nissyi-gh/taskdeck/internal/debounce"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/notify"
)

const (
	appName               = "taskdeck"
	DefaultConfigFileName = "config.toml"
)

type Config struct {
	DBPath          string `toml:"db_path"`
	LogPath         string `toml:"log_path"`
	Demo            bool   `toml:"demo"`
	CheckInterval   string `toml:"check_interval,omitempty"`
	SearchDebounce  string `toml:"search_debounce"`
	DefaultStatus   string `toml:"default_status"`
	DefaultPriority string `toml:"default_priority"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/taskdeck/config.toml.
func ResolveConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfigFileName
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. A .env file in the working directory and
// TASKDECK_* environment variables override file values.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TASKDECK_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("TASKDECK_DEMO"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.Demo = parsed
		}
	}
	if v := os.Getenv("TASKDECK_CHECK_INTERVAL"); v != "" {
		cfg.CheckInterval = v
	}
	if v := os.Getenv("TASKDECK_SEARCH_DEBOUNCE"); v != "" {
		cfg.SearchDebounce = v
	}
}

// Validate checks that durations and filters parse.
func (c Config) Validate() error {
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := c.Debounce(); err != nil {
		return err
	}
	if _, err := filter.ParseStatus(c.DefaultStatus); err != nil {
		return fmt.Errorf("default_status: %w", err)
	}
	if _, err := filter.ParsePriority(c.DefaultPriority); err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	return nil
}

// Interval returns the due-soon scan period: check_interval when set,
// otherwise the demo or production default.
func (c Config) Interval() (time.Duration, error) {
	if c.CheckInterval != "" {
		d, err := time.ParseDuration(c.CheckInterval)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("check_interval %q: must be a positive duration", c.CheckInterval)
		}
		return d, nil
	}
	if c.Demo {
		return notify.DemoInterval, nil
	}
	return notify.ProductionInterval, nil
}

// Debounce returns the search quiet period.
func (c Config) Debounce() (time.Duration, error) {
	if c.SearchDebounce == "" {
		return debounce.DefaultDelay, nil
	}
	d, err := time.ParseDuration(c.SearchDebounce)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("search_debounce %q: must be a positive duration", c.SearchDebounce)
	}
	return d, nil
}

// ResolveLogPath returns log_path or a file next to the default data dir.
func (c Config) ResolveLogPath() string {
	if c.LogPath != "" {
		return c.LogPath
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return appName + ".log"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName, appName+".log")
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:          "",
		Demo:            false,
		SearchDebounce:  debounce.DefaultDelay.String(),
		DefaultStatus:   string(filter.StatusAll),
		DefaultPriority: string(filter.PriorityAll),
	}
}
