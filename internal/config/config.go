// Package config loads journey settings from defaults, a TOML file, a .env
// file and JOURNEY_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ouraiii/LearningJourney/internal/constants"
	"github.com/ouraiii/LearningJourney/internal/models"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	Calendar CalendarConfig `toml:"calendar"`
	Goal     GoalConfig     `toml:"goal"`
}

// StorageConfig selects the goal store: a SQLite file, a *.json file store,
// or a postgres:// URL without a password.
type StorageConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

type CalendarConfig struct {
	Timezone string `toml:"timezone"` // IANA name or "Local"
}

// GoalConfig seeds the first goal created by `journey init`.
type GoalConfig struct {
	DefaultSubject  string `toml:"default_subject"`
	DefaultDuration string `toml:"default_duration"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: constants.DefaultDBPath,
		},
		Log: LogConfig{
			Dir: filepath.Join(filepath.Dir(constants.DefaultDBPath), constants.LogDirName),
		},
		Calendar: CalendarConfig{
			Timezone: constants.DefaultTimezone,
		},
		Goal: GoalConfig{
			DefaultSubject:  constants.DefaultSubject,
			DefaultDuration: constants.DefaultDuration,
		},
	}
}

// Load reads the default config file.
func Load() (*Config, error) {
	return LoadFrom(constants.DefaultConfigPath)
}

// LoadFrom starts with defaults, overlays the file at path if it exists,
// loads .env from the working directory and then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(ExpandPath(path), cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.Path = ExpandPath(cfg.Storage.Path)
	cfg.Log.Dir = ExpandPath(cfg.Log.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(constants.EnvDBPath); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv(constants.EnvTimezone); v != "" {
		cfg.Calendar.Timezone = v
	}
	if v := os.Getenv(constants.EnvLogDir); v != "" {
		cfg.Log.Dir = v
	}
	if v := os.Getenv(constants.EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", constants.EnvDebug, err)
		}
		cfg.Log.Debug = debug
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Storage.Path) == "" {
		return errors.New("storage path cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Goal.DefaultSubject) == "" {
		return errors.New("default_subject cannot be empty")
	}
	if _, err := models.ParseDuration(c.Goal.DefaultDuration); err != nil {
		return fmt.Errorf("default_duration: %w", err)
	}
	return nil
}

// Location resolves the calendar timezone used to compute "today".
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Calendar.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// DefaultGoal returns the validated goal seeded by init.
func (c *Config) DefaultGoal() (string, models.Duration) {
	d, err := models.ParseDuration(c.Goal.DefaultDuration)
	if err != nil {
		d = models.DurationWeek
	}
	return strings.TrimSpace(c.Goal.DefaultSubject), d
}

// Save writes c as TOML, creating parent directories as needed.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
