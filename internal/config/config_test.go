package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ouraiii/LearningJourney/internal/constants"
	"github.com/ouraiii/LearningJourney/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{constants.EnvDBPath, constants.EnvTimezone, constants.EnvLogDir, constants.EnvDebug} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Storage.Path != constants.DefaultDBPath {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, constants.DefaultDBPath)
	}
	if cfg.Goal.DefaultSubject != "Swift" || cfg.Goal.DefaultDuration != "Week" {
		t.Errorf("Goal = %+v, want Swift/Week", cfg.Goal)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if strings.HasPrefix(cfg.Storage.Path, "~") {
		t.Errorf("Storage.Path = %q, want ~ expanded", cfg.Storage.Path)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
path = "/tmp/journey-test.db"

[log]
debug = true

[calendar]
timezone = "Europe/Berlin"

[goal]
default_subject = "Korean"
default_duration = "Month"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Storage.Path != "/tmp/journey-test.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if !cfg.Log.Debug {
		t.Error("Log.Debug = false, want true")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "Europe/Berlin" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
	subject, d := cfg.DefaultGoal()
	if subject != "Korean" || d != models.DurationMonth {
		t.Errorf("DefaultGoal() = %q, %q", subject, d)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad toml", content: "[storage\npath = 1", wantErr: "parsing config file"},
		{name: "bad timezone", content: "[calendar]\ntimezone = \"Mars/Olympus\"", wantErr: "unknown timezone"},
		{name: "bad duration", content: "[goal]\ndefault_duration = \"Decade\"", wantErr: "default_duration"},
		{name: "empty subject", content: "[goal]\ndefault_subject = \"  \"", wantErr: "default_subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFrom() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(constants.EnvDBPath, "/tmp/env.db")
	t.Setenv(constants.EnvTimezone, "UTC")
	t.Setenv(constants.EnvDebug, "true")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Storage.Path != "/tmp/env.db" || cfg.Calendar.Timezone != "UTC" || !cfg.Log.Debug {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestEnvDebugInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(constants.EnvDebug, "maybe")
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("LoadFrom() accepted JOURNEY_DEBUG=maybe")
	}
}

func TestDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(constants.EnvDBPath)
	os.Unsetenv(constants.EnvTimezone)
	t.Setenv(constants.EnvTimezone, "UTC")

	env := constants.EnvDBPath + "=/tmp/dotenv.db\n" + constants.EnvTimezone + "=Asia/Tokyo\n"
	if err := os.WriteFile(".env", []byte(env), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(constants.EnvDBPath) })

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Storage.Path != "/tmp/dotenv.db" {
		t.Errorf("Storage.Path = %q, want value from .env", cfg.Storage.Path)
	}
	if cfg.Calendar.Timezone != "UTC" {
		t.Errorf("Timezone = %q, .env must not override the environment", cfg.Calendar.Timezone)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Storage.Path = "/tmp/saved.db"
	cfg.Goal.DefaultDuration = "Year"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if got.Storage.Path != "/tmp/saved.db" || got.Goal.DefaultDuration != "Year" {
		t.Errorf("LoadFrom(saved) = %+v", got)
	}
}
