package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/ouraiii/LearningJourney/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, content := range files {
		m[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return m
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(nil), SQLite)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 0 {
		t.Errorf("GetCurrentVersion() = %d, want 0", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	if version, _ := runner.GetCurrentVersion(); version != 5 {
		t.Errorf("GetCurrentVersion() = %d, want 5", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		wantNames []string
		wantErr   string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"010_later.sql":  "SELECT 1;",
				"002_second.sql": "SELECT 1;",
				"001_init.sql":   "SELECT 1;",
				"README.md":      "ignored",
			},
			wantNames: []string{"init", "second", "later"},
		},
		{
			name:    "missing name",
			files:   map[string]string{"001.sql": "SELECT 1;"},
			wantErr: "invalid migration filename",
		},
		{
			name:    "non numeric version",
			files:   map[string]string{"abc_init.sql": "SELECT 1;"},
			wantErr: "invalid version number",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "at least 1",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_a.sql":  "SELECT 1;",
				"0001_b.sql": "SELECT 1;",
			},
			wantErr: "duplicate migration version 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(nil, migrationFS(tt.files), SQLite)
			got, err := runner.ReadMigrationFiles()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ReadMigrationFiles() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadMigrationFiles() error = %v", err)
			}
			if len(got) != len(tt.wantNames) {
				t.Fatalf("ReadMigrationFiles() len = %d, want %d", len(got), len(tt.wantNames))
			}
			for i, name := range tt.wantNames {
				if got[i].Name != name {
					t.Errorf("migration[%d].Name = %q, want %q", i, got[i].Name, name)
				}
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	files := migrationFS(map[string]string{
		"001_goals.sql":   "CREATE TABLE goals (id TEXT PRIMARY KEY);",
		"002_entries.sql": "CREATE TABLE entries (goal_id TEXT, day TEXT);",
	})
	runner := NewRunner(db, files, SQLite)

	var logs []string
	applied, err := runner.ApplyMigrations(func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("ApplyMigrations() applied = %d, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("ApplyMigrations() logged nothing")
	}
	if version, _ := runner.GetCurrentVersion(); version != 2 {
		t.Errorf("version after apply = %d, want 2", version)
	}

	applied, err = runner.ApplyMigrations(nil)
	if err != nil || applied != 0 {
		t.Errorf("second ApplyMigrations() = %d, %v, want 0, nil", applied, err)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE broken (id INTEGER;",
	}), SQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() should fail on invalid SQL")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if version, _ := runner.GetCurrentVersion(); version != 1 {
		t.Errorf("version after failure = %d, want 1", version)
	}
}

func TestValidateVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_init.sql": "CREATE TABLE t (id INTEGER);",
	}), SQLite)

	if err := runner.SetVersion(3); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ValidateVersion() error = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ApplyMigrations() error = %v, want ErrSchemaTooNew", err)
	}
}

func TestEmbeddedSQLiteMigrations(t *testing.T) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatal(err)
	}
	db := setupTestDB(t)
	runner := NewRunner(db, sub, SQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	for _, table := range []string{"goals", "day_entries"} {
		var n int
		if err := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&n); err != nil || n != 1 {
			t.Errorf("table %s missing after migration (n=%d, err=%v)", table, n, err)
		}
	}
}

func TestEmbeddedMigrationsMatch(t *testing.T) {
	lite, _ := fs.Sub(migrations.FS, "sqlite")
	pg, _ := fs.Sub(migrations.FS, "postgres")

	liteVersion, err := NewRunner(nil, lite, SQLite).GetLatestVersion()
	if err != nil {
		t.Fatal(err)
	}
	pgVersion, err := NewRunner(nil, pg, Postgres).GetLatestVersion()
	if err != nil {
		t.Fatal(err)
	}
	if liteVersion != pgVersion {
		t.Errorf("sqlite migrations at version %d, postgres at %d", liteVersion, pgVersion)
	}
}

func TestDialectPlaceholder(t *testing.T) {
	if got := SQLite.placeholder(1); got != "?" {
		t.Errorf("SQLite.placeholder(1) = %q", got)
	}
	if got := Postgres.placeholder(2); got != "$2" {
		t.Errorf("Postgres.placeholder(2) = %q", got)
	}
}
