package database

import (
	"context"
	"embed"
	"testing"
	"time"
)

// testMigrationsDir is the directory containing test migration files.
// The files are a copy of the real vendor schema so the tests exercise
// the exact DDL shipped in the migrations package.
const testMigrationsDir = "testdata"

//go:embed testdata/*.sql
var testMigrationsFS embed.FS

// useTestMigrations points the package at the test migration files for
// the duration of one test.
func useTestMigrations(t *testing.T) {
	t.Helper()

	origFS := MigrationsFS
	origDir := MigrationsDir
	t.Cleanup(func() {
		MigrationsFS = origFS
		MigrationsDir = origDir
	})

	MigrationsFS = testMigrationsFS
	MigrationsDir = testMigrationsDir
}

func TestMigrate(t *testing.T) {
	useTestMigrations(t)
	db := openTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// All four vendor tables must exist
	for _, table := range []string{"users", "entryKeys", "deviceOwners", "integrations"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}

	applied, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		t.Fatalf("GetMigrationStatus() error = %v", err)
	}
	if len(applied) != 1 {
		t.Errorf("expected 1 applied migration, got %d", len(applied))
	}
	if len(pending) != 0 {
		t.Errorf("expected 0 pending migrations, got %d", len(pending))
	}

	// Running again must be idempotent
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestMigrate_VendorCreatedSchema(t *testing.T) {
	// Simulate the vendor server having created the tables first:
	// IF NOT EXISTS must make the migration a no-op rather than an error.
	useTestMigrations(t)
	db := openTestDB(t)

	ctx := context.Background()
	_, err := db.ExecContext(ctx, `
		CREATE TABLE users (clerkId TEXT PRIMARY KEY, email TEXT NOT NULL, createdAt INTEGER NOT NULL);
		CREATE TABLE entryKeys (code TEXT PRIMARY KEY, serial TEXT NOT NULL, expiresAt INTEGER NOT NULL, claimedBy TEXT, claimedAt INTEGER);
	`)
	if err != nil {
		t.Fatalf("pre-creating vendor tables: %v", err)
	}

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() against vendor schema error = %v", err)
	}
}

func TestMigrateDown(t *testing.T) {
	useTestMigrations(t)
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown() error = %v", err)
	}

	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name='entryKeys'",
	).Scan(&name)
	if err == nil {
		t.Error("entryKeys table still exists after rollback")
	}

	applied, _, err := db.GetMigrationStatus(ctx)
	if err != nil {
		t.Fatalf("GetMigrationStatus() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected 0 applied migrations after rollback, got %d", len(applied))
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		wantVersion string
		wantUp      bool
		wantOK      bool
	}{
		{
			name:        "up migration",
			filename:    "20260110_000000_vendor_schema.up.sql",
			wantVersion: "20260110_000000",
			wantUp:      true,
			wantOK:      true,
		},
		{
			name:        "down migration",
			filename:    "20260110_000000_vendor_schema.down.sql",
			wantVersion: "20260110_000000",
			wantUp:      false,
			wantOK:      true,
		},
		{name: "not sql", filename: "readme.md", wantOK: false},
		{name: "no direction", filename: "20260110_000000_vendor_schema.sql", wantOK: false},
		{name: "no version", filename: "schema.up.sql", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, isUp, ok := parseMigrationFilename(tt.filename)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
			if isUp != tt.wantUp {
				t.Errorf("isUp = %v, want %v", isUp, tt.wantUp)
			}
		})
	}
}

func TestExtractMigrationName(t *testing.T) {
	if got := extractMigrationName("20260110_000000_vendor_schema.up.sql"); got != "vendor_schema" {
		t.Errorf("extractMigrationName() = %q, want vendor_schema", got)
	}
}
