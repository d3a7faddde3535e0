package api

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nolongerevil/frontend/internal/infrastructure/config"
	"github.com/nolongerevil/frontend/internal/infrastructure/logging"
	"github.com/nolongerevil/frontend/internal/registration"
)

// newTestServer builds a server over an in-memory database seeded with
// the vendor schema.
func newTestServer(t *testing.T) (*Server, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE entryKeys (
			code TEXT PRIMARY KEY,
			serial TEXT NOT NULL,
			expiresAt INTEGER NOT NULL,
			claimedBy TEXT,
			claimedAt INTEGER
		)`,
		`CREATE TABLE deviceOwners (
			userId TEXT NOT NULL,
			serial TEXT NOT NULL,
			createdAt INTEGER NOT NULL,
			PRIMARY KEY (userId, serial)
		)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("creating schema: %v", err)
		}
	}

	logger := logging.New(config.LoggingConfig{Level: "error"}, "test")
	svc := registration.NewService(registration.NewSQLiteRepository(db), logger)

	srv, err := New(Deps{
		Config:        config.HTTPConfig{Host: "127.0.0.1", Port: 0},
		Logger:        logger,
		Registration:  svc,
		DefaultUserID: "homeassistant",
		Version:       "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, db
}

// seedEntryKey inserts an unclaimed entry key expiring at the given time.
func seedEntryKey(t *testing.T, db *sql.DB, code, serial string, expiresAt time.Time) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO entryKeys (code, serial, expiresAt) VALUES (?, ?, ?)`,
		code, serial, expiresAt.UnixMilli(),
	)
	if err != nil {
		t.Fatalf("seeding entry key %s: %v", code, err)
	}
}

func TestNew_MissingDependencies(t *testing.T) {
	logger := logging.New(config.LoggingConfig{Level: "error"}, "test")
	svc := registration.NewService(nil, logger)

	tests := []struct {
		name string
		deps Deps
	}{
		{"no logger", Deps{Registration: svc, DefaultUserID: "homeassistant"}},
		{"no registration service", Deps{Logger: logger, DefaultUserID: "homeassistant"}},
		{"no default user", Deps{Logger: logger, Registration: svc}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.deps); err == nil {
				t.Error("New() succeeded with missing dependency")
			}
		})
	}
}

func TestHealthCheck_NotStarted(t *testing.T) {
	srv, _ := newTestServer(t)

	if err := srv.HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() on unstarted server returned nil")
	}
}

func TestClose_NotStarted(t *testing.T) {
	srv, _ := newTestServer(t)

	if err := srv.Close(); err != nil {
		t.Errorf("Close() on unstarted server error = %v", err)
	}
}
