package identity

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the users table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE users (
			clerkId TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			createdAt INTEGER NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestEnsureUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	t.Run("creates user when absent", func(t *testing.T) {
		created, err := repo.EnsureUser(ctx, "homeassistant", "homeassistant@local")
		if err != nil {
			t.Fatalf("EnsureUser() error = %v", err)
		}
		if !created {
			t.Error("EnsureUser() created = false, want true")
		}

		u, err := repo.GetByID(ctx, "homeassistant")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if u.Email != "homeassistant@local" {
			t.Errorf("Email = %q, want homeassistant@local", u.Email)
		}
		if u.CreatedAt.IsZero() {
			t.Error("CreatedAt is zero")
		}
	})

	t.Run("is a no-op when user exists", func(t *testing.T) {
		created, err := repo.EnsureUser(ctx, "homeassistant", "other@local")
		if err != nil {
			t.Fatalf("EnsureUser() error = %v", err)
		}
		if created {
			t.Error("EnsureUser() created = true, want false for existing user")
		}

		// Existing row must be untouched
		u, err := repo.GetByID(ctx, "homeassistant")
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if u.Email != "homeassistant@local" {
			t.Errorf("Email = %q, existing row should keep original email", u.Email)
		}
	})
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	_, err := repo.GetByID(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID() error = %v, want ErrUserNotFound", err)
	}
}
