package integration

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE integrations (
		userId TEXT NOT NULL,
		type TEXT NOT NULL,
		enabled INTEGER NOT NULL DEFAULT 1,
		config TEXT NOT NULL,
		createdAt INTEGER NOT NULL,
		updatedAt INTEGER NOT NULL,
		PRIMARY KEY (userId, type)
	)`)
	if err != nil {
		t.Fatalf("creating integrations table: %v", err)
	}
	return db
}

func TestGet_NotFound(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))

	_, err := repo.Get(context.Background(), "homeassistant", TypeMQTT)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty table: got %v, want ErrNotFound", err)
	}
}

func TestUpsert_InsertThenGet(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	rec := &Record{
		UserID:  "homeassistant",
		Type:    TypeMQTT,
		Enabled: true,
		Config:  `{"brokerUrl":"mqtt://broker:1883"}`,
	}
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "homeassistant", TypeMQTT)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "homeassistant" || got.Type != TypeMQTT {
		t.Errorf("got key %s/%s, want homeassistant/mqtt", got.UserID, got.Type)
	}
	if !got.Enabled {
		t.Error("row not enabled")
	}
	if got.Config != rec.Config {
		t.Errorf("config = %q, want %q", got.Config, rec.Config)
	}
	if !got.CreatedAt.Equal(got.UpdatedAt) {
		t.Errorf("fresh insert: createdAt %v != updatedAt %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestUpsert_UpdatePreservesCreatedAt(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	first := &Record{UserID: "u1", Type: TypeMQTT, Enabled: true, Config: `{"v":1}`}
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	// Backdate the row so the refreshed updatedAt is observable.
	if _, err := repo.db.Exec(
		`UPDATE integrations SET createdAt = createdAt - 60000, updatedAt = updatedAt - 60000
		 WHERE userId = ? AND type = ?`, "u1", TypeMQTT); err != nil {
		t.Fatalf("backdating row: %v", err)
	}
	backdated, err := repo.Get(ctx, "u1", TypeMQTT)
	if err != nil {
		t.Fatalf("Get after backdate: %v", err)
	}

	second := &Record{UserID: "u1", Type: TypeMQTT, Enabled: false, Config: `{"v":2}`}
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.Get(ctx, "u1", TypeMQTT)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if got.Config != `{"v":2}` {
		t.Errorf("config = %q, want updated blob", got.Config)
	}
	if got.Enabled {
		t.Error("enabled flag not updated")
	}
	if !got.CreatedAt.Equal(backdated.CreatedAt) {
		t.Errorf("createdAt changed on update: %v -> %v", backdated.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(backdated.UpdatedAt) {
		t.Errorf("updatedAt not refreshed: %v -> %v", backdated.UpdatedAt, got.UpdatedAt)
	}
}

func TestUpsert_SeparateRowsPerType(t *testing.T) {
	repo := NewSQLiteRepository(openTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, &Record{UserID: "u1", Type: TypeMQTT, Enabled: true, Config: `{}`}); err != nil {
		t.Fatalf("Upsert mqtt: %v", err)
	}
	if err := repo.Upsert(ctx, &Record{UserID: "u1", Type: "webhook", Enabled: true, Config: `{}`}); err != nil {
		t.Fatalf("Upsert webhook: %v", err)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM integrations WHERE userId = 'u1'`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d rows, want 2", count)
	}
}
