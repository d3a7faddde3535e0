package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no integration row exists for a key.
var ErrNotFound = errors.New("integration: not found")

// Repository defines the interface for integration config persistence.
type Repository interface {
	// Get retrieves the integration row for (userID, integrationType).
	// Returns ErrNotFound if no row exists.
	Get(ctx context.Context, userID, integrationType string) (*Record, error)

	// Upsert inserts or updates the row keyed by (UserID, Type).
	// An insert sets CreatedAt and UpdatedAt equal; an update preserves
	// CreatedAt and refreshes UpdatedAt, Enabled, and Config.
	Upsert(ctx context.Context, rec *Record) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed integration repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get retrieves an integration row.
func (r *SQLiteRepository) Get(ctx context.Context, userID, integrationType string) (*Record, error) {
	var rec Record
	var enabled int
	var createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx,
		`SELECT userId, type, enabled, config, createdAt, updatedAt
		 FROM integrations WHERE userId = ? AND type = ?`,
		userID, integrationType,
	).Scan(&rec.UserID, &rec.Type, &enabled, &rec.Config, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("querying integration: %w", err)
	}

	rec.Enabled = enabled != 0
	rec.CreatedAt = time.UnixMilli(createdAt).UTC()
	rec.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &rec, nil
}

// Upsert inserts or updates the integration row.
// The ON CONFLICT clause keys on the table's (userId, type) primary key,
// so the whole operation is a single atomic statement.
func (r *SQLiteRepository) Upsert(ctx context.Context, rec *Record) error {
	now := time.Now().UnixMilli()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO integrations (userId, type, enabled, config, createdAt, updatedAt)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (userId, type) DO UPDATE SET
		     enabled = excluded.enabled,
		     config = excluded.config,
		     updatedAt = excluded.updatedAt`,
		rec.UserID, rec.Type, boolToInt(rec.Enabled), rec.Config, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting integration %s/%s: %w", rec.UserID, rec.Type, err)
	}
	return nil
}

// boolToInt converts a bool to the 0/1 the vendor schema stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
