package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// User is an account that can own devices and integration config.
// The vendor schema calls the primary key clerkId for historical reasons;
// this service treats it as an opaque user identifier.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Repository defines the interface for user persistence.
type Repository interface {
	// EnsureUser inserts the user if absent. It reports whether a row was
	// created; an existing user is a no-op, never an error.
	EnsureUser(ctx context.Context, id, email string) (bool, error)

	// GetByID retrieves a user by identifier.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*User, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed user repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// EnsureUser inserts the user row if it does not already exist.
// INSERT OR IGNORE keys on the primary key, so concurrent calls and
// repeated startups are safe.
func (r *SQLiteRepository) EnsureUser(ctx context.Context, id, email string) (bool, error) {
	now := time.Now().UnixMilli()

	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO users (clerkId, email, createdAt) VALUES (?, ?, ?)",
		id, email, now,
	)
	if err != nil {
		return false, fmt.Errorf("ensuring user %q: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ensuring user %q: %w", id, err)
	}
	return rows > 0, nil
}

// GetByID retrieves a user by identifier.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	var createdAt int64

	err := r.db.QueryRowContext(ctx,
		"SELECT clerkId, email, createdAt FROM users WHERE clerkId = ?", id,
	).Scan(&u.ID, &u.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by id: %w", err)
	}

	u.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &u, nil
}
