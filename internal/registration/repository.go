package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for entry-key claims and device
// ownership persistence.
type Repository interface {
	// Claim atomically marks an entry key claimed by the given user and
	// returns the device serial it pairs with.
	//
	// The code must already be normalised and format-validated. Claim
	// returns ErrKeyNotClaimable when the code does not exist, has
	// expired, or was already claimed — including losing a concurrent
	// claim race (first writer wins).
	Claim(ctx context.Context, code, userID string) (string, error)

	// Register records ownership of serial by userID unless any user
	// already owns the serial. It reports whether the row was inserted;
	// false means an owner already existed and the call was a no-op.
	Register(ctx context.Context, userID, serial string) (bool, error)

	// ListForUser returns the user's ownership rows, newest first.
	ListForUser(ctx context.Context, userID string) ([]DeviceOwnership, error)

	// Delete removes the ownership row matching both user and serial.
	// It reports whether a row was actually removed.
	Delete(ctx context.Context, userID, serial string) (bool, error)

	// GetKey retrieves an entry key by exact code. Used for logging the
	// reason a claim was rejected; returns nil without error when the
	// code does not exist.
	GetKey(ctx context.Context, code string) (*EntryKey, error)
}

// SQLiteRepository implements Repository using SQLite.
//
// Claim and Register are single conditional statements, so two concurrent
// requests touching the same code or serial resolve atomically inside
// SQLite: exactly one writer's statement affects a row.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed registration repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Claim marks the entry key claimed and returns its device serial.
func (r *SQLiteRepository) Claim(ctx context.Context, code, userID string) (string, error) {
	now := time.Now().UnixMilli()

	// Conditional update: only an unclaimed, unexpired key is touched.
	result, err := r.db.ExecContext(ctx,
		`UPDATE entryKeys
		 SET claimedBy = ?, claimedAt = ?
		 WHERE code = ? AND claimedBy IS NULL AND expiresAt >= ?`,
		userID, now, code, now,
	)
	if err != nil {
		return "", fmt.Errorf("claiming entry key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("claiming entry key: %w", err)
	}
	if rows == 0 {
		return "", ErrKeyNotClaimable
	}

	var serial string
	err = r.db.QueryRowContext(ctx,
		"SELECT serial FROM entryKeys WHERE code = ?", code,
	).Scan(&serial)
	if err != nil {
		return "", fmt.Errorf("reading claimed entry key: %w", err)
	}

	return serial, nil
}

// Register inserts an ownership row unless the serial already has one.
func (r *SQLiteRepository) Register(ctx context.Context, userID, serial string) (bool, error) {
	now := time.Now().UnixMilli()

	// INSERT ... SELECT with a NOT EXISTS guard is evaluated atomically,
	// enforcing one-owner-per-serial without a schema constraint the
	// vendor database does not have.
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO deviceOwners (userId, serial, createdAt)
		 SELECT ?, ?, ?
		 WHERE NOT EXISTS (SELECT 1 FROM deviceOwners WHERE serial = ?)`,
		userID, serial, now, serial,
	)
	if err != nil {
		return false, fmt.Errorf("registering device %q: %w", serial, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("registering device %q: %w", serial, err)
	}
	return rows > 0, nil
}

// ListForUser returns the user's devices, newest registration first.
func (r *SQLiteRepository) ListForUser(ctx context.Context, userID string) ([]DeviceOwnership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT userId, serial, createdAt
		 FROM deviceOwners
		 WHERE userId = ?
		 ORDER BY createdAt DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	defer rows.Close()

	var devices []DeviceOwnership
	for rows.Next() {
		var d DeviceOwnership
		var createdAt int64
		if err := rows.Scan(&d.UserID, &d.Serial, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning ownership row: %w", err)
		}
		d.CreatedAt = time.UnixMilli(createdAt).UTC()
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ownership rows: %w", err)
	}

	if devices == nil {
		devices = []DeviceOwnership{}
	}
	return devices, nil
}

// Delete removes the ownership row matching both user and serial.
func (r *SQLiteRepository) Delete(ctx context.Context, userID, serial string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM deviceOwners WHERE userId = ? AND serial = ?",
		userID, serial,
	)
	if err != nil {
		return false, fmt.Errorf("deleting device %q: %w", serial, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting device %q: %w", serial, err)
	}
	return rows > 0, nil
}

// GetKey retrieves an entry key by exact code.
func (r *SQLiteRepository) GetKey(ctx context.Context, code string) (*EntryKey, error) {
	var k EntryKey
	var expiresAt int64
	var claimedBy sql.NullString
	var claimedAt sql.NullInt64

	err := r.db.QueryRowContext(ctx,
		"SELECT code, serial, expiresAt, claimedBy, claimedAt FROM entryKeys WHERE code = ?",
		code,
	).Scan(&k.Code, &k.Serial, &expiresAt, &claimedBy, &claimedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying entry key: %w", err)
	}

	k.ExpiresAt = time.UnixMilli(expiresAt).UTC()
	if claimedBy.Valid {
		k.ClaimedBy = &claimedBy.String
	}
	if claimedAt.Valid {
		at := time.UnixMilli(claimedAt.Int64).UTC()
		k.ClaimedAt = &at
	}

	return &k, nil
}
