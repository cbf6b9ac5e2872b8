package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkordes/travelmaster/internal/domain"
)

// PreferenceRepo is the key-value preference facility: one opaque byte value
// per key, read and written whole.
type PreferenceRepo interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been set or was deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value in a single
	// statement.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

type sqlPreferenceRepo struct {
	c Conn
}

// NewPreferenceRepo constructs a PreferenceRepo backed by the provided connection.
func NewPreferenceRepo(c Conn) PreferenceRepo {
	return &sqlPreferenceRepo{c: c}
}

func (r *sqlPreferenceRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.c.queryRow(ctx, `SELECT value FROM preferences WHERE name = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.PreferenceRepo.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.PreferenceRepo.Get: %w", err)
	}
	return value, nil
}

// Set upserts the value. ON CONFLICT ... DO UPDATE is understood by both
// SQLite and Postgres, so the overwrite is atomic on either.
func (r *sqlPreferenceRepo) Set(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO preferences (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`

	if value == nil {
		value = []byte{}
	}
	if _, err := r.c.exec(ctx, q, key, value, r.c.now()); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Set: %w", err)
	}
	return nil
}

func (r *sqlPreferenceRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.c.exec(ctx, `DELETE FROM preferences WHERE name = ?`, key); err != nil {
		return fmt.Errorf("repo.PreferenceRepo.Delete: %w", err)
	}
	return nil
}
