package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLite stores records in the `records` table created by the migrations.
type SQLite struct{ db *sql.DB }

// NewSQLite wraps an opened, migrated database.
func NewSQLite(db *sql.DB) *SQLite { return &SQLite{db: db} }

// Get returns the record under key or ErrNotFound.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// Set upserts the record under key.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}
