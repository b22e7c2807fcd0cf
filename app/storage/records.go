package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// Record is an opaque key/payload pair surviving restarts.
type Record struct {
	Key       string    `db:"key"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// RecordStore is a small durable key-value table used for per-user
// view preferences and similar runtime state.
type RecordStore struct {
	db *sqlx.DB
}

// NewRecordStore wraps the shared connection.
func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

// Get returns the payload for a key; the second result reports presence.
func (s *RecordStore) Get(ctx context.Context, key string) (string, bool, error) {
	var payload string
	err := s.db.GetContext(ctx, &payload,
		`SELECT payload FROM records WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

// Put stores or replaces the payload for a key.
func (s *RecordStore) Put(ctx context.Context, key, payload string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, payload)
	return err
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *RecordStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE key = ?`, key)
	return err
}
