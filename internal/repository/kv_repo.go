package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Well-known keys of the terminal's durable store.
const (
	KeyStatus  = "status"
	KeyRole    = "role"
	KeyName    = "name"
	KeyPin     = "pin"
	KeyHistory = "history"
)

type KVSQLite struct {
	db *sql.DB
}

func NewKVSQLite(db *sql.DB) *KVSQLite {
	return &KVSQLite{db: db}
}

// Ensure implementation of the KV interface at compile time.
var _ KV = (*KVSQLite)(nil)

const (
	upsertKVSQL = `
		INSERT INTO kv_store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`
	selectKVSQL = `SELECT value FROM kv_store WHERE key=?`
	clearKVSQL  = `DELETE FROM kv_store`
)

// Get fetches the value for key. ok is false when the key is absent.
func (r *KVSQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectKVSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select kv %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes or overwrites the value for key.
func (r *KVSQLite) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertKVSQL, key, value); err != nil {
		return fmt.Errorf("upsert kv %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key. Logout relies on this wiping session, status and
// history alike.
func (r *KVSQLite) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, clearKVSQL); err != nil {
		return fmt.Errorf("clear kv store: %w", err)
	}
	return nil
}
