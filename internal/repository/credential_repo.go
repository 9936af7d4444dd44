package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taxi_dispatch/internal/models"
)

type CredentialSQLite struct {
	db *sql.DB
}

func NewCredentialSQLite(db *sql.DB) *CredentialSQLite {
	return &CredentialSQLite{db: db}
}

// Ensure implementation of the Credentials interface at compile time.
var _ Credentials = (*CredentialSQLite)(nil)

// ErrNoSuchDriver is returned by UpdatePin when currentPin matches no entry.
var ErrNoSuchDriver = errors.New("no driver with that pin")

const (
	selectDriverByPinSQL = `SELECT pin, name, admin FROM drivers WHERE pin = ?`
	updateDriverPinSQL   = `UPDATE drivers SET pin = ? WHERE pin = ?`
	listDriversSQL       = `SELECT pin, name, admin FROM drivers ORDER BY name`
)

// GetByPin fetches a directory entry by exact pin match. Returns (nil, nil)
// if no entry matches.
func (r *CredentialSQLite) GetByPin(ctx context.Context, pin string) (*models.Driver, error) {
	var d models.Driver
	err := r.db.QueryRowContext(ctx, selectDriverByPinSQL, pin).Scan(&d.Pin, &d.Name, &d.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select driver: %w", err)
	}
	return &d, nil
}

// UpdatePin rewrites the pin of the entry currently holding currentPin. The
// update is keyed by the acting identity's own pin, never by position in the
// directory.
func (r *CredentialSQLite) UpdatePin(ctx context.Context, currentPin, newPin string) error {
	res, err := r.db.ExecContext(ctx, updateDriverPinSQL, newPin, currentPin)
	if err != nil {
		return fmt.Errorf("update driver pin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update driver pin rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoSuchDriver
	}
	return nil
}

// List returns the whole directory, name-ordered.
func (r *CredentialSQLite) List(ctx context.Context) ([]models.Driver, error) {
	rows, err := r.db.QueryContext(ctx, listDriversSQL)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var out []models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.Pin, &d.Name, &d.Admin); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
