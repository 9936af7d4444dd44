package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates the terminal's SQLite file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA journal_mode=WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaKVStore = `
CREATE TABLE IF NOT EXISTS kv_store (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const schemaDrivers = `
CREATE TABLE IF NOT EXISTS drivers (
    pin TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    admin BOOLEAN NOT NULL
);
`

// The deployed terminal ships with this fixed two-entry directory. Pins are
// stored in clear text; see DESIGN.md for why that is kept.
const seedDrivers = `
INSERT INTO drivers (pin, name, admin) VALUES
    ('1254', 'Kuljettaja', 0),
    ('7956', 'Admin', 1);
`

const countDriversSQL = `SELECT COUNT(*) FROM drivers`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaKVStore,
		schemaDrivers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	// Seed only a fresh directory. Re-running the seed against an existing
	// one would re-insert a pin that a pin change has rewritten away.
	var n int
	if err := tx.QueryRow(countDriversSQL).Scan(&n); err != nil {
		return fmt.Errorf("count drivers: %w", err)
	}
	if n == 0 {
		if _, err := tx.Exec(seedDrivers); err != nil {
			return fmt.Errorf("seed drivers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
