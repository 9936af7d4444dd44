package repository

import (
	"context"
	"database/sql"

	"taxi_dispatch/internal/models"
)

// KV is the terminal's durable key-value store. Known keys are `status`,
// `role`, `name`, `pin` and `history` (a JSON-serialized array). Get returns
// ok=false for an absent key; Clear wipes every key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Credentials is the driver credential directory.
type Credentials interface {
	GetByPin(ctx context.Context, pin string) (*models.Driver, error)
	UpdatePin(ctx context.Context, currentPin, newPin string) error
	List(ctx context.Context) ([]models.Driver, error)
}

type Repository struct {
	KV          KV
	Credentials Credentials
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		KV:          NewKVSQLite(db),
		Credentials: NewCredentialSQLite(db),
	}
}
