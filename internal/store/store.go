package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: not found")

// Keys written by the session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
)

// Store is the durable client side key/value store that keeps the session
// across restarts. Drivers: sqlite, redis, memory.
type Store interface {
	Values() Values

	ApplyMigrations() error

	// WithTx runs fn in a transaction. Writes made through tx are committed
	// only when fn returns nil.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	Ping(ctx context.Context) error
}

// Tx exposes the repositories inside a transaction.
type Tx interface {
	Values() Values
}

type Values interface {
	// Get returns ErrNotFound when key is unset.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces key.
	Set(ctx context.Context, key, value string) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
