// Package storage loads and saves ledger snapshots. The core never touches files;
// callers use a Store to fetch a snapshot and to persist the one a transform returned.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/the-ledger-must-balance/internal/model"
)

// Driver names a Store implementation.
type Driver string

// Supported drivers.
const (
	DriverJSON   Driver = "json"
	DriverSQLite Driver = "sqlite"
)

// Store persists snapshots.
type Store interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, snapshot model.Snapshot) error
	Close() error
}

// ParseDriver maps a configuration value onto a Driver.
func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case DriverJSON, "":
		return DriverJSON, nil
	case DriverSQLite, "sqlite3":
		return DriverSQLite, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDriver, s)
}

// Open creates the Store for driver at path. SQLite stores are migrated before use.
func Open(ctx context.Context, driver Driver, path string) (Store, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	switch driver {
	case DriverJSON:
		return NewJSONStore(path), nil
	case DriverSQLite:
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}
