package main

import (
	"context"
	"fmt"

	"github.com/ekolabs/qc-triage/internal/config"
	"github.com/ekolabs/qc-triage/internal/storage"
)

// initStorage opens the SQLite store and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
