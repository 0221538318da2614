package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/billflow/billflow/internal/model"
	"github.com/billflow/billflow/internal/pattern"
	"github.com/billflow/billflow/internal/storage"
)

// openStorage opens (and migrates) the local database.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "billflow", "billflow.db")
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// loadRules combines the built-in catalog with any saved custom rules.
// Custom rules come after the defaults so catalog order stays stable.
func loadRules(ctx context.Context, store *storage.SQLiteStorage) ([]model.PatternRule, error) {
	rules := pattern.DefaultCatalog()
	if store == nil {
		return rules, nil
	}
	custom, err := store.ListCustomRules(ctx)
	if err != nil {
		return nil, err
	}
	return append(rules, custom...), nil
}
