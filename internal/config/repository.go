package config

import (
	"fmt"
	"os"

	"taskboard/internal/repository/sqlite"
)

// CreateRepository opens the reference store database described by the configuration
func CreateRepository(config *Config) (*sqlite.SQLiteRepository, error) {
	if err := os.MkdirAll(config.Store.Dir, os.FileMode(config.Store.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	repo, err := sqlite.NewWithConfig(config.GetDatabasePath(), sqlite.Options{
		QueryTimeout: config.Store.QueryTimeout,
		WriteTimeout: config.Store.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (*sqlite.SQLiteRepository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
