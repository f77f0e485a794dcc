package config

import (
	"context"
	"fmt"
	"os"

	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/repository/redis"
	"assignment-tracker/internal/repository/sqlite"
)

// CreateRepository opens the key-value store selected by the configuration
func CreateRepository(ctx context.Context, config *Config) (repository.KeyValueStore, error) {
	switch config.Database.Backend {
	case BackendRedis:
		store, err := redis.New(ctx, redis.Options{
			Addr:         config.Redis.Addr,
			Password:     config.Redis.Password,
			DB:           config.Redis.DB,
			Prefix:       config.Redis.Prefix,
			QueryTimeout: config.Database.QueryTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, nil
	case BackendMemory:
		return repository.NewMemoryStore(), nil
	default:
		return createSQLiteRepository(config)
	}
}

func createSQLiteRepository(config *Config) (repository.KeyValueStore, error) {
	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, err := sqlite.NewWithOptions(config.GetDatabasePath(), sqlite.Options{
		QueryTimeout: config.Database.QueryTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory SQLite repository for testing
func CreateTestRepository() (repository.KeyValueStore, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}

	return repo, nil
}
