package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"assignment-tracker/internal/api"
	"assignment-tracker/internal/cli"
	"assignment-tracker/internal/config"
	"assignment-tracker/internal/preferences"
	"assignment-tracker/internal/services"
)

// Environment selects where assignments are stored.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

const developmentDBFilename = "at.db"

// getEnvironment reads AT_ENV; anything unrecognised counts as production.
func getEnvironment() Environment {
	env := Environment(strings.ToLower(strings.TrimSpace(os.Getenv("AT_ENV"))))
	if env == Development || env == Testing {
		return env
	}
	return Production
}

// applyEnvironment points storage at the right place for env.
// Production keeps whatever the configuration says.
func applyEnvironment(cfg *config.Config, env Environment) {
	switch env {
	case Development:
		cfg.Database.Backend = config.BackendSQLite
		cfg.Database.Dir = "."
		cfg.Database.Filename = developmentDBFilename
	case Testing:
		cfg.Database.Backend = config.BackendMemory
	}
}

// newAPIFactory opens the configured store and wires the services over it.
// The cleanup closes the store.
func newAPIFactory() cli.APIFactory {
	return func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error) {
		repo, err := config.CreateRepository(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open %s storage: %w", cfg.Database.Backend, err)
		}

		container := services.NewServiceContainer(ctx, repo, cfg, logger, time.Now)
		prefs := preferences.NewService(repo, logger)

		logger.Debug("storage opened", zap.String("backend", cfg.Database.Backend))
		return api.New(container, prefs, logger), repo.Close, nil
	}
}
