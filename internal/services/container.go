package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"assignment-tracker/internal/config"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/validation"
)

// NewServiceContainer wires the services over kv using cfg.
func NewServiceContainer(ctx context.Context, kv repository.KeyValueStore, cfg *config.Config, logger *zap.Logger, clock Clock) *ServiceContainer {
	if clock == nil {
		clock = time.Now
	}
	store := NewAssignmentStore(ctx, kv,
		WithLogger(logger),
		WithClock(clock),
		WithValidator(validation.NewAssignmentValidatorWithConfig(cfg)),
	)
	return &ServiceContainer{
		TimeService: NewTimeService(cfg.Display.DateFormat, clock),
		Store:       store,
		Calendar:    NewCalendarService(clock),
	}
}
