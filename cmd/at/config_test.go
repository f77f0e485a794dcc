package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"assignment-tracker/internal/config"
	"assignment-tracker/internal/domain"
)

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{value: "development", want: Development},
		{value: "testing", want: Testing},
		{value: "production", want: Production},
		{value: "", want: Production},
		{value: "staging", want: Production},
		{value: " Testing ", want: Testing},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("AT_ENV", tt.value)
			assert.Equal(t, tt.want, getEnvironment())
		})
	}
}

func TestApplyEnvironment(t *testing.T) {
	cfg := config.NewConfig()
	applyEnvironment(cfg, Development)
	assert.Equal(t, config.BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "at.db", cfg.GetDatabasePath())

	cfg = config.NewConfig()
	applyEnvironment(cfg, Testing)
	assert.Equal(t, config.BackendMemory, cfg.Database.Backend)

	cfg = config.NewConfig()
	cfg.Database.Backend = config.BackendRedis
	applyEnvironment(cfg, Production)
	assert.Equal(t, config.BackendRedis, cfg.Database.Backend)
}

func TestNewAPIFactory_Memory(t *testing.T) {
	cfg := config.NewConfig()
	applyEnvironment(cfg, Testing)

	apiInstance, cleanup, err := newAPIFactory()(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	result, err := apiInstance.Dispatch(context.Background(), domain.AddAction{Input: domain.AssignmentInput{
		Name:     "Essay",
		DueDate:  "2030-01-15",
		Subject:  "english",
		Priority: "high",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Essay", result.Assignment.Name)
}

func TestNewAPIFactory_SQLite(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = t.TempDir()

	apiInstance, cleanup, err := newAPIFactory()(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, cleanup()) }()

	assert.Equal(t, "light", string(apiInstance.Theme(context.Background())))
}
