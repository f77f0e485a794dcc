package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"assignment-tracker/internal/api"
	"assignment-tracker/internal/config"
	"assignment-tracker/internal/preferences"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/services"
)

func memoryFactory(captured **config.Config, closed *bool) APIFactory {
	return func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error) {
		*captured = cfg
		kv := repository.NewMemoryStore()
		clock := func() time.Time { return testNow }
		container := services.NewServiceContainer(ctx, kv, cfg, logger, clock)
		return api.New(container, preferences.NewService(kv, logger), logger), func() error {
			*closed = true
			return nil
		}, nil
	}
}

func TestRootCommand_BuildsAPIWithFlagOverrides(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(nil, config.NewConfig(), WithOutput(out))

	var captured *config.Config
	closed := false
	root := NewRootCommand(app, memoryFactory(&captured, &closed))
	root.SetArgs([]string{
		"--backend", "memory",
		"--date-format", "2006-01-02",
		"--name-max-length", "40",
		"--app-timeout", "5s",
		"add", "Essay", "--due", "2024-02-20", "--subject", "english",
	})

	require.NoError(t, root.Execute())

	require.NotNil(t, captured)
	assert.Equal(t, config.BackendMemory, captured.Database.Backend)
	assert.Equal(t, "2006-01-02", captured.Display.DateFormat)
	assert.Equal(t, 40, captured.Validation.NameMaxLength)
	assert.Equal(t, 5*time.Second, captured.Application.Timeout)
	assert.Regexp(t, `\(due 2024-02-20\)\n$`, out.String())
	assert.True(t, closed, "storage should be released after the command")
}

func TestRootCommand_UnsetFlagsKeepConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Display.DateFormat = "02/01/2006"
	app := NewApp(nil, cfg, WithOutput(&bytes.Buffer{}))

	var captured *config.Config
	closed := false
	root := NewRootCommand(app, memoryFactory(&captured, &closed))
	root.SetArgs([]string{"--backend", "memory", "theme"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "02/01/2006", captured.Display.DateFormat)
}

func TestRootCommand_InvalidOverride(t *testing.T) {
	app := NewApp(nil, config.NewConfig(), WithOutput(&bytes.Buffer{}))

	factoryCalled := false
	root := NewRootCommand(app, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error) {
		factoryCalled = true
		return nil, nil, nil
	})
	root.SetArgs([]string{"--backend", "postgres", "list"})

	err := root.Execute()
	require.Error(t, err)
	var cfgErr *config.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.False(t, factoryCalled)
}

func TestRootCommand_FactoryError(t *testing.T) {
	app := NewApp(nil, config.NewConfig(), WithOutput(&bytes.Buffer{}))

	root := NewRootCommand(app, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error) {
		return nil, nil, errors.New("redis unreachable")
	})
	root.SetArgs([]string{"list"})

	assert.EqualError(t, root.Execute(), "redis unreachable")
}

func TestRootCommand_NoAPI(t *testing.T) {
	app := NewApp(nil, config.NewConfig(), WithOutput(&bytes.Buffer{}))

	root := NewRootCommand(app, nil)
	root.SetArgs([]string{"list"})

	assert.EqualError(t, root.Execute(), "no API configured")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(NewApp(nil, nil), nil)

	for _, doc := range commandDocs {
		sub, _, err := root.Command().Find([]string{doc.name})
		require.NoError(t, err)
		assert.Equal(t, doc.name, sub.Name())
		assert.NotEmpty(t, sub.Short)
	}

	add, _, err := root.Command().Find([]string{"add"})
	require.NoError(t, err)
	assert.NotNil(t, add.Flags().Lookup("due"))
	assert.NotNil(t, add.Flags().Lookup("subject"))
	assert.NotNil(t, add.Flags().Lookup("priority"))
	assert.NotNil(t, root.Command().PersistentFlags().Lookup("backend"))
}

func TestRootCommand_HelpDoesNotNeedAPI(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(nil, config.NewConfig(), WithOutput(out))

	root := NewRootCommand(app, nil)
	root.SetArgs([]string{"--help"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Assignment Tracker (at)")
}

func TestCommandContext(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Application.Timeout = time.Minute
	root := NewRootCommand(NewApp(nil, cfg), nil)

	ctx, cancel := root.commandContext(context.Background(), 2)
	deadline, ok := ctx.Deadline()
	cancel()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(2*time.Minute), deadline, 5*time.Second)

	ctx, cancel = root.commandContext(context.Background(), 0)
	_, ok = ctx.Deadline()
	cancel()
	assert.False(t, ok)
}

func TestRootCommand_CompletionDoesNotOpenStorage(t *testing.T) {
	out := &bytes.Buffer{}
	app := NewApp(nil, config.NewConfig(), WithOutput(out))

	factoryCalled := false
	root := NewRootCommand(app, func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error) {
		factoryCalled = true
		return nil, nil, errors.New("should not be called")
	})
	root.SetArgs([]string{"completion", "bash"})

	require.NoError(t, root.Execute())
	assert.False(t, factoryCalled)
	assert.Contains(t, out.String(), "bash completion")
}
