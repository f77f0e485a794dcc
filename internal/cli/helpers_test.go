package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"assignment-tracker/internal/api"
	"assignment-tracker/internal/config"
	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/preferences"
	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/services"
)

// testNow is Thursday 15 February 2024, mid-afternoon
var testNow = time.Date(2024, time.February, 15, 14, 30, 0, 0, time.Local)

type testEnv struct {
	app    *App
	api    api.API
	kv     *repository.MemoryStore
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// newTestEnv builds an App over an in-memory store with the clock fixed at
// testNow. input feeds confirmation prompts.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	cfg := config.NewConfig()
	kv := repository.NewMemoryStore()
	clock := func() time.Time { return testNow }

	container := services.NewServiceContainer(context.Background(), kv, cfg, zap.NewNop(), clock)
	apiInstance := api.New(container, preferences.NewService(kv, nil), nil)

	env := &testEnv{
		api:    apiInstance,
		kv:     kv,
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	env.app = NewApp(apiInstance, cfg,
		WithOutput(env.out),
		WithErrorOutput(env.errOut),
		WithInput(strings.NewReader(input)),
	)
	return env
}

// run executes args through a fresh root command, as the binary would
func (e *testEnv) run(args ...string) error {
	root := NewRootCommand(e.app, nil)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

// seed adds an assignment directly through the API
func (e *testEnv) seed(t *testing.T, input domain.AssignmentInput) domain.Assignment {
	t.Helper()

	if input.Priority == "" {
		input.Priority = string(domain.PriorityMedium)
	}
	result, err := e.api.Dispatch(context.Background(), domain.AddAction{Input: input})
	require.NoError(t, err)
	require.NotNil(t, result.Assignment)
	return *result.Assignment
}

func gradePtr(g int) *int {
	return &g
}
