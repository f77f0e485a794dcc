package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assignment-tracker/internal/domain"
)

func TestCompleteCommand_Toggles(t *testing.T) {
	env := newTestEnv(t, "")
	essay := env.seed(t, domain.AssignmentInput{Name: "Essay", DueDate: "2024-02-20", Subject: "english"})

	require.NoError(t, env.run("complete", essay.ShortID()))
	assert.Equal(t, "Marked \"Essay\" as completed\n", env.out.String())

	got, err := env.api.Resolve(context.Background(), essay.ID)
	require.NoError(t, err)
	assert.True(t, got.Completed)

	env.out.Reset()
	require.NoError(t, env.run("complete", essay.ID))
	assert.Equal(t, "Marked \"Essay\" as not completed\n", env.out.String())

	got, err = env.api.Resolve(context.Background(), essay.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestCompleteCommand_UnknownID(t *testing.T) {
	env := newTestEnv(t, "")
	env.seed(t, domain.AssignmentInput{Name: "Essay", DueDate: "2024-02-20", Subject: "english"})

	err := env.run("complete", "zzzzzzzz")
	require.Error(t, err)
	assert.Equal(t, "assignment not found: zzzzzzzz", err.Error())
	assert.Empty(t, env.out.String())
}

func TestCompleteCommand_RequiresOneID(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run("complete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}
