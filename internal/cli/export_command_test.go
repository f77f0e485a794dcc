package cli

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/repository"
)

func TestExportCommand_CSV(t *testing.T) {
	env := newTestEnv(t, "")
	essay := env.seed(t, domain.AssignmentInput{Name: "Essay, final", DueDate: "2024-02-20", Subject: "english", Priority: "high", Grade: gradePtr(91)})
	lab := env.seed(t, domain.AssignmentInput{Name: "Lab", DueDate: "2024-02-22", Subject: "chemistry", Description: "bring goggles"})

	require.NoError(t, env.run("export", "--format", "csv"))

	rows, err := csv.NewReader(strings.NewReader(env.out.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])

	assert.Equal(t, []string{essay.ID, "Essay, final", "2024-02-20", "english", "high", "", "91", "false"}, rows[1][:8])
	assert.NotEmpty(t, rows[1][8])
	assert.Equal(t, []string{lab.ID, "Lab", "2024-02-22", "chemistry", "medium", "bring goggles", "", "false"}, rows[2][:8])
}

func TestExportCommand_DefaultJSON(t *testing.T) {
	env := newTestEnv(t, "")
	essay := env.seed(t, domain.AssignmentInput{Name: "Essay", DueDate: "2024-02-20", Subject: "english"})

	require.NoError(t, env.run("export"))

	var records []repository.Record
	require.NoError(t, json.Unmarshal(env.out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, essay.ID, records[0].ID)
	assert.Nil(t, records[0].Grade)
}

func TestExportCommand_YAML(t *testing.T) {
	env := newTestEnv(t, "")
	env.seed(t, domain.AssignmentInput{Name: "Essay", DueDate: "2024-02-20", Subject: "english", Grade: gradePtr(70)})
	env.app.config.Commands.ExportDefaultFormat = "yaml"

	require.NoError(t, env.run("export"))

	var records []repository.Record
	require.NoError(t, yaml.Unmarshal(env.out.Bytes(), &records))
	require.Len(t, records, 1)
	require.NotNil(t, records[0].Grade)
	assert.Equal(t, 70, *records[0].Grade)
}

func TestExportCommand_Empty(t *testing.T) {
	env := newTestEnv(t, "")

	require.NoError(t, env.run("export", "-f", "csv"))
	assert.Equal(t, strings.Join(csvHeader, ",")+"\n", env.out.String())
}

func TestExportCommand_TableIsNotAnExportFormat(t *testing.T) {
	env := newTestEnv(t, "")

	err := env.run("export", "--format", "table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of csv, json, yaml")
}
