package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/repository"
	"assignment-tracker/internal/services"
)

var csvHeader = []string{"id", "name", "dueDate", "subject", "priority", "description", "grade", "completed", "createdAt"}

// ExportCommand writes the whole collection to stdout
type ExportCommand struct {
	app    *App
	format string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// BindFlags registers the export flags
func (c *ExportCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "f", "", "Export format: csv, json or yaml (default from AT_EXPORT_DEFAULT_FORMAT)")
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	format := c.format
	if format == "" {
		format = c.app.config.Commands.ExportDefaultFormat
	}
	format, err := parseFormat(format, FormatCSV, FormatJSON, FormatYAML)
	if err != nil {
		return err
	}

	assignments, err := c.app.api.ListAssignments(ctx, services.Filter{})
	if err != nil {
		return err
	}
	records := toRecords(assignments)

	if format == FormatCSV {
		return c.writeCSV(records)
	}
	return writeStructured(c.app.out, format, records)
}

// writeCSV outputs one row per assignment; an absent grade is an empty cell
func (c *ExportCommand) writeCSV(records []repository.Record) error {
	writer := csv.NewWriter(c.app.out)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		grade := ""
		if r.Grade != nil {
			grade = strconv.Itoa(*r.Grade)
		}
		row := []string{
			r.ID,
			r.Name,
			r.DueDate,
			r.Subject,
			r.Priority,
			r.Description,
			grade,
			strconv.FormatBool(r.Completed),
			r.CreatedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
