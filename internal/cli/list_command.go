package cli

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	app     *App
	subject string
	status  string
	format  string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// BindFlags registers the list flags
func (c *ListCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.subject, "subject", "s", "", "Only show this subject")
	flags.StringVar(&c.status, "status", "", "Only show all, pending, completed or overdue")
	flags.StringVarP(&c.format, "format", "f", "", "Output format: table, json or yaml (default from AT_LIST_DEFAULT_FORMAT)")
}

// Execute runs the list command. Arguments are joined into a text search.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	format := c.format
	if format == "" {
		format = c.app.config.Commands.ListDefaultFormat
	}
	format, err := parseFormat(format, FormatTable, FormatJSON, FormatYAML)
	if err != nil {
		return err
	}

	status, err := services.ParseStatusFilter(c.status)
	if err != nil {
		return err
	}

	assignments, err := c.app.api.ListAssignments(ctx, services.Filter{
		Subject: c.subject,
		Text:    strings.Join(args, " "),
		Status:  status,
	})
	if err != nil {
		return err
	}

	if format != FormatTable {
		return writeStructured(c.app.out, format, toRecords(assignments))
	}
	printAssignments(c.app.out, assignments, c.app.api.Time())
	return nil
}
