package cli

import (
	"context"
	"sort"

	"github.com/spf13/pflag"
)

// StatsCommand prints aggregate statistics
type StatsCommand struct {
	app    *App
	format string
}

// NewStatsCommand creates a new stats command handler
func NewStatsCommand(app *App) *StatsCommand {
	return &StatsCommand{app: app, format: FormatText}
}

// BindFlags registers the stats flags
func (c *StatsCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.format, "format", "f", FormatText, "Output format: text, json or yaml")
}

// Execute runs the stats command
func (c *StatsCommand) Execute(ctx context.Context, args []string) error {
	format, err := parseFormat(c.format, FormatText, FormatJSON, FormatYAML)
	if err != nil {
		return err
	}

	stats := c.app.api.Statistics(ctx)
	if format != FormatText {
		return writeStructured(c.app.out, format, stats)
	}

	c.app.printf("Total:         %d\n", stats.Total)
	c.app.printf("Completed:     %d (%d%%)\n", stats.Completed, stats.CompletionRate())
	c.app.printf("Pending:       %d\n", stats.Pending)
	c.app.printf("Overdue:       %d\n", stats.Overdue)
	if stats.AverageGrade != nil {
		c.app.printf("Average grade: %d\n", *stats.AverageGrade)
	} else {
		c.app.printf("Average grade: n/a\n")
	}

	if len(stats.BySubject) > 0 {
		subjects := make([]string, 0, len(stats.BySubject))
		for subject := range stats.BySubject {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)

		c.app.println("By subject:")
		ts := c.app.api.Time()
		for _, subject := range subjects {
			c.app.printf("  %-12s %d\n", ts.FormatSubjectLabel(subject), stats.BySubject[subject])
		}
	}
	return nil
}
