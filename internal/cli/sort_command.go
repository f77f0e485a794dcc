package cli

import (
	"context"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/services"
)

// SortCommand reorders the saved collection
type SortCommand struct {
	app *App
}

// NewSortCommand creates a new sort command handler
func NewSortCommand(app *App) *SortCommand {
	return &SortCommand{app: app}
}

// Execute runs the sort command. The optional argument is date (default) or priority.
func (c *SortCommand) Execute(ctx context.Context, args []string) error {
	strategy := domain.SortByDate
	if len(args) > 0 {
		parsed, err := services.ParseSortStrategy(args[0])
		if err != nil {
			return err
		}
		strategy = parsed
	}

	result, err := c.app.api.Dispatch(ctx, domain.SortAction{Strategy: strategy})
	if err != nil {
		return err
	}

	c.app.printf("Sorted %d assignments by %s\n", len(result.Assignments), strategy)
	printAssignments(c.app.out, result.Assignments, c.app.api.Time())
	return nil
}
