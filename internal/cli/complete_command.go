package cli

import (
	"context"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
)

// CompleteCommand toggles the completed flag of one assignment
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute runs the complete command. The single argument is an id or id prefix.
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "expected exactly one assignment id")
	}

	target, err := c.app.api.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	result, err := c.app.api.Dispatch(ctx, domain.ToggleAction{ID: target.ID})
	if err != nil {
		return err
	}

	if result.Assignment.Completed {
		c.app.printf("Marked %q as completed\n", result.Assignment.Name)
	} else {
		c.app.printf("Marked %q as not completed\n", result.Assignment.Name)
	}
	return nil
}
