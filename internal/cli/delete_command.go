package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	yes bool
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// BindFlags registers the delete flags
func (c *DeleteCommand) BindFlags(flags *pflag.FlagSet) {
	flags.BoolVarP(&c.yes, "yes", "y", false, "Delete without asking for confirmation")
}

// Execute runs the delete command. The single argument is an id or id prefix.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", args, "expected exactly one assignment id")
	}

	target, err := c.app.api.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	if !c.yes && !c.app.confirm(fmt.Sprintf("Delete %q?", target.Name)) {
		c.app.println("Delete cancelled.")
		return nil
	}

	result, err := c.app.api.Dispatch(ctx, domain.DeleteAction{ID: target.ID})
	if err != nil {
		return err
	}

	if result.Changed {
		c.app.printf("Deleted assignment: %s\n", target.Name)
	} else {
		c.app.println("Nothing to delete.")
	}
	return nil
}
