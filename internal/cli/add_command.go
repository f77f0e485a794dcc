package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	dueDate     string
	subject     string
	priority    string
	description string
	grade       string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, priority: string(domain.PriorityMedium)}
}

// BindFlags registers the add flags
func (c *AddCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.dueDate, "due", "d", "", "Due date as YYYY-MM-DD (required)")
	flags.StringVarP(&c.subject, "subject", "s", "", "Subject, e.g. math (required)")
	flags.StringVarP(&c.priority, "priority", "p", string(domain.PriorityMedium), "Priority: high, medium or low")
	flags.StringVar(&c.description, "description", "", "Optional notes")
	flags.StringVarP(&c.grade, "grade", "g", "", "Optional grade from 0 to 100")
}

// Execute runs the add command. All arguments form the assignment name.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	input := domain.AssignmentInput{
		Name:        strings.Join(args, " "),
		DueDate:     c.dueDate,
		Subject:     c.subject,
		Priority:    c.priority,
		Description: c.description,
	}

	if strings.TrimSpace(c.grade) != "" {
		grade, err := strconv.Atoi(strings.TrimSpace(c.grade))
		if err != nil {
			return errors.NewInvalidInputError("grade", c.grade, "must be a whole number")
		}
		input.Grade = &grade
	}

	result, err := c.app.api.Dispatch(ctx, domain.AddAction{Input: input})
	if err != nil {
		return err
	}

	a := result.Assignment
	c.app.printf("Added assignment %s: %s (due %s)\n", a.ShortID(), a.Name, c.app.api.Time().FormatDisplayDate(a.DueDate))
	return nil
}
