package cli

import (
	"context"
	"maps"
	"slices"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/errors"
)

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}

// FlagBinder is implemented by commands that take flags
type FlagBinder interface {
	BindFlags(flags *pflag.FlagSet)
}

var builtinCommands = map[string]func(*App) Command{
	"add":      func(a *App) Command { return NewAddCommand(a) },
	"list":     func(a *App) Command { return NewListCommand(a) },
	"complete": func(a *App) Command { return NewCompleteCommand(a) },
	"delete":   func(a *App) Command { return NewDeleteCommand(a) },
	"sort":     func(a *App) Command { return NewSortCommand(a) },
	"stats":    func(a *App) Command { return NewStatsCommand(a) },
	"calendar": func(a *App) Command { return NewCalendarCommand(a) },
	"export":   func(a *App) Command { return NewExportCommand(a) },
	"theme":    func(a *App) Command { return NewThemeCommand(a) },
	"timer":    func(a *App) Command { return NewTimerCommand(a) },
}

// CommandRegistry maps command names to their handlers.
type CommandRegistry struct {
	commands map[string]Command
}

// NewCommandRegistry builds every built-in command against app.
func NewCommandRegistry(app *App) *CommandRegistry {
	r := &CommandRegistry{commands: make(map[string]Command, len(builtinCommands))}
	for name, build := range builtinCommands {
		r.Register(name, build(app))
	}
	return r
}

// Register adds or replaces the command stored under name.
func (r *CommandRegistry) Register(name string, command Command) {
	r.commands[name] = command
}

func (r *CommandRegistry) Get(name string) (Command, bool) {
	command, ok := r.commands[name]
	return command, ok
}

// Names lists the registered commands alphabetically.
func (r *CommandRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.commands))
}

func (r *CommandRegistry) Execute(ctx context.Context, commandName string, args []string) error {
	command, ok := r.Get(commandName)
	if !ok {
		return errors.NewInvalidInputError("command", commandName, "unknown command")
	}
	return command.Execute(ctx, args)
}
