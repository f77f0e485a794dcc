package cli

import (
	"context"
	"strings"

	"assignment-tracker/internal/preferences"
)

// ThemeCommand shows or changes the saved theme
type ThemeCommand struct {
	app *App
}

// NewThemeCommand creates a new theme command handler
func NewThemeCommand(app *App) *ThemeCommand {
	return &ThemeCommand{app: app}
}

// Execute runs the theme command. With no argument it prints the current
// theme; "toggle" flips it; "light" or "dark" sets it.
func (c *ThemeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.app.printf("Current theme: %s\n", c.app.api.Theme(ctx))
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(args[0]), "toggle") {
		theme, err := c.app.api.ToggleTheme(ctx)
		if err != nil {
			return err
		}
		c.app.printf("Theme set to %s\n", theme)
		return nil
	}

	theme, err := preferences.ParseTheme(args[0])
	if err != nil {
		return err
	}
	if err := c.app.api.SetTheme(ctx, theme); err != nil {
		return err
	}
	c.app.printf("Theme set to %s\n", theme)
	return nil
}
