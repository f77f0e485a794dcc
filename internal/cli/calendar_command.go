package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/domain"
	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/services"
)

var weekdayHeader = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// CalendarCommand renders a month grid with assignments on their due days
type CalendarCommand struct {
	app    *App
	month  string
	offset int
	format string
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{app: app, format: FormatText}
}

// BindFlags registers the calendar flags
func (c *CalendarCommand) BindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.month, "month", "m", "", "Month to show as YYYY-MM (default current month)")
	flags.IntVarP(&c.offset, "offset", "o", 0, "Months to move from the shown month, e.g. -1 or 2")
	flags.StringVarP(&c.format, "format", "f", FormatText, "Output format: text, json or yaml")
}

// Execute runs the calendar command
func (c *CalendarCommand) Execute(ctx context.Context, args []string) error {
	format, err := parseFormat(c.format, FormatText, FormatJSON, FormatYAML)
	if err != nil {
		return err
	}

	if c.month != "" {
		start, err := time.Parse("2006-01", c.month)
		if err != nil {
			return errors.NewInvalidInputError("month", c.month, "expected YYYY-MM")
		}
		c.app.api.ShowMonth(start.Year(), start.Month())
	}
	if c.offset != 0 {
		if _, err := c.app.api.Dispatch(ctx, domain.NavigateMonthAction{Delta: c.offset}); err != nil {
			return err
		}
	}

	grid := c.app.api.Calendar(ctx)
	if format != FormatText {
		return writeStructured(c.app.out, format, grid)
	}
	c.render(grid)
	return nil
}

// render prints the grid. A day is suffixed with * when it is today, + when
// assignments are due on it and # when both hold.
func (c *CalendarCommand) render(grid *services.CalendarGrid) {
	c.app.println(grid.Title())
	c.app.println(" " + strings.Join(weekdayHeader, "  "))

	for _, week := range grid.Weeks() {
		var row strings.Builder
		for _, cell := range week {
			if !cell.InMonth {
				row.WriteString("    ")
				continue
			}
			row.WriteString(padDay(cell.Day) + dayMarker(cell))
		}
		c.app.println(strings.TrimRight(row.String(), " "))
	}

	ts := c.app.api.Time()
	for _, day := range grid.Days {
		for _, a := range day.Assignments {
			c.app.printf("%s  %s %s: %s\n", ts.FormatDisplayDate(day.Date), statusMarker(a, ts), ts.FormatSubjectLabel(a.Subject), a.Name)
		}
	}
}

func dayMarker(cell services.DayCell) string {
	due := len(cell.Assignments) > 0
	switch {
	case cell.IsToday && due:
		return "#"
	case cell.IsToday:
		return "*"
	case due:
		return "+"
	default:
		return " "
	}
}

func padDay(day int) string {
	return fmt.Sprintf("%3d", day)
}
