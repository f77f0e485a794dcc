package cli

import (
	"context"
	"time"

	"github.com/spf13/pflag"

	"assignment-tracker/internal/timer"
)

// TimerCommand runs the focus countdown in the foreground
type TimerCommand struct {
	app      *App
	duration time.Duration
	interval time.Duration
}

// NewTimerCommand creates a new timer command handler
func NewTimerCommand(app *App) *TimerCommand {
	return &TimerCommand{app: app, interval: timer.DefaultInterval}
}

// BindFlags registers the timer flags
func (c *TimerCommand) BindFlags(flags *pflag.FlagSet) {
	flags.DurationVar(&c.duration, "duration", 0, "Session length (default from AT_TIMER_DURATION)")
}

// Execute counts down until the session ends or ctx is cancelled.
// Progress is redrawn in place on one line.
func (c *TimerCommand) Execute(ctx context.Context, args []string) error {
	duration := c.duration
	if duration <= 0 {
		duration = c.app.config.Timer.Duration
	}

	done := make(chan struct{})
	countdown := timer.New(
		timer.WithDuration(duration),
		timer.WithInterval(c.interval),
		timer.OnTick(func(remaining time.Duration) {
			c.app.printf("\r%s", timer.Format(remaining))
		}),
		timer.OnExpire(func() { close(done) }),
	)

	c.app.printf("Focus for %s\n%s", timer.Format(countdown.Duration()), timer.Format(countdown.Remaining()))
	countdown.Start(ctx)

	select {
	case <-done:
		c.app.println("\nTime's up!")
		return nil
	case <-ctx.Done():
		remaining := countdown.Remaining()
		countdown.Pause()
		c.app.printf("\nTimer stopped with %s left\n", timer.Format(remaining))
		return nil
	}
}
