// Package timer implements the focus countdown. It shares no state with the
// assignment store.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultDuration is the length of one focus session.
	DefaultDuration = 25 * time.Minute
	// DefaultInterval is the wall-clock time between ticks.
	DefaultInterval = time.Second
	// Step is how much each tick removes from the remaining time.
	Step = time.Second
)

// Countdown is a pausable timer that counts down in whole seconds. When it
// reaches zero it pauses, calls the expire hook and resets to its full
// duration. It is safe for concurrent use.
type Countdown struct {
	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	interval  time.Duration
	running   bool
	cancel    context.CancelFunc
	session   int
	onTick    func(remaining time.Duration)
	onExpire  func()
}

// Option configures a Countdown
type Option func(*Countdown)

// WithDuration sets the full session length. Values under one step are ignored.
func WithDuration(d time.Duration) Option {
	return func(c *Countdown) {
		if d >= Step {
			c.duration = d.Truncate(Step)
		}
	}
}

// WithInterval sets the wall-clock tick interval
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// OnTick registers a hook called after every tick with the remaining time
func OnTick(fn func(remaining time.Duration)) Option {
	return func(c *Countdown) { c.onTick = fn }
}

// OnExpire registers a hook called when the countdown reaches zero
func OnExpire(fn func()) Option {
	return func(c *Countdown) { c.onExpire = fn }
}

// New creates a paused countdown at its full duration
func New(opts ...Option) *Countdown {
	c := &Countdown{
		duration: DefaultDuration,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.remaining = c.duration
	return c
}

// Start begins ticking in a background goroutine. It is a no-op while
// running. Cancelling ctx pauses the countdown.
func (c *Countdown) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return
	}
	tickCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.session++
	go c.loop(tickCtx, c.session)
}

func (c *Countdown) loop(ctx context.Context, session int) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			if c.session == session {
				c.stopLocked()
			}
			c.mu.Unlock()
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			c.Tick()
		}
	}
}

// Pause stops ticking and keeps the remaining time.
func (c *Countdown) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// Reset pauses and restores the full duration.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.remaining = c.duration
}

func (c *Countdown) stopLocked() {
	c.running = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Tick removes one step from the remaining time. On reaching zero the
// countdown pauses, resets to the full duration and then calls the expire hook.
func (c *Countdown) Tick() {
	c.mu.Lock()
	c.remaining -= Step
	remaining := c.remaining
	expired := remaining <= 0
	if expired {
		c.stopLocked()
		c.remaining = c.duration
	}
	onTick, onExpire := c.onTick, c.onExpire
	c.mu.Unlock()

	if onTick != nil {
		onTick(max(remaining, 0))
	}
	if expired && onExpire != nil {
		onExpire()
	}
}

// Remaining returns the time left in the current session
func (c *Countdown) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Duration returns the full session length
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Running reports whether the countdown is ticking
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Format renders d as MM:SS. Minutes are not capped at 59; negative
// durations render as 00:00.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
