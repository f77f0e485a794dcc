package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"assignment-tracker/internal/api"
	"assignment-tracker/internal/config"
)

// App represents the main CLI application
type App struct {
	api      api.API
	config   *config.Config
	registry *CommandRegistry
	logger   *zap.Logger
	out      io.Writer
	errOut   io.Writer
	in       *bufio.Reader
}

// AppOption configures an App
type AppOption func(*App)

// WithOutput redirects command output
func WithOutput(out io.Writer) AppOption {
	return func(a *App) { a.out = out }
}

// WithErrorOutput redirects warnings and prompts that are not command output
func WithErrorOutput(errOut io.Writer) AppOption {
	return func(a *App) { a.errOut = errOut }
}

// WithInput sets where confirmations are read from
func WithInput(in io.Reader) AppOption {
	return func(a *App) { a.in = bufio.NewReader(in) }
}

// WithLogger sets the application logger
func WithLogger(logger *zap.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewApp creates a new CLI application instance with dependency injection.
// apiInstance may be nil when the API is built later by the root command.
func NewApp(apiInstance api.API, cfg *config.Config, opts ...AppOption) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	app := &App{
		api:    apiInstance,
		config: cfg,
		logger: zap.NewNop(),
		out:    os.Stdout,
		errOut: os.Stderr,
		in:     bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...interface{}) {
	fmt.Fprintln(a.out, args...)
}

// confirm asks a yes/no question on errOut and reads the answer from in.
// Anything other than y or yes is a no.
func (a *App) confirm(question string) bool {
	fmt.Fprintf(a.errOut, "%s [y/N]: ", question)
	answer, err := a.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
