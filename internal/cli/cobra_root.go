package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"assignment-tracker/internal/api"
	"assignment-tracker/internal/config"
	"assignment-tracker/internal/logging"
)

// APIFactory builds the API after flag overrides have been applied to cfg.
// The returned cleanup releases the underlying storage.
type APIFactory func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.API, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	app     *App
	factory APIFactory
	cleanup func() error
}

// commandDoc describes how a registered command is exposed through cobra.
// timeoutFactor scales the application timeout; zero means no timeout.
type commandDoc struct {
	name          string
	use           string
	short         string
	long          string
	args          cobra.PositionalArgs
	timeoutFactor int
}

var commandDocs = []commandDoc{
	{
		name:  "add",
		use:   "add <name> --due YYYY-MM-DD --subject <subject> [--priority high|medium|low]",
		short: "Add an assignment",
		long: `Add a new assignment. The name, due date, subject and priority are required;
description and grade (0-100) are optional.

Examples:
  at add "Chapter 4 questions" --due 2024-03-01 --subject history
  at add Lab report -d 2024-03-05 -s chemistry -p high --grade 88`,
		args:          cobra.MinimumNArgs(1),
		timeoutFactor: 1,
	},
	{
		name:  "list",
		use:   "list [search text]",
		short: "List assignments",
		long: `List assignments in their saved order. Optional text narrows the list to
assignments whose name, subject or description contains it.

Markers: [x] completed, [!] overdue, [ ] pending.

Examples:
  at list
  at list --status overdue
  at list --subject math essay
  at list --format json`,
		timeoutFactor: 1,
	},
	{
		name:          "complete",
		use:           "complete <id>",
		short:         "Toggle an assignment between completed and pending",
		long:          "Toggle the completed flag of an assignment. The id may be the 8-character short id shown by list.",
		args:          cobra.ExactArgs(1),
		timeoutFactor: 1,
	},
	{
		name:  "delete",
		use:   "delete <id>",
		short: "Delete an assignment",
		long: `Delete an assignment. You will be asked to confirm unless --yes is given.
This operation cannot be undone.`,
		args:          cobra.ExactArgs(1),
		timeoutFactor: 2,
	},
	{
		name:  "sort",
		use:   "sort [date|priority]",
		short: "Sort the saved assignments",
		long: `Reorder the saved assignments.

  date      earliest due date first; unreadable dates last (default)
  priority  high, medium, low; ties by due date`,
		args:          cobra.MaximumNArgs(1),
		timeoutFactor: 1,
	},
	{
		name:          "stats",
		use:           "stats",
		short:         "Show assignment statistics",
		long:          "Show totals, completion rate, overdue count, average grade and a per-subject breakdown.",
		args:          cobra.NoArgs,
		timeoutFactor: 1,
	},
	{
		name:  "calendar",
		use:   "calendar",
		short: "Show a month calendar of due dates",
		long: `Show a month grid. Days marked + have assignments due, * marks today and # marks
assignments due today.

Examples:
  at calendar
  at calendar --offset 1
  at calendar --month 2024-02`,
		args:          cobra.NoArgs,
		timeoutFactor: 1,
	},
	{
		name:  "export",
		use:   "export",
		short: "Export all assignments",
		long: `Write every assignment to standard output as csv, json or yaml.

Example:
  at export --format csv > assignments.csv`,
		args:          cobra.NoArgs,
		timeoutFactor: 1,
	},
	{
		name:          "theme",
		use:           "theme [light|dark|toggle]",
		short:         "Show or change the colour theme preference",
		args:          cobra.MaximumNArgs(1),
		timeoutFactor: 1,
	},
	{
		name:  "timer",
		use:   "timer",
		short: "Run a focus countdown",
		long: `Count down a focus session (25 minutes by default). Press Ctrl+C to stop early.

Example:
  at timer --duration 50m`,
		args: cobra.NoArgs,
	},
}

// NewRootCommand creates the root cobra command with global flags.
// When app has no API yet, factory builds one before any command runs.
func NewRootCommand(app *App, factory APIFactory) *RootCommand {
	root := &RootCommand{
		app:     app,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "at",
		Short: "A command-line assignment tracker",
		Long: `Assignment Tracker (at) keeps a local list of homework assignments with due
dates, subjects, priorities and grades.

FEATURES:
  • Add, complete, delete and sort assignments
  • Month calendar of due dates and aggregate statistics
  • Export to csv, json or yaml
  • Focus countdown timer
  • Storage in SQLite (default), Redis or memory

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

  Storage Configuration:
    AT_STORAGE_BACKEND                     sqlite, redis or memory (default: sqlite)
    AT_DB_DIR                              Database directory (default: ~/.assignment-tracker)
    AT_DB_FILENAME                         Database filename (default: assignments.db)
    AT_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    AT_DB_DIR_PERMISSIONS                  Directory permissions in octal (default: 0755)
    AT_REDIS_ADDR                          Redis address (default: localhost:6379)
    AT_REDIS_DB                            Redis database index (default: 0)
    AT_REDIS_PREFIX                        Redis key prefix (default: assignment-tracker:)

  Display Configuration:
    AT_DATE_DISPLAY_FORMAT                 Due date layout (default: Jan 2, 2006)

  Validation Configuration:
    AT_VALIDATION_NAME_MAX                 Max assignment name length (default: 255)

  Timer Configuration:
    AT_TIMER_DURATION                      Focus session length (default: 25m)

  Application Configuration:
    AT_APP_TIMEOUT                         Application timeout (default: 60s)
    AT_APP_VERBOSE                         Enable verbose logging (default: false)
    AT_DEBUG                               Enable debug logging

  Command Configuration:
    AT_LIST_DEFAULT_FORMAT                 Default list format (default: table)
    AT_EXPORT_DEFAULT_FORMAT               Default export format (default: json)

GETTING HELP:
  at [command] --help                      # Get help for any specific command
  at completion bash                       # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyConfigFromFlags(); err != nil {
				return err
			}
			// help and completion never touch storage
			if _, ok := root.app.registry.Get(cmd.Name()); !ok {
				return nil
			}
			return root.ensureAPI(cmd.Context())
		},
	}
	root.cmd.SetOut(app.out)
	root.cmd.SetErr(app.errOut)

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// SetArgs overrides os.Args, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Execute runs the root command and releases storage afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx and releases storage afterwards
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

func (r *RootCommand) close() {
	if r.cleanup == nil {
		return
	}
	if err := r.cleanup(); err != nil {
		r.app.logger.Warn("failed to close storage", zap.Error(err))
	}
	r.cleanup = nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, redis or memory (overrides AT_STORAGE_BACKEND)")
	flags.String("db-dir", "", "Database directory (overrides AT_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides AT_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Storage query timeout (overrides AT_DB_QUERY_TIMEOUT)")
	flags.String("redis-addr", "", "Redis address (overrides AT_REDIS_ADDR)")

	// Display configuration
	flags.String("date-format", "", "Due date display layout (overrides AT_DATE_DISPLAY_FORMAT)")

	// Validation configuration
	flags.Int("name-max-length", 0, "Maximum assignment name length (overrides AT_VALIDATION_NAME_MAX)")

	// Timer configuration
	flags.Duration("timer-duration", 0, "Focus session length (overrides AT_TIMER_DURATION)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Application timeout (overrides AT_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose logging (overrides AT_APP_VERBOSE)")

	// Commands configuration
	flags.String("list-format", "", "Default list format (overrides AT_LIST_DEFAULT_FORMAT)")
	flags.String("export-format", "", "Default export format (overrides AT_EXPORT_DEFAULT_FORMAT)")
}

// addSubcommands adds all registered commands to the root command
func (r *RootCommand) addSubcommands() {
	for _, doc := range commandDocs {
		command, ok := r.app.registry.Get(doc.name)
		if !ok {
			continue
		}

		sub := &cobra.Command{
			Use:   doc.use,
			Short: doc.short,
			Long:  doc.long,
			Args:  doc.args,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext(cmd.Context(), doc.timeoutFactor)
				defer cancel()
				if err := r.app.registry.Execute(ctx, doc.name, args); err != nil {
					return NewErrorHandler(r.app.logger).HandleSimple(err)
				}
				return nil
			},
		}
		if binder, ok := command.(FlagBinder); ok {
			binder.BindFlags(sub.Flags())
		}
		r.cmd.AddCommand(sub)
	}
}

// commandContext bounds a command by the application timeout and stops it on
// interrupt. A zero factor leaves the command unbounded.
func (r *RootCommand) commandContext(parent context.Context, factor int) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	if factor == 0 {
		return ctx, stop
	}
	timeoutCtx, cancel := context.WithTimeout(ctx, r.getAppTimeout()*time.Duration(factor))
	return timeoutCtx, func() {
		cancel()
		stop()
	}
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.app.config != nil && r.app.config.Application.Timeout > 0 {
		return r.app.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// applyConfigFromFlags applies explicitly set global flags to the configuration
func (r *RootCommand) applyConfigFromFlags() error {
	if r.app.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	overrides := overridesFromFlags(r.cmd.PersistentFlags())
	overrides.Apply(r.app.config)
	if err := r.app.config.Validate(); err != nil {
		return err
	}

	if overrides.Verbose != nil && *overrides.Verbose {
		r.app.logger = logging.NewOrNop(true)
	}
	return nil
}

// ensureAPI builds the API through the factory unless one was injected
func (r *RootCommand) ensureAPI(ctx context.Context) error {
	if r.app.api != nil {
		return nil
	}
	if r.factory == nil {
		return fmt.Errorf("no API configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	apiInstance, cleanup, err := r.factory(ctx, r.app.config, r.app.logger)
	if err != nil {
		return err
	}
	r.app.api = apiInstance
	r.cleanup = cleanup
	return nil
}

// overridesFromFlags collects only the flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.Backend = stringFlag("backend")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.QueryTimeout = durationFlag("db-query-timeout")
	overrides.RedisAddr = stringFlag("redis-addr")
	overrides.DateFormat = stringFlag("date-format")
	overrides.TimerDuration = durationFlag("timer-duration")
	overrides.Timeout = durationFlag("app-timeout")
	overrides.ListDefaultFormat = stringFlag("list-format")
	overrides.ExportDefaultFormat = stringFlag("export-format")

	if flags.Changed("name-max-length") {
		v, _ := flags.GetInt("name-max-length")
		overrides.NameMaxLength = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}
