package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds all configuration options for the assignment tracker
type Config struct {
	Database    DatabaseConfig
	Redis       RedisConfig
	Display     DisplayConfig
	Validation  ValidationConfig
	Timer       TimerConfig
	Application ApplicationConfig
	Commands    CommandsConfig
}

// DatabaseConfig holds storage-related configuration
type DatabaseConfig struct {
	Backend        string        `env:"AT_STORAGE_BACKEND"`
	Dir            string        `env:"AT_DB_DIR"`
	Filename       string        `env:"AT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"AT_DB_QUERY_TIMEOUT"`
	DirPermissions uint32        `env:"AT_DB_DIR_PERMISSIONS"`
}

// RedisConfig holds the Redis backend configuration
type RedisConfig struct {
	Addr     string `env:"AT_REDIS_ADDR"`
	Password string `env:"AT_REDIS_PASSWORD"`
	DB       int    `env:"AT_REDIS_DB"`
	Prefix   string `env:"AT_REDIS_PREFIX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"AT_DATE_DISPLAY_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	NameMaxLength int `env:"AT_VALIDATION_NAME_MAX"`
}

// TimerConfig holds countdown timer configuration
type TimerConfig struct {
	Duration time.Duration `env:"AT_TIMER_DURATION"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"AT_APP_TIMEOUT"`
	Verbose bool          `env:"AT_APP_VERBOSE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ListDefaultFormat   string `env:"AT_LIST_DEFAULT_FORMAT"`
	ExportDefaultFormat string `env:"AT_EXPORT_DEFAULT_FORMAT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".assignment-tracker")

	return &Config{
		Database: DatabaseConfig{
			Backend:        BackendSQLite,
			Dir:            defaultDBDir,
			Filename:       "assignments.db",
			QueryTimeout:   10 * time.Second,
			DirPermissions: 0755,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "assignment-tracker:",
		},
		Display: DisplayConfig{
			DateFormat: "Jan 2, 2006",
		},
		Validation: ValidationConfig{
			NameMaxLength: 255,
		},
		Timer: TimerConfig{
			Duration: 25 * time.Minute,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Commands: CommandsConfig{
			ListDefaultFormat:   "table",
			ExportDefaultFormat: "json",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the storage query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value is kept.
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if backend := os.Getenv("AT_STORAGE_BACKEND"); backend != "" {
		c.Database.Backend = backend
	}
	if dir := os.Getenv("AT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("AT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("AT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseOr(timeout, c.Database.QueryTimeout, time.ParseDuration)
	}
	if perms := os.Getenv("AT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseOr(perms, c.Database.DirPermissions, parseOctalMode)
	}

	// Redis configuration
	if addr := os.Getenv("AT_REDIS_ADDR"); addr != "" {
		c.Redis.Addr = addr
	}
	if password := os.Getenv("AT_REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if db := os.Getenv("AT_REDIS_DB"); db != "" {
		c.Redis.DB = ParseOr(db, c.Redis.DB, strconv.Atoi)
	}
	if prefix := os.Getenv("AT_REDIS_PREFIX"); prefix != "" {
		c.Redis.Prefix = prefix
	}

	// Display configuration
	if format := os.Getenv("AT_DATE_DISPLAY_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Validation configuration
	if maxLen := os.Getenv("AT_VALIDATION_NAME_MAX"); maxLen != "" {
		c.Validation.NameMaxLength = ParseOr(maxLen, c.Validation.NameMaxLength, strconv.Atoi)
	}

	// Timer configuration
	if duration := os.Getenv("AT_TIMER_DURATION"); duration != "" {
		c.Timer.Duration = ParseOr(duration, c.Timer.Duration, time.ParseDuration)
	}

	// Application configuration
	if timeout := os.Getenv("AT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseOr(timeout, c.Application.Timeout, time.ParseDuration)
	}
	if verbose := os.Getenv("AT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseOr(verbose, c.Application.Verbose, strconv.ParseBool)
	}

	// Commands configuration
	if format := os.Getenv("AT_LIST_DEFAULT_FORMAT"); format != "" {
		c.Commands.ListDefaultFormat = format
	}
	if format := os.Getenv("AT_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendSQLite:
		if c.Database.Dir == "" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return &ConfigError{Field: "redis.addr", Message: "redis address cannot be empty"}
		}
		if c.Redis.DB < 0 {
			return &ConfigError{Field: "redis.db", Message: "redis database index cannot be negative"}
		}
	case BackendMemory:
	default:
		return &ConfigError{Field: "database.backend", Message: "unknown storage backend " + strconv.Quote(c.Database.Backend)}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	if c.Validation.NameMaxLength < 1 {
		return &ConfigError{Field: "validation.name_max_length", Message: "name maximum length must be at least 1"}
	}

	if c.Timer.Duration < time.Second {
		return &ConfigError{Field: "timer.duration", Message: "timer duration must be at least one second"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
