package config

import (
	"errors"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	envFiles []string
}

// NewLoader creates a new configuration loader. Optional env files are
// read before the process environment; missing files are skipped.
func NewLoader(envFiles ...string) *Loader {
	return &Loader{
		config:   NewConfig(),
		envFiles: envFiles,
	}
}

// Load layers defaults, .env files and the AT_* environment, in that
// order, and validates the result. Flags are layered later by the CLI.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadEnvFiles never overrides variables already present in the environment.
func (l *Loader) loadEnvFiles() error {
	for _, file := range l.envFiles {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return &ConfigError{Field: "env_file", Message: err.Error()}
		}
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Backend      *string
	DBDir        *string
	DBFilename   *string
	QueryTimeout *time.Duration

	RedisAddr *string

	DateFormat *string

	NameMaxLength *int

	TimerDuration *time.Duration

	Timeout *time.Duration
	Verbose *bool

	ListDefaultFormat   *string
	ExportDefaultFormat *string
}

// Apply applies command line overrides to the configuration
func (o *ConfigOverrides) Apply(config *Config) {
	if o.Backend != nil {
		config.Database.Backend = *o.Backend
	}
	if o.DBDir != nil {
		config.Database.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Database.Filename = *o.DBFilename
	}
	if o.QueryTimeout != nil {
		config.Database.QueryTimeout = *o.QueryTimeout
	}
	if o.RedisAddr != nil {
		config.Redis.Addr = *o.RedisAddr
	}
	if o.DateFormat != nil {
		config.Display.DateFormat = *o.DateFormat
	}
	if o.NameMaxLength != nil {
		config.Validation.NameMaxLength = *o.NameMaxLength
	}
	if o.TimerDuration != nil {
		config.Timer.Duration = *o.TimerDuration
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
	if o.ListDefaultFormat != nil {
		config.Commands.ListDefaultFormat = *o.ListDefaultFormat
	}
	if o.ExportDefaultFormat != nil {
		config.Commands.ExportDefaultFormat = *o.ExportDefaultFormat
	}
}

// ParseOr parses s with parse and returns fallback when parsing fails.
func ParseOr[T any](s string, fallback T, parse func(string) (T, error)) T {
	if v, err := parse(s); err == nil {
		return v
	}
	return fallback
}

// parseOctalMode reads a permission string such as "0755".
func parseOctalMode(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 8, 32)
	return uint32(u), err
}
