package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, BackendSQLite, cfg.Database.Backend)
	assert.Equal(t, "assignments.db", cfg.Database.Filename)
	assert.Equal(t, "Jan 2, 2006", cfg.Display.DateFormat)
	assert.Equal(t, 25*time.Minute, cfg.Timer.Duration)
	assert.Equal(t, 255, cfg.Validation.NameMaxLength)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AT_STORAGE_BACKEND", "memory")
	t.Setenv("AT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("AT_DATE_DISPLAY_FORMAT", "2006-01-02")
	t.Setenv("AT_VALIDATION_NAME_MAX", "40")
	t.Setenv("AT_TIMER_DURATION", "50m")
	t.Setenv("AT_APP_VERBOSE", "true")
	t.Setenv("AT_REDIS_DB", "2")
	t.Setenv("AT_DB_DIR_PERMISSIONS", "0700")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "2006-01-02", cfg.Display.DateFormat)
	assert.Equal(t, 40, cfg.Validation.NameMaxLength)
	assert.Equal(t, 50*time.Minute, cfg.Timer.Duration)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
}

func TestLoadFromEnvironment_InvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("AT_DB_QUERY_TIMEOUT", "soon")
	t.Setenv("AT_VALIDATION_NAME_MAX", "many")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 255, cfg.Validation.NameMaxLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown backend", func(c *Config) { c.Database.Backend = "mongo" }, "database.backend"},
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty redis addr", func(c *Config) { c.Database.Backend = BackendRedis; c.Redis.Addr = "" }, "redis.addr"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"zero name length", func(c *Config) { c.Validation.NameMaxLength = 0 }, "validation.name_max_length"},
		{"short timer", func(c *Config) { c.Timer.Duration = time.Millisecond }, "timer.duration"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestValidate_MemoryBackendIgnoresDir(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Backend = BackendMemory
	cfg.Database.Dir = ""

	assert.NoError(t, cfg.Validate())
}

func TestLoader_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AT_VALIDATION_NAME_MAX=12\n"), 0600))
	t.Setenv("AT_VALIDATION_NAME_MAX", "")
	os.Unsetenv("AT_VALIDATION_NAME_MAX")
	t.Cleanup(func() { os.Unsetenv("AT_VALIDATION_NAME_MAX") })

	cfg, err := NewLoader(envFile, filepath.Join(t.TempDir(), "missing.env")).Load()
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Validation.NameMaxLength)
}

func TestLoader_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AT_DATE_DISPLAY_FORMAT=Mon\n"), 0600))
	t.Setenv("AT_DATE_DISPLAY_FORMAT", "02/01/2006")

	cfg, err := NewLoader(envFile).Load()
	require.NoError(t, err)

	assert.Equal(t, "02/01/2006", cfg.Display.DateFormat)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	backend := BackendMemory
	timer := 10 * time.Minute
	verbose := true

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		Backend:       &backend,
		TimerDuration: &timer,
		Verbose:       &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Database.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Timer.Duration)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoader_LoadWithOverrides_Invalid(t *testing.T) {
	bad := "cassandra"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Backend: &bad})
	assert.Error(t, err)
}

func TestParseOr(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseOr("2s", time.Minute, time.ParseDuration))
	assert.Equal(t, time.Minute, ParseOr("x", time.Minute, time.ParseDuration))
	assert.Equal(t, 7, ParseOr("7", 1, strconv.Atoi))
	assert.Equal(t, 1, ParseOr("seven", 1, strconv.Atoi))
	assert.False(t, ParseOr("false", true, strconv.ParseBool))
	assert.Equal(t, uint32(0o755), ParseOr("755", 0, parseOctalMode))
	assert.Equal(t, uint32(0o700), ParseOr("9", 0o700, parseOctalMode))
}
