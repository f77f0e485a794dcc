package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnabled returns true if debug mode is enabled via AT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("AT_DEBUG") != ""
}

// New builds the application logger. Output goes to stderr so command output
// on stdout stays clean. Verbose or AT_DEBUG switches to a development logger.
func New(verbose bool) (*zap.Logger, error) {
	if verbose || DebugEnabled() {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// NewOrNop returns New(verbose), falling back to a no-op logger if the
// configured sinks cannot be opened.
func NewOrNop(verbose bool) *zap.Logger {
	logger, err := New(verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
