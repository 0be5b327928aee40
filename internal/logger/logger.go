// Package logger holds the process-wide structured logger.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L = zap.NewNop()

// Options configures the logger initialization.
type Options struct {
	Enabled bool   // If false, all logging is discarded
	Level   string // Minimum level: debug, info, warn, error. Default: info
	JSON    bool   // JSON encoding instead of console encoding
	Path    string // Output path. Default: stderr
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) error {
	if !opts.Enabled {
		L = zap.NewNop()
		return nil
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	if opts.JSON {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	if opts.Path != "" {
		cfg.OutputPaths = []string{opts.Path}
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	L = l
	return nil
}

// ParseLevel maps a level name to a zap level. An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, err
	}
	return level, nil
}

// Named returns a child of L scoped to a component.
func Named(component string) *zap.Logger {
	return L.Named(component)
}

// EnvEnabled reports whether the named environment variable is set to a
// non-empty value. Used for HIVE_LOG_ALLOC-style debug toggles.
func EnvEnabled(name string) bool {
	return os.Getenv(name) != ""
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = L.Sync()
}
