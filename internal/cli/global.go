// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Verbose enables debug-level logging.
	// This is set by the global --verbose flag.
	Verbose bool

	// NoInput disables interactive prompts; commands fail instead of asking.
	// This is set by the global --no-input flag.
	NoInput bool

	// logger is the process-wide logger, built once at startup.
	logger *zap.Logger

	// loggerMutex protects logger for concurrent access.
	loggerMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false,
		"enable debug logging")
	cmd.PersistentFlags().BoolVar(&NoInput, "no-input", false,
		"disable interactive prompts; fail instead of asking")
}

// IsNoInput returns true if interactive prompts are disabled.
func IsNoInput() bool {
	return NoInput
}

// InitLogger builds the process-wide logger. Called once from the root
// command before any subcommand runs.
func InitLogger() error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	loggerMutex.Lock()
	defer loggerMutex.Unlock()
	logger = l
	return nil
}

// Logger returns the process-wide logger, or a no-op logger before
// InitLogger has run (e.g. in tests).
func Logger() *zap.Logger {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SyncLogger flushes buffered log entries. Called on process exit.
func SyncLogger() {
	loggerMutex.RLock()
	defer loggerMutex.RUnlock()
	if logger != nil {
		_ = logger.Sync()
	}
}
