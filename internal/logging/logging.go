// Package logging builds the zap logger lyr writes to. The terminal UI owns
// stdout, so logs go to a file under the XDG state directory.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFileName = "lyr.log"

// Options describes logger construction parameters.
type Options struct {
	Level string
	File  string // defaults to DefaultFile()
}

// StateDir returns XDG_STATE_HOME/lyr or ~/.local/state/lyr.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lyr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lyr")
}

// DefaultFile returns the default log file path.
func DefaultFile() string {
	return filepath.Join(StateDir(), logFileName)
}

// New constructs a JSON file logger tagged with a fresh session id.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	path := opts.File
	if path == "" {
		path = DefaultFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.With(zap.String("session", uuid.NewString())), nil
}
