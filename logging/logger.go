// Package logging builds the zap logger used by the shell. Output goes to a
// rotated file so the interactive prompt is never interleaved with log lines.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level name, debug/info/warn/error.
	Level string
	// Filename is the file to write logs to.
	Filename string
	// MaxSize is the maximum size in megabytes of the log file.
	MaxSize int
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int
	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int
	// Compress determines if the rotated log files should be compressed.
	Compress bool
}

// DefaultConfig returns default logger configuration writing to filename.
func DefaultConfig(filename string) *Config {
	return &Config{
		Level:      "info",
		Filename:   filename,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}
}

// New creates a JSON zap logger writing into a lumberjack rotated file.
func New(config *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", config.Level)
	}
	if config.Filename == "" {
		return nil, errors.New("log file name is empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.Filename), 0o750); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	writer := &lumberjack.Logger{
		Filename:   config.Filename,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   config.Compress,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(writer),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core, zap.AddCaller()), nil
}
