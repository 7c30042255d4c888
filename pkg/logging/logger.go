package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with planner-specific chainable context fields.
type Logger struct {
	logger *slog.Logger
}

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Output is where logs are written (default: os.Stdout).
	Output io.Writer
	// Pretty enables human-readable text output (default: false for JSON).
	Pretty bool
	// IncludeCaller includes source location in logs.
	IncludeCaller bool
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Output: os.Stdout,
		Pretty: false,
	}
}

// New creates a Logger with the given configuration.
func New(cfg Config) *Logger {
	level := parseLevel(cfg.Level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.IncludeCaller,
	}

	var handler slog.Handler
	if cfg.Pretty {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	return &Logger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithPlanID returns a derived Logger that tags every line with planID.
func (l *Logger) WithPlanID(planID string) *Logger {
	return &Logger{logger: l.logger.With("plan_id", planID)}
}

// WithNodeID returns a derived Logger that tags every line with nodeID.
func (l *Logger) WithNodeID(nodeID string) *Logger {
	return &Logger{logger: l.logger.With("node_id", nodeID)}
}

// WithSourceKey returns a derived Logger that tags every line with the
// resolved factory key for a data source.
func (l *Logger) WithSourceKey(key string) *Logger {
	return &Logger{logger: l.logger.With("source_key", key)}
}

// WithField returns a derived Logger with an extra structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With(key, value)}
}

// WithError returns a derived Logger tagging err.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{logger: l.logger.With("error", err.Error())}
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string) { l.logger.Debug(msg) }

// Info logs at info level.
func (l *Logger) Info(msg string) { l.logger.Info(msg) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string) { l.logger.Warn(msg) }

// Error logs at error level.
func (l *Logger) Error(msg string) { l.logger.Error(msg) }
