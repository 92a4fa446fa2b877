package logger

import (
	"io"
	"log/slog"
	"os"
)

// Log is the global logger instance. It falls back to slog's default until Setup runs.
var Log = slog.Default()

// Setup initializes the global logger based on the environment.
// Production logs JSON, development logs text at debug level and tests only log warnings.
func Setup(env string) {
	var (
		handler slog.Handler
		out     io.Writer = os.Stdout
	)

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch env {
	case "production":
		handler = slog.NewJSONHandler(out, opts)
	case "test":
		opts.Level = slog.LevelWarn
		handler = slog.NewTextHandler(out, opts)
	default:
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(out, opts)
	}

	Log = slog.New(handler).With("service", "cabinet-api")
	slog.SetDefault(Log)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}
