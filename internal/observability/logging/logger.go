// Package logging creates the process-wide structured loggers. JSON
// output is the production default; text output is for local runs.
package logging

import (
	"log/slog"
	"os"
)

// NewLogger creates a JSON logger. The level comes from LOG_LEVEL
// ("debug" enables debug output, anything else means info). Source
// locations are attached when running at debug level.
func NewLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// NewTextLogger is the human-readable variant of NewLogger.
func NewTextLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: logLevel <= slog.LevelDebug,
	})
	return slog.New(handler)
}
