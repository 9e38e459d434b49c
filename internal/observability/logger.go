// Package observability provides structured logging and Prometheus metrics
// for the render pipeline.
package observability

import (
	"log/slog"
	"os"

	"github.com/kooroshkz/CrashScope/internal/config"
)

// NewLogger builds the service logger from config. LOG_FORMAT selects JSON
// (default) or text output; unknown LOG_LEVEL values fall back to info.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
