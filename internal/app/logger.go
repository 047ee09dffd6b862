package app

import (
	"log/slog"
	"os"
	"strings"

	"ankidash/internal/config"
)

// NewLogger builds a *slog.Logger from the log configuration and installs
// it as the default via slog.SetDefault.
//
// Format "json" emits structured JSON; "text" emits human-readable lines
// with source info for development. Level is debug, info, warn or error
// (case-insensitive, default info). Output goes to os.Stderr so the
// printed dashboard on stdout stays clean.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
