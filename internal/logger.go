package internal

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel converts a level name ("debug", "info", "warn"/"warning",
// "error") to a slog.Level, defaulting to Info for anything else.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("unknown log level, defaulting to info", "level", level)
		return slog.LevelInfo
	}
}

// SetupLogger installs a stderr text handler at the given level as the
// default slog logger. Progress output on stdout is unaffected.
func SetupLogger(level string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: ParseLogLevel(level)})))
}
