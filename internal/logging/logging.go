// Package logging configures the process-wide zerolog logger used by the
// CLI and, by injection, every core package. It mirrors the original
// implementation's logging.basicConfig(filename=...): a single log file
// plus a verbosity level, with no other environment influence.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config controls where and how verbosely log lines are written.
type Config struct {
	// Level is one of "debug", "info", "warn", "error". Empty means "info".
	Level string
	// FilePath is the destination log file. Empty means "blink.log" in the
	// current working directory, matching the original tool's default.
	FilePath string
	// Console, when true, additionally writes human-readable lines to stderr.
	Console bool
}

// New builds a logger from cfg. The returned close func flushes and closes
// the underlying file handle; callers should defer it.
func New(cfg Config) (zerolog.Logger, func() error, error) {
	path := cfg.FilePath
	if path == "" {
		path = "blink.log"
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Logger{}, func() error { return nil }, err
	}

	var w io.Writer = f
	if cfg.Console {
		w = zerolog.MultiLevelWriter(f, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(parseLevel(cfg.Level))

	return logger, f.Close, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "":
		return zerolog.InfoLevel
	default:
		return zerolog.InfoLevel
	}
}
