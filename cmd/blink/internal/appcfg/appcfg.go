// Package appcfg is the blink CLI's single configuration surface: a small
// set of persistent flags bound once on the root command, plus one
// environment variable fallback for the log level. No file-based config
// is introduced — the original tool has none, and flags plus
// BLINK_LOG_LEVEL already cover its surface.
package appcfg

import (
	"os"

	"github.com/spf13/cobra"
)

// Config holds the values the root command's persistent flags populate.
type Config struct {
	LogLevel   string
	LogFile    string
	LogConsole bool
}

// BindPersistentFlags registers the shared logging flags on cmd and
// returns the Config they populate once cmd.Execute() parses arguments.
// BLINK_LOG_LEVEL, when set, supplies the --log-level default; an
// explicit --log-level flag still takes precedence.
func BindPersistentFlags(cmd *cobra.Command) *Config {
	cfg := &Config{}

	defaultLevel := "info"
	if v := os.Getenv("BLINK_LOG_LEVEL"); v != "" {
		defaultLevel = v
	}

	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", defaultLevel, "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "blink.log", "log file path")
	cmd.PersistentFlags().BoolVar(&cfg.LogConsole, "verbose", false, "also log to stderr")
	return cfg
}

// OutputExists reports whether path already exists, the condition the
// "-f/--force" flag overrides (spec §6: "skipped unless force").
func OutputExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
