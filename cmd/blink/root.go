// Command blink discretizes mass spectra and scores discretized
// collections, mirroring the original tool's argparse-based CLI with two
// subcommands bound to the same underlying library.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/blinkms/blink/cmd/blink/internal/appcfg"
	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/internal/logging"
)

var cfg *appcfg.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blink",
		Short:         "BLINK discretizes and scores tandem mass spectra",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cfg = appcfg.BindPersistentFlags(root)

	root.AddCommand(newDiscretizeCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newRunCmd())
	return root
}

func setupLogging() (zerolog.Logger, func() error, error) {
	return logging.New(logging.Config{Level: cfg.LogLevel, FilePath: cfg.LogFile, Console: cfg.LogConsole})
}

// exitCode maps a returned error to a process exit code (SPEC_FULL.md §7):
// 2 for bad usage (unrecognized input), 3 for I/O-shaped failures
// (malformed archives), 4 when a resource budget was exceeded, 1 for
// anything else, 0 on success.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, blinkerr.ErrUnsupportedFormat),
		errors.Is(err, blinkerr.ErrIncompatibleBins),
		errors.Is(err, blinkerr.ErrMissingPrecursor):
		return 2
	case errors.Is(err, blinkerr.ErrMalformedArchive):
		return 3
	case errors.Is(err, blinkerr.ErrResourceExceeded):
		return 4
	default:
		return 1
	}
}

func sniffFormat(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
