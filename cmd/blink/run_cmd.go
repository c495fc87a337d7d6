package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blinkms/blink/internal/blinkerr"
)

// newRunCmd mirrors the original CLI's single entrypoint, which picks
// discretize-vs-score behavior from the common extension across all
// input files rather than requiring an explicit subcommand.
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Dispatch to discretize or score based on input file extensions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext, err := commonExt(args)
			if err != nil {
				return err
			}
			switch ext {
			case ".mgf", ".mzml":
				return newDiscretizeCmd().RunE(cmd, args)
			case ".blink":
				return newScoreCmd().RunE(cmd, args)
			default:
				return blinkerr.Wrap("run", blinkerr.ErrUnsupportedFormat)
			}
		},
	}
	return cmd
}

func commonExt(files []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(files[0]))
	for _, f := range files[1:] {
		if strings.ToLower(filepath.Ext(f)) != ext {
			return "", blinkerr.Wrap("run", blinkerr.ErrUnsupportedFormat)
		}
	}
	return ext, nil
}
