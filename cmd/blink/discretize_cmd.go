package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blinkms/blink/archive"
	"github.com/blinkms/blink/cmd/blink/internal/appcfg"
	"github.com/blinkms/blink/discretize"
	"github.com/blinkms/blink/format/mgf"
	"github.com/blinkms/blink/format/mzml"
	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/spectrum"
)

func newDiscretizeCmd() *cobra.Command {
	var (
		binWidth   float64
		intensityP float64
		trim       bool
		dedup      bool
		outPath    string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "discretize [input files...]",
		Short: "Discretize .mgf/.mzml spectra into a sparse store archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeFn, err := setupLogging()
			if err != nil {
				return err
			}
			defer closeFn()

			var specs []spectrum.Spectrum
			for _, path := range args {
				read, err := readSpectra(path)
				if err != nil {
					return err
				}
				specs = append(specs, read...)
			}

			opts := discretize.NewOptions(
				discretize.WithBinWidth(binWidth),
				discretize.WithIntensityPower(intensityP),
				discretize.WithTrimEmpty(trim),
				discretize.WithRemoveDuplicates(dedup),
			)
			s, err := discretize.Discretize(specs, logger, opts)
			if err != nil {
				return err
			}

			out := outPath
			if out == "" {
				out = "discretized.blink"
			}
			if !force && appcfg.OutputExists(out) {
				logger.Info().Str("path", out).Err(blinkerr.ErrOutputExists).Msg("skipping (use -f/--force to overwrite)")
				return nil
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return archive.WriteStore(f, s)
		},
	}

	cmd.Flags().Float64VarP(&binWidth, "bin-width", "b", 0.001, "lattice bin width in Da")
	cmd.Flags().Float64VarP(&intensityP, "intensity-power", "i", 0.5, "intensity exponent")
	cmd.Flags().BoolVar(&trim, "trim", false, "drop spectra with zero peaks")
	cmd.Flags().BoolVar(&dedup, "dedup", false, "merge near-duplicate peaks before binning")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output archive path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the output archive if it already exists")
	return cmd
}

func readSpectra(path string) ([]spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch sniffFormat(path) {
	case ".mgf":
		return mgf.Read(f)
	case ".mzml":
		return mzml.Read(f)
	default:
		return nil, blinkerr.Wrap("discretize", blinkerr.ErrUnsupportedFormat)
	}
}
