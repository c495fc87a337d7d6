package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blinkms/blink/archive"
	"github.com/blinkms/blink/cmd/blink/internal/appcfg"
	"github.com/blinkms/blink/filter"
	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/kernel"
	"github.com/blinkms/blink/score"
	"github.com/blinkms/blink/store"
)

func newScoreCmd() *cobra.Command {
	var (
		tolerance  float64
		massDiffs  []float64
		reactSteps int
		minScore   float64
		minMatches float64
		topK       int
		fastFormat bool
		outPath    string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "score <query.blink> [ref.blink]",
		Short: "Score one or two discretized archives against each other",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeFn, err := setupLogging()
			if err != nil {
				return err
			}
			defer closeFn()

			query, err := loadStore(args[0])
			if err != nil {
				return err
			}
			ref := query
			if len(args) == 2 {
				ref, err = loadStore(args[1])
				if err != nil {
					return err
				}
			}

			opts := score.Options{}
			if len(massDiffs) > 0 || reactSteps > 0 {
				opts.Kernel = &kernel.Options{Tolerance: tolerance, MassDiffs: massDiffs, ReactSteps: reactSteps}
			}

			results, err := score.Score(context.Background(), query, ref, opts)
			if err != nil {
				return err
			}

			matches, err := filter.Keep(results, filter.Options{MinScore: minScore, MinMatches: minMatches})
			if err != nil {
				return err
			}
			if topK > 0 {
				matches = filter.TopK(matches, topK)
			}

			out := outPath
			if out == "" {
				out = "scored.blink"
			}
			if !force && appcfg.OutputExists(out) {
				logger.Info().Str("path", out).Err(blinkerr.ErrOutputExists).Msg("skipping (use -f/--force to overwrite)")
				return nil
			}

			if fastFormat {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				return archive.WriteResults(f, results)
			}
			return writeTable(out, matches)
		},
	}

	cmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 0.01, "matching tolerance in Da")
	cmd.Flags().Float64SliceVarP(&massDiffs, "mass-diffs", "d", nil, "networking mass differences in Da")
	cmd.Flags().IntVarP(&reactSteps, "react-steps", "r", 1, "number of mass-diff combinations")
	cmd.Flags().Float64VarP(&minScore, "min-score", "s", 0.0, "minimum mzi/nli score to keep")
	cmd.Flags().Float64VarP(&minMatches, "min-matches", "m", 0.0, "minimum mzc/nlc matches to keep")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "keep only the top-k references per query")
	cmd.Flags().BoolVar(&fastFormat, "fast-format", false, "write a sparse archive instead of a TSV table")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite the output if it already exists")
	return cmd
}

func loadStore(path string) (*store.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return archive.ReadStore(f)
}

func writeTable(path string, matches []filter.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "reference_id\tquery_id\tmzi\tnli\tmzc\tnlc\tnetwork_score\tnetwork_matches")
	for _, m := range matches {
		fmt.Fprintf(f, "%d\t%d\t%g\t%g\t%g\t%g\t%g\t%g\n",
			m.Ref, m.Query, m.MZI, m.NLI, m.MZC, m.NLC, m.NetworkScore, m.NetworkMatches)
	}
	return nil
}
