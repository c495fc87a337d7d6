package discretize

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/spectrum"
	"github.com/blinkms/blink/store"
)

// Discretize converts a collection of spectra into a packed Store (spec
// §4.2). log may be the zero value (a nop logger); it only receives a
// warning line when all-zero-intensity spectra are dropped.
func Discretize(spectra []spectrum.Spectrum, log zerolog.Logger, opts Options) (*store.Store, error) {
	if len(spectra) == 0 {
		return nil, blinkerr.Wrap("discretize", blinkerr.ErrEmptyInput)
	}

	kept := make([]spectrum.Spectrum, 0, len(spectra))
	blanks := make([]int, 0)
	for origIdx, s := range spectra {
		if s.NPeaks() > 0 && !s.HasPrecursor {
			return nil, blinkerr.Wrap("discretize", blinkerr.ErrMissingPrecursor)
		}
		if s.NPeaks() == 0 {
			if opts.TrimEmpty {
				blanks = append(blanks, origIdx)
				continue
			}
			kept = append(kept, s)
			continue
		}
		kept = append(kept, s)
	}

	if opts.RemoveDuplicates {
		minDiff := 2 * opts.BinWidth
		for i, s := range kept {
			normalized, err := spectrum.Normalize(s, minDiff)
			if err != nil {
				return nil, blinkerr.Wrap("discretize", err)
			}
			kept[i] = normalized
		}
	}

	n := len(kept)
	specID := make([]int, 0)
	mzCol := make([]int, 0)
	nlCol := make([]int, 0)
	intensity := make([]float64, 0)
	count := make([]float64, 0)
	pmz := make([]float64, n)

	droppedAllZero := 0

	for specIdx, s := range kept {
		pmz[specIdx] = s.PrecursorMZ
		m := s.NPeaks()
		if m == 0 {
			continue
		}

		raised := make([]float64, m)
		var sumSq float64
		for i, v := range s.Intensity {
			raised[i] = math.Pow(v, opts.IntensityPower)
			sumSq += raised[i] * raised[i]
		}
		norm := math.Sqrt(sumSq)
		if norm <= 0 {
			// Policy decision (spec §9 Open Questions, SPEC_FULL.md §11):
			// an all-zero-intensity spectrum contributes no entries rather
			// than dividing by zero. It keeps its row in N and is not
			// recorded in Blanks.
			droppedAllZero++
			continue
		}
		inorm := 1.0 / norm
		cnorm := 1.0 // sqrt(m)/sqrt(m), spec §3 count normalization

		pBin := math.RoundToEven(s.PrecursorMZ / opts.BinWidth)

		for i := 0; i < m; i++ {
			kBin := math.RoundToEven(s.MZ[i] / opts.BinWidth)
			nlBin := pBin - kBin

			specID = append(specID, specIdx)
			mzCol = append(mzCol, int(kBin))
			nlCol = append(nlCol, int(nlBin))
			intensity = append(intensity, inorm*raised[i])
			count = append(count, cnorm)
		}
	}

	if len(specID) == 0 {
		return nil, blinkerr.Wrap("discretize", blinkerr.ErrEmptyInput)
	}

	minNL := nlCol[0]
	for _, nl := range nlCol[1:] {
		if nl < minNL {
			minNL = nl
		}
	}
	shift := 0
	if minNL < 0 {
		shift = -minNL
	}
	for i := range mzCol {
		mzCol[i] += shift
		nlCol[i] += shift
	}

	if droppedAllZero > 0 {
		log.Warn().Int("count", droppedAllZero).Msg("dropped all-zero-intensity spectra")
	}

	return &store.Store{
		N:              n,
		SpecID:         specID,
		MZCol:          mzCol,
		NLCol:          nlCol,
		Intensity:      intensity,
		Count:          count,
		Shift:          shift,
		BinWidth:       opts.BinWidth,
		IntensityPower: opts.IntensityPower,
		PrecursorMZ:    pmz,
		Metadata:       opts.Metadata,
		Blanks:         blanks,
	}, nil
}
