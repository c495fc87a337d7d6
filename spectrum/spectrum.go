// Package spectrum holds the raw, variable-length peak-list representation
// of a single mass spectrum and the duplicate-merge normalizer described
// in spec §4.1.
//
// A Spectrum is the unit the discretizer consumes: two equal-length,
// m/z-sorted slices plus a scalar precursor mass. Peaks and PrecursorMZ
// are assumed sorted ascending by m/z on input; Normalize is the only
// operation that may reorder or collapse entries, and it preserves sort
// order by construction (it only ever merges adjacent pairs).
package spectrum

import "errors"

// ErrLengthMismatch indicates MZ and Intensity have different lengths.
var ErrLengthMismatch = errors.New("spectrum: mz/intensity length mismatch")

// Spectrum is a single tandem mass spectrum: parallel m/z and intensity
// arrays plus the precursor mass that produced the fragment peaks.
type Spectrum struct {
	MZ          []float64
	Intensity   []float64
	PrecursorMZ float64
	// HasPrecursor distinguishes "precursor 0.0" from "precursor absent",
	// the latter being a rejectable input per spec §4.2 Failure.
	HasPrecursor bool
	// Params carries arbitrary per-spectrum metadata from the reader
	// collaborator (e.g. mgf TITLE/SCANS fields).
	Params map[string]string
}

// NPeaks returns the number of peaks in the spectrum.
func (s Spectrum) NPeaks() int { return len(s.MZ) }

// Validate checks that MZ and Intensity have equal length.
func (s Spectrum) Validate() error {
	if len(s.MZ) != len(s.Intensity) {
		return ErrLengthMismatch
	}
	return nil
}

// Normalize collapses runs of peaks whose m/z spacing is < minDiff,
// replacing each violating pair with a single peak at the arithmetic
// mean m/z and summed intensity (spec §4.1). A single left-to-right pass
// suffices: inputs are assumed already sorted and violations are local,
// so collapsing pair (i, i+1) can only ever need to be compared again
// against the newly formed peak's successor, which this loop does by
// construction (it never rewinds).
func Normalize(s Spectrum, minDiff float64) (Spectrum, error) {
	if err := s.Validate(); err != nil {
		return Spectrum{}, err
	}
	n := len(s.MZ)
	if n == 0 {
		return s, nil
	}

	outMZ := make([]float64, 0, n)
	outI := make([]float64, 0, n)

	curMZ, curI := s.MZ[0], s.Intensity[0]
	for i := 1; i < n; i++ {
		if s.MZ[i]-curMZ < minDiff {
			// Collapse: arithmetic mean of m/z, sum of intensities.
			curMZ = (curMZ + s.MZ[i]) / 2
			curI += s.Intensity[i]
			continue
		}
		outMZ = append(outMZ, curMZ)
		outI = append(outI, curI)
		curMZ, curI = s.MZ[i], s.Intensity[i]
	}
	outMZ = append(outMZ, curMZ)
	outI = append(outI, curI)

	return Spectrum{
		MZ:           outMZ,
		Intensity:    outI,
		PrecursorMZ:  s.PrecursorMZ,
		HasPrecursor: s.HasPrecursor,
		Params:       s.Params,
	}, nil
}
