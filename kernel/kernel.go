// Package kernel implements the network-kernel expansion described in
// spec §4.4: each stored column is replicated across an offset set Ω
// derived from a tolerance, a set of chemical mass differences, and a
// react-step count.
//
// Computing Ω is materialized iteratively (react step by react step,
// deduplicating after each step) rather than via the original's
// recursive np.add.outer chain, per the Design Notes guidance in spec §9
// ("Recursive kernel expansion ... blows up combinatorially").
package kernel

import (
	"math"
	"sort"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/store"
)

// Options configures a network-kernel expansion.
//   - Tolerance:  matching tolerance in Da.
//   - MassDiffs:  chemical mass differences to consider networking ions,
//     in Da. A nil or empty slice is treated as []float64{0} (spec §9 Open
//     Questions: made explicit here rather than an implicit fallthrough).
//   - ReactSteps: number of elementary mass-diff combinations permitted;
//     must be >= 1.
//   - MaxExpandedNNZ: hard cap on the expanded entry count 2*NNZ()*|Ω|
//     (both axes of every peak are replicated); Expand returns
//     blinkerr.ErrResourceExceeded before allocating if exceeded. Zero
//     means unbounded.
type Options struct {
	Tolerance      float64
	MassDiffs      []float64
	ReactSteps     int
	MaxExpandedNNZ int
}

// Offsets computes the offset set Ω (spec §4.4 steps 1-5) for the given bin
// width and options. The returned slice is sorted ascending and may contain
// duplicates, which is harmless (spec §4.4 step 5: "duplicates allowed;
// their effect is purely additive and folded when the product deduplicates
// coordinates").
func Offsets(binWidth float64, opts Options) []int {
	diffs := opts.MassDiffs
	if len(diffs) == 0 {
		diffs = []float64{0}
	}

	binTol := int(2*(opts.Tolerance/binWidth) - 1)

	dBin := normalizedBins(diffs, binWidth)
	react := react(dBin, max(opts.ReactSteps, 1))

	lo := -((binTol + 1) / 2) + 1 // -ceil(binTol/2) + 1
	hi := binTol / 2              // floor(binTol/2), inclusive

	omega := make([]int, 0, len(react)*(hi-lo+1))
	for _, d := range react {
		for t := lo; t <= hi; t++ {
			omega = append(omega, d+t)
		}
	}
	sort.Ints(omega)
	return omega
}

// normalizedBins builds the symmetric bin-valued D_bin set from raw Da mass
// differences (spec §4.4 step 2-3): absolute values sorted ascending,
// mirrored to a symmetric [-dk..-d1, d1..dk] sequence, with one copy of a
// duplicate zero removed.
func normalizedBins(diffs []float64, binWidth float64) []int {
	abs := make([]float64, len(diffs))
	for i, d := range diffs {
		if d < 0 {
			d = -d
		}
		abs[i] = d
	}
	sort.Float64s(abs)

	symmetric := make([]float64, 0, 2*len(abs))
	for i := len(abs) - 1; i >= 0; i-- {
		symmetric = append(symmetric, -abs[i])
	}
	symmetric = append(symmetric, abs...)

	if len(symmetric) > 0 && symmetric[len(symmetric)/2] == 0 {
		symmetric = append(symmetric[:len(symmetric)/2], symmetric[len(symmetric)/2+1:]...)
	}

	bins := make([]int, len(symmetric))
	for i, d := range symmetric {
		bins[i] = roundBin(d, binWidth)
	}
	return bins
}

// react computes the set of all sums of exactly n elements drawn (with
// repetition) from base, deduplicating after every step rather than
// materializing the full recursive outer-sum tree at once.
func react(base []int, n int) []int {
	if n <= 1 {
		return dedupSorted(append([]int(nil), base...))
	}
	current := dedupSorted(append([]int(nil), base...))
	for step := 2; step <= n; step++ {
		next := make([]int, 0, len(base)*len(current))
		for _, b := range base {
			for _, c := range current {
				next = append(next, b+c)
			}
		}
		current = dedupSorted(next)
	}
	return current
}

func dedupSorted(xs []int) []int {
	sort.Ints(xs)
	out := xs[:0]
	var last int
	for i, x := range xs {
		if i == 0 || x != last {
			out = append(out, x)
			last = x
		}
	}
	return out
}

func roundBin(v, binWidth float64) int {
	return int(math.RoundToEven(v / binWidth))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Expand replicates every original (spec_id, col, val) entry across the
// offset set Ω (spec §4.4 "Expansion"). It operates on both axes of s
// independently (MZCol and NLCol each get their own replicated entries,
// tagged via IsMZ) and renormalizes columns to be nonnegative by computing
// a fresh Shift, exactly as network_kernel does for S['shift_net'].
func Expand(s *store.Store, binWidth float64, opts Options) (*store.Expanded, error) {
	omega := Offsets(binWidth, opts)
	if len(omega) == 0 {
		return nil, blinkerr.Wrap("kernel", blinkerr.ErrEmptyInput)
	}

	nnz := s.NNZ()
	total := 2 * nnz * len(omega) // both axes
	if opts.MaxExpandedNNZ > 0 && total > opts.MaxExpandedNNZ {
		return nil, blinkerr.Wrap("kernel", blinkerr.ErrResourceExceeded)
	}

	specID := make([]int, 0, total)
	col := make([]int, 0, total)
	intensity := make([]float64, 0, total)
	count := make([]float64, 0, total)
	isMZ := make([]bool, 0, total)

	minCol := 0
	first := true
	// Each peak carries one intensity weight and one count weight that are
	// used identically against both axes (store.Store's doc comment);
	// expansion preserves that pairing, replicating both values together
	// across every offset in omega rather than keeping only one.
	appendAxis := func(baseCol []int, mz bool) {
		for i, c := range baseCol {
			for _, delta := range omega {
				nc := c + delta
				specID = append(specID, s.SpecID[i])
				col = append(col, nc)
				isMZ = append(isMZ, mz)
				intensity = append(intensity, s.Intensity[i])
				count = append(count, s.Count[i])
				if first || nc < minCol {
					minCol = nc
					first = false
				}
			}
		}
	}
	appendAxis(s.MZCol, true)
	appendAxis(s.NLCol, false)

	shiftNet := s.Shift - minCol
	for i := range col {
		col[i] -= minCol
	}

	return &store.Expanded{
		Base:      s,
		SpecID:    specID,
		Col:       col,
		Intensity: intensity,
		Count:     count,
		IsMZ:      isMZ,
		Shift:     shiftNet,
	}, nil
}
