// Package store holds the immutable packed sparse representation of a
// spectrum collection (spec §3, §4.3).
//
// Grounded on the original implementation (original_source/blink.py,
// score_sparse_spectra's expand_sparse_spectra closure) rather than a
// literal reading of spec.md §3's "two disjoint complex entries" text:
// the original reuses each peak's intensity value against its
// neutral-loss column and each peak's count value against its m/z
// column when building the four score matrices. That only works because
// the original's real- and imag-filtered arrays stay aligned by
// peak order positionally — an implicit coupling. Store makes that
// coupling explicit: every peak owns one MZCol, one NLCol, one
// Intensity weight and one Count weight, and the score kernel reads all
// four (mzi, nli, mzc, nlc) straight off those four parallel arrays
// instead of reconstructing the pairing from filter masks.
package store

// Store is an immutable bag of per-peak parallel arrays for a discretized
// spectrum collection, plus the per-spectrum precursor masses and shift
// needed to interpret MZCol/NLCol as nonnegative lattice columns.
type Store struct {
	// N is the number of spectra in the collection. Spectra trimmed into
	// Blanks are not counted; kept spectra with no entries are.
	N int

	// SpecID[i] is the spectrum that the i-th peak belongs to.
	SpecID []int
	// MZCol[i] is the shifted m/z-axis column of the i-th peak.
	MZCol []int
	// NLCol[i] is the shifted neutral-loss-axis column of the i-th peak.
	NLCol []int
	// Intensity[i] is the i-th peak's normalized intensity weight,
	// used identically for both the mzi and nli matrices.
	Intensity []float64
	// Count[i] is the i-th peak's normalized count weight (always 1 under
	// the count-norm definition in spec §3), used identically for both
	// the mzc and nlc matrices.
	Count []float64

	// Shift is the nonnegative offset applied to raw NL bins so that
	// MZCol/NLCol are always >= 0 (invariant I2).
	Shift int
	// BinWidth is the lattice bin width (Da) used to build this store.
	BinWidth float64
	// IntensityPower is the power peak intensities were raised to before
	// normalization.
	IntensityPower float64

	// PrecursorMZ holds one precursor mass per spectrum (length N).
	PrecursorMZ []float64
	// Metadata is opaque per-collection data carried through discretization.
	Metadata map[string]string
	// Blanks holds the original indices of spectra dropped for having no
	// peaks (only populated when discretization trimmed empty spectra).
	Blanks []int
	// FileIDs holds the cumulative spectrum count per input file, when the
	// collection was assembled from more than one source file.
	FileIDs []int
}

// Size returns the number of spectra in the collection.
func (s *Store) Size() int { return s.N }

// NNZ returns the number of peaks (each peak contributes one MZCol entry
// and one NLCol entry, i.e. 2*NNZ raw cells).
func (s *Store) NNZ() int { return len(s.SpecID) }

// Expanded holds the network-kernel-derived sibling arrays (spec §4.4,
// invariant I5). It is produced by kernel.Expand and consumed by the score
// kernel in place of the un-expanded Store on whichever side was larger.
type Expanded struct {
	Base *Store

	SpecID []int
	// Col holds the expanded column for each (original entry, offset) pair.
	Col       []int
	Intensity []float64
	Count     []float64
	// IsMZ marks whether this expanded entry tracks an original MZCol
	// (true) or NLCol (false) entry, since kernel expansion is applied to
	// each axis's raw columns independently.
	IsMZ []bool

	Shift int
}

// NNZNet returns the number of expanded entries.
func (e *Expanded) NNZNet() int { return len(e.SpecID) }
