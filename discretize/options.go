// Package discretize converts variable-length peak lists into the packed
// sparse store representation (spec §4.2).
package discretize

// Options configures the discretization pipeline.
//   - BinWidth:         width of the integer lattice bins (Da).
//   - IntensityPower:   power peak intensities are raised to before
//     normalization.
//   - TrimEmpty:        drop spectra with zero peaks, remembering their
//     original indices in Store.Blanks.
//   - RemoveDuplicates: merge peaks within 2*BinWidth of each other
//     before binning (spec §4.1), applied with MinDiff = 2*BinWidth.
//   - Metadata:         opaque per-collection data carried into the store.
//
// Use NewOptions to construct with documented defaults and overrides.
type Options struct {
	BinWidth         float64
	IntensityPower   float64
	TrimEmpty        bool
	RemoveDuplicates bool
	Metadata         map[string]string
}

// Option configures an Options instance.
type Option func(*Options)

// WithBinWidth sets the lattice bin width.
func WithBinWidth(w float64) Option {
	return func(o *Options) { o.BinWidth = w }
}

// WithIntensityPower sets the intensity exponent applied before normalization.
func WithIntensityPower(p float64) Option {
	return func(o *Options) { o.IntensityPower = p }
}

// WithTrimEmpty toggles dropping of empty spectra.
func WithTrimEmpty(trim bool) Option {
	return func(o *Options) { o.TrimEmpty = trim }
}

// WithRemoveDuplicates toggles duplicate-ion merging before binning.
func WithRemoveDuplicates(dedup bool) Option {
	return func(o *Options) { o.RemoveDuplicates = dedup }
}

// WithMetadata attaches opaque metadata to the resulting store.
func WithMetadata(md map[string]string) Option {
	return func(o *Options) { o.Metadata = md }
}

// NewOptions constructs an Options with given Option functions applied.
// Defaults: BinWidth=0.001, IntensityPower=0.5, TrimEmpty=false,
// RemoveDuplicates=false, Metadata=nil.
func NewOptions(opts ...Option) Options {
	o := Options{
		BinWidth:       0.001,
		IntensityPower: 0.5,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
