package discretize_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/discretize"
	"github.com/blinkms/blink/spectrum"
)

func discard() zerolog.Logger { return zerolog.Nop() }

func TestDiscretize_SinglePeak(t *testing.T) {
	specs := []spectrum.Spectrum{{
		MZ: []float64{100.0}, Intensity: []float64{16.0},
		PrecursorMZ: 200.0, HasPrecursor: true,
	}}
	s, err := discretize.Discretize(specs, discard(), discretize.NewOptions(
		discretize.WithBinWidth(0.001), discretize.WithIntensityPower(0.5)))
	require.NoError(t, err)
	require.Equal(t, 1, s.NNZ())
	assert.InDelta(t, 1.0, s.Intensity[0], 1e-9)
	assert.Equal(t, 1.0, s.Count[0])
}

func TestDiscretize_MissingPrecursorRejected(t *testing.T) {
	specs := []spectrum.Spectrum{{MZ: []float64{100.0}, Intensity: []float64{1.0}}}
	_, err := discretize.Discretize(specs, discard(), discretize.NewOptions())
	require.Error(t, err)
}

func TestDiscretize_TrimEmptyRecordsBlanks(t *testing.T) {
	specs := []spectrum.Spectrum{
		{MZ: nil, Intensity: nil, PrecursorMZ: 100, HasPrecursor: true},
		{MZ: []float64{50}, Intensity: []float64{1}, PrecursorMZ: 100, HasPrecursor: true},
	}
	s, err := discretize.Discretize(specs, discard(), discretize.NewOptions(discretize.WithTrimEmpty(true)))
	require.NoError(t, err)
	assert.Equal(t, []int{0}, s.Blanks)
	assert.Equal(t, 1, s.N)
}

func TestDiscretize_MultiPeakUnitNorm(t *testing.T) {
	specs := []spectrum.Spectrum{{
		MZ: []float64{100, 200, 300}, Intensity: []float64{1, 1, 1},
		PrecursorMZ: 1000, HasPrecursor: true,
	}}
	s, err := discretize.Discretize(specs, discard(), discretize.NewOptions())
	require.NoError(t, err)
	var sumSq float64
	for _, v := range s.Intensity {
		sumSq += v * v
	}
	assert.InDelta(t, 1.0, sumSq, 1e-9)
}

func TestDiscretize_EmptyInput(t *testing.T) {
	_, err := discretize.Discretize(nil, discard(), discretize.NewOptions())
	require.Error(t, err)
}
