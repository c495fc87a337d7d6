package spectrum_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/spectrum"
)

func TestNormalize_MergesDuplicatePeak(t *testing.T) {
	s := spectrum.Spectrum{
		MZ:          []float64{100.0000, 100.0005},
		Intensity:   []float64{4, 9},
		PrecursorMZ: 300,
	}
	got, err := spectrum.Normalize(s, 0.002)
	require.NoError(t, err)
	require.Len(t, got.MZ, 1)
	assert.InDelta(t, 100.00025, got.MZ[0], 1e-9)
	assert.InDelta(t, 13.0, got.Intensity[0], 1e-9)
}

func TestNormalize_NoViolationsUnchanged(t *testing.T) {
	s := spectrum.Spectrum{
		MZ:        []float64{100, 200, 300},
		Intensity: []float64{1, 1, 1},
	}
	got, err := spectrum.Normalize(s, 0.002)
	require.NoError(t, err)
	assert.Equal(t, s.MZ, got.MZ)
	assert.Equal(t, s.Intensity, got.Intensity)
}

func TestNormalize_RunOfThreeCollapsesToOne(t *testing.T) {
	s := spectrum.Spectrum{
		MZ:        []float64{100.0000, 100.0004, 100.0008},
		Intensity: []float64{1, 1, 1},
	}
	got, err := spectrum.Normalize(s, 0.001)
	require.NoError(t, err)
	require.Len(t, got.MZ, 1)
	assert.InDelta(t, 3.0, got.Intensity[0], 1e-9)
}

func TestNormalize_LengthMismatch(t *testing.T) {
	s := spectrum.Spectrum{MZ: []float64{1, 2}, Intensity: []float64{1}}
	_, err := spectrum.Normalize(s, 0.001)
	assert.ErrorIs(t, err, spectrum.ErrLengthMismatch)
}

func TestNormalize_EmptySpectrum(t *testing.T) {
	got, err := spectrum.Normalize(spectrum.Spectrum{}, 0.001)
	require.NoError(t, err)
	assert.Empty(t, got.MZ)
}
