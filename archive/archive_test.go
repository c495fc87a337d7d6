package archive_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/archive"
	"github.com/blinkms/blink/sparse"
	"github.com/blinkms/blink/store"
)

func TestStoreRoundTrip(t *testing.T) {
	s := &store.Store{
		N: 1, SpecID: []int{0}, MZCol: []int{5}, NLCol: []int{7},
		Intensity: []float64{1.0}, Count: []float64{1.0},
		Shift: 2, BinWidth: 0.001, IntensityPower: 0.5,
		PrecursorMZ: []float64{200},
	}
	var buf bytes.Buffer
	require.NoError(t, archive.WriteStore(&buf, s))

	out, err := archive.ReadStore(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.SpecID, out.SpecID)
	assert.Equal(t, s.MZCol, out.MZCol)
	assert.Equal(t, s.Shift, out.Shift)
	assert.Equal(t, s.PrecursorMZ, out.PrecursorMZ)
	assert.Nil(t, out.Metadata)
}

func TestResultsRoundTrip(t *testing.T) {
	coo := sparse.NewCOO(2, 2)
	coo.Add(0, 1, 0.75)
	results := map[string]*sparse.CSR{"mzi": coo.ToCSR()}

	var buf bytes.Buffer
	require.NoError(t, archive.WriteResults(&buf, results))

	out, err := archive.ReadResults(&buf)
	require.NoError(t, err)
	require.Contains(t, out, "mzi")
	assert.InDelta(t, 0.75, out["mzi"].At(0, 1), 1e-9)
}

func TestReadStore_MalformedArchive(t *testing.T) {
	_, err := archive.ReadStore(bytes.NewReader([]byte{0xff, 0xff, 0xff}))
	require.Error(t, err)
}
