package mzml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkms/blink/format/mzml"
)

const sampleMS2 = `<?xml version="1.0" encoding="UTF-8"?>
<mzML>
  <run>
    <spectrumList>
      <spectrum id="scan=1" index="0">
        <cvParam name="ms level" value="2"/>
        <precursorList count="1">
          <precursor spectrumRef="scan=0">
            <selectedIonList>
              <selectedIon>
                <cvParam name="selected ion m/z" value="250.5"/>
              </selectedIon>
            </selectedIonList>
          </precursor>
        </precursorList>
        <binaryDataArrayList count="2">
          <binaryDataArray>
            <cvParam name="64-bit float"/>
            <cvParam name="m/z array"/>
            <binary>AAAAAAAAWUAAAAAAAABpQA==</binary>
          </binaryDataArray>
          <binaryDataArray>
            <cvParam name="64-bit float"/>
            <cvParam name="intensity array"/>
            <binary>AAAAAAAAJEAAAAAAAAA0QA==</binary>
          </binaryDataArray>
        </binaryDataArrayList>
      </spectrum>
    </spectrumList>
  </run>
</mzML>
`

func TestRead_SingleMS2Spectrum(t *testing.T) {
	specs, err := mzml.Read(strings.NewReader(sampleMS2))
	require.NoError(t, err)
	require.Len(t, specs, 1)

	s := specs[0]
	assert.True(t, s.HasPrecursor)
	assert.InDelta(t, 250.5, s.PrecursorMZ, 1e-9)
	require.Equal(t, 2, s.NPeaks())
	assert.InDelta(t, 100.0, s.MZ[0], 1e-9)
	assert.InDelta(t, 200.0, s.MZ[1], 1e-9)
	assert.InDelta(t, 10.0, s.Intensity[0], 1e-9)
	assert.InDelta(t, 20.0, s.Intensity[1], 1e-9)
}

func TestRead_EmptyInputErrors(t *testing.T) {
	_, err := mzml.Read(strings.NewReader("<mzML><run><spectrumList></spectrumList></run></mzML>"))
	require.Error(t, err)
}
