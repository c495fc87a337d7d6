// Package mzml streams mzML documents and extracts MS-level >= 2 peak
// lists, grounded on the original's pymzml-backed read_mzml. MS^n spectra
// (ms level > 2) are grouped into one flattened peak list per connected
// component of the precursor back-reference graph, keyed to the root MS2
// scan's precursor m/z, matching the original's networkx-based grouping.
package mzml

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/spectrum"
)

type cvParam struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type binaryDataArray struct {
	CvParam []cvParam `xml:"cvParam"`
	Binary  string    `xml:"binary"`
}

type selectedIon struct {
	CvParam []cvParam `xml:"cvParam"`
}

type precursor struct {
	SpectrumRef string `xml:"spectrumRef,attr"`
	SelectedIon []selectedIon `xml:"selectedIonList>selectedIon"`
}

type xmlSpectrum struct {
	ID                  string            `xml:"id,attr"`
	CvParam             []cvParam         `xml:"cvParam"`
	Precursor           []precursor       `xml:"precursorList>precursor"`
	BinaryDataArrayList []binaryDataArray `xml:"binaryDataArrayList>binaryDataArray"`
}

func findParam(params []cvParam, substr string) (string, bool) {
	for _, p := range params {
		if strings.Contains(strings.ToLower(p.Name), substr) {
			return p.Value, true
		}
	}
	return "", false
}

func hasParam(params []cvParam, substr string) bool {
	_, ok := findParam(params, substr)
	return ok
}

func decodeBinary(b binaryDataArray) ([]float64, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b.Binary))
	if err != nil {
		return nil, blinkerr.Wrap("mzml", err)
	}
	if hasParam(b.CvParam, "zlib compression") {
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, blinkerr.Wrap("mzml", err)
		}
		raw, err = io.ReadAll(zr)
		if err != nil {
			return nil, blinkerr.Wrap("mzml", err)
		}
	}

	is64 := hasParam(b.CvParam, "64-bit float")
	width := 4
	if is64 {
		width = 8
	}
	n := len(raw) / width
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if is64 {
			bits := binary.LittleEndian.Uint64(raw[i*8 : i*8+8])
			out[i] = math.Float64frombits(bits)
		} else {
			bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
			out[i] = float64(math.Float32frombits(bits))
		}
	}
	return out, nil
}

type scan struct {
	id          string
	msLevel     int
	precursorID string
	precursorMZ float64
	hasPrecMZ   bool
	mz          []float64
	intensity   []float64
}

// Read parses all ms level >= 2 spectra out of r and returns one flattened
// spectrum.Spectrum per connected group of MS^n scans.
func Read(r io.Reader) ([]spectrum.Spectrum, error) {
	dec := xml.NewDecoder(r)

	var scans []scan
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, blinkerr.Wrap("mzml", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "spectrum" {
			continue
		}
		var xs xmlSpectrum
		if err := dec.DecodeElement(&xs, &se); err != nil {
			return nil, blinkerr.Wrap("mzml", err)
		}
		s, keep, err := convert(xs)
		if err != nil {
			return nil, blinkerr.Wrap("mzml", err)
		}
		if keep {
			scans = append(scans, s)
		}
	}

	if len(scans) == 0 {
		return nil, blinkerr.Wrap("mzml", blinkerr.ErrEmptyInput)
	}
	return group(scans), nil
}

func convert(xs xmlSpectrum) (scan, bool, error) {
	levelStr, ok := findParam(xs.CvParam, "ms level")
	if !ok {
		return scan{}, false, nil
	}
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 2 {
		return scan{}, false, nil
	}

	s := scan{id: xs.ID, msLevel: level}
	if len(xs.Precursor) > 0 {
		p := xs.Precursor[0]
		s.precursorID = p.SpectrumRef
		for _, ion := range p.SelectedIon {
			if v, ok := findParam(ion.CvParam, "selected ion m/z"); ok {
				if mz, err := strconv.ParseFloat(v, 64); err == nil {
					s.precursorMZ = mz
					s.hasPrecMZ = true
				}
			}
		}
	}

	for _, arr := range xs.BinaryDataArrayList {
		vals, err := decodeBinary(arr)
		if err != nil {
			return scan{}, false, err
		}
		switch {
		case hasParam(arr.CvParam, "m/z array"):
			s.mz = vals
		case hasParam(arr.CvParam, "intensity array"):
			s.intensity = vals
		}
	}
	return s, true, nil
}

// group merges MS^n scans that chain back to the same MS2 ancestor via
// precursorID into one flattened peak list per component, taking the
// precursor m/z from whichever member of the component actually carries
// one (the root MS2 scan).
func group(scans []scan) []spectrum.Spectrum {
	byID := make(map[string]scan, len(scans))
	for _, s := range scans {
		byID[s.id] = s
	}

	uf := newUnionFind()
	for _, s := range scans {
		uf.find(s.id)
		if s.precursorID != "" {
			if _, ok := byID[s.precursorID]; ok {
				uf.union(s.id, s.precursorID)
			}
		}
	}

	components := make(map[string][]scan)
	for _, s := range scans {
		root := uf.find(s.id)
		components[root] = append(components[root], s)
	}

	out := make([]spectrum.Spectrum, 0, len(components))
	for _, members := range components {
		var sp spectrum.Spectrum
		var precursorMZ float64
		var hasPrec bool
		for _, m := range members {
			sp.MZ = append(sp.MZ, m.mz...)
			sp.Intensity = append(sp.Intensity, m.intensity...)
			if m.msLevel == 2 && m.hasPrecMZ {
				precursorMZ = m.precursorMZ
				hasPrec = true
			}
		}
		if !hasPrec {
			for _, m := range members {
				if m.hasPrecMZ {
					precursorMZ = m.precursorMZ
					hasPrec = true
					break
				}
			}
		}
		sp.PrecursorMZ = precursorMZ
		sp.HasPrecursor = hasPrec
		out = append(out, sp)
	}
	return out
}
