// Package archive persists Store and score-result matrices as a single
// msgpack-encoded named-array container (spec §4.8, §6), mirroring the
// original's npz "named arrays" layout without depending on a compressed
// zip format.
package archive

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/sparse"
	"github.com/blinkms/blink/store"
)

// StoreArchive is the on-disk representation of a discretized store.
// Optional fields (FileIDs, Blanks, Metadata) are tagged omitempty so a
// reader tolerates archives that never populated them.
type StoreArchive struct {
	N              int               `msgpack:"n"`
	SpecID         []int             `msgpack:"spec_id"`
	MZCol          []int             `msgpack:"mz_col"`
	NLCol          []int             `msgpack:"nl_col"`
	Intensity      []float64         `msgpack:"intensity"`
	Count          []float64         `msgpack:"count"`
	Shift          int               `msgpack:"shift"`
	BinWidth       float64           `msgpack:"bin_width"`
	IntensityPower float64           `msgpack:"intensity_power"`
	PrecursorMZ    []float64         `msgpack:"precursor_mz"`
	Metadata       map[string]string `msgpack:"metadata,omitempty"`
	Blanks         []int             `msgpack:"blanks,omitempty"`
	FileIDs        []int             `msgpack:"file_ids,omitempty"`
}

// WriteStore encodes s to w.
func WriteStore(w io.Writer, s *store.Store) error {
	a := StoreArchive{
		N: s.N, SpecID: s.SpecID, MZCol: s.MZCol, NLCol: s.NLCol,
		Intensity: s.Intensity, Count: s.Count, Shift: s.Shift,
		BinWidth: s.BinWidth, IntensityPower: s.IntensityPower,
		PrecursorMZ: s.PrecursorMZ, Metadata: s.Metadata,
		Blanks: s.Blanks, FileIDs: s.FileIDs,
	}
	if err := msgpack.NewEncoder(w).Encode(&a); err != nil {
		return blinkerr.Wrap("archive", err)
	}
	return nil
}

// ReadStore decodes a Store previously written by WriteStore.
func ReadStore(r io.Reader) (*store.Store, error) {
	var a StoreArchive
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, blinkerr.Wrap("archive", blinkerr.ErrMalformedArchive)
	}
	return &store.Store{
		N: a.N, SpecID: a.SpecID, MZCol: a.MZCol, NLCol: a.NLCol,
		Intensity: a.Intensity, Count: a.Count, Shift: a.Shift,
		BinWidth: a.BinWidth, IntensityPower: a.IntensityPower,
		PrecursorMZ: a.PrecursorMZ, Metadata: a.Metadata,
		Blanks: a.Blanks, FileIDs: a.FileIDs,
	}, nil
}

// csrArchive is the wire form of one named sparse result matrix, stored in
// canonical CSR layout (spec §6: "sparse archive of the four result
// matrices").
type csrArchive struct {
	Rows   int       `msgpack:"rows"`
	Cols   int       `msgpack:"cols"`
	RowPtr []int     `msgpack:"row_ptr"`
	ColIdx []int     `msgpack:"col_idx"`
	Val    []float64 `msgpack:"val"`
}

// ResultArchive holds the (possibly partial) mzi/nli/mzc/nlc result
// matrices produced by a score call, keyed exactly as score.Score returns
// them.
type ResultArchive struct {
	Matrices map[string]csrArchive `msgpack:"matrices"`
}

// WriteResults encodes a score-result map to w.
func WriteResults(w io.Writer, results map[string]*sparse.CSR) error {
	a := ResultArchive{Matrices: make(map[string]csrArchive, len(results))}
	for key, m := range results {
		a.Matrices[key] = csrArchive{Rows: m.Rows, Cols: m.Cols, RowPtr: m.RowPtr, ColIdx: m.ColIdx, Val: m.Val}
	}
	if err := msgpack.NewEncoder(w).Encode(&a); err != nil {
		return blinkerr.Wrap("archive", err)
	}
	return nil
}

// ReadResults decodes a score-result map previously written by WriteResults.
func ReadResults(r io.Reader) (map[string]*sparse.CSR, error) {
	var a ResultArchive
	if err := msgpack.NewDecoder(r).Decode(&a); err != nil {
		return nil, blinkerr.Wrap("archive", blinkerr.ErrMalformedArchive)
	}
	out := make(map[string]*sparse.CSR, len(a.Matrices))
	for key, m := range a.Matrices {
		out[key] = &sparse.CSR{Rows: m.Rows, Cols: m.Cols, RowPtr: m.RowPtr, ColIdx: m.ColIdx, Val: m.Val}
	}
	return out, nil
}
