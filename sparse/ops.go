package sparse

// Transpose returns a new COO matrix with rows and columns swapped, e.g. to
// turn a "bin x spectrum" layout into the "spectrum x bin" layout that
// MulAligned expects for its query operand. The score package builds its
// query side directly in "spectrum x bin" form and does not call it.
func (m *COO) Transpose() *COO {
	out := &COO{Rows: m.Cols, Cols: m.Rows, Entries: make([]Entry, len(m.Entries))}
	for i, e := range m.Entries {
		out.Entries[i] = Entry{Row: e.Col, Col: e.Row, Val: e.Val}
	}
	return out
}

// MulAligned computes query * ref, where query is Rows=queries x Cols=bins
// (already transposed to query-major) and ref is Rows=bins x Cols=refs (its
// natural bin-major layout — no transpose needed). The two operands were
// built against independently shifted bin axes; rather than pre-padding
// either side with empty columns, the shared "physical" bin index is
// recovered inline as storedIndex-shift and the two shifts are reconciled
// via a single integer offset, per the shift-alignment redesign in spec §9.
//
// Implementation is Gustavson's row-by-row sparse product: for each query
// row, each nonzero bin is looked up directly in ref's row-major storage
// (an O(1) slice via RowPtr) and the partial products are accumulated in a
// per-row map, which also performs the "canonicalize by summing duplicate
// coordinates" step from spec §5 for free.
func MulAligned(query *CSR, shiftQuery int, ref *CSR, shiftRef int) *CSR {
	return MulAlignedRows(query, shiftQuery, ref, shiftRef, 0, query.Rows).ToCSR()
}

// MulAlignedRows computes the same product as MulAligned but restricted to
// query rows [rowStart, rowEnd), returning the raw COO accumulation instead
// of a canonicalized CSR. Concurrent row-chunk workers each call this over a
// disjoint row range and the caller merges the partial COOs (spec §5's
// row-chunked worker pool).
func MulAlignedRows(query *CSR, shiftQuery int, ref *CSR, shiftRef int, rowStart, rowEnd int) *COO {
	offset := shiftRef - shiftQuery

	result := NewCOO(query.Rows, ref.Cols)
	acc := make(map[int]float64)

	for i := rowStart; i < rowEnd; i++ {
		for k := range acc {
			delete(acc, k)
		}
		start, end := query.RowPtr[i], query.RowPtr[i+1]
		for p := start; p < end; p++ {
			binCol := query.ColIdx[p]
			aval := query.Val[p]
			refRow := binCol + offset
			if refRow < 0 || refRow >= ref.Rows {
				continue
			}
			rs, re := ref.RowPtr[refRow], ref.RowPtr[refRow+1]
			for q := rs; q < re; q++ {
				j := ref.ColIdx[q]
				acc[j] += aval * ref.Val[q]
			}
		}
		for j, v := range acc {
			if v != 0 {
				result.Add(i, j, v)
			}
		}
	}

	return result
}

// Maximum returns the elementwise sparse maximum of a and b over the union
// of their nonzero supports, per spec §4.6 ("network score is max(mzi,
// nli) ... taken elementwise as a sparse maximum"). It returns
// ErrDimensionMismatch instead of aborting when the shapes disagree — core
// components report errors rather than panicking.
func Maximum(a, b *CSR) (*CSR, error) {
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return nil, ErrDimensionMismatch
	}
	out := NewCOO(a.Rows, a.Cols)
	type key struct{ r, c int }
	vals := make(map[key]float64)

	walk := func(m *CSR) {
		for i := 0; i < m.Rows; i++ {
			for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
				k := key{i, m.ColIdx[p]}
				if cur, ok := vals[k]; !ok || m.Val[p] > cur {
					vals[k] = m.Val[p]
				}
			}
		}
	}
	walk(a)
	walk(b)

	for k, v := range vals {
		out.Add(k.r, k.c, v)
	}
	return out.ToCSR(), nil
}
