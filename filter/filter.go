// Package filter implements the result filter (spec §4.6): thresholding
// the four score matrices, computing the elementwise network score/matches,
// and top-k selection per query row.
package filter

import (
	"sort"

	"github.com/blinkms/blink/sparse"
)

// Mode selects how the four per-key thresholds combine.
type Mode int

const (
	// ModeAnyScoreAnyMatch keeps (q, r) iff (mzi>=sigma OR nli>=sigma) AND
	// (mzc>=mu OR nlc>=mu) — the default rule in spec §4.6.
	ModeAnyScoreAnyMatch Mode = iota
	// ModeAnyOfFour keeps (q, r) iff any of the four thresholds is met on
	// its own (the "variant form" spec §4.6 mentions).
	ModeAnyOfFour
)

// Options configures Keep and TopK.
type Options struct {
	MinScore   float64
	MinMatches float64
	Mode       Mode
}

// Match is a single surviving (query, reference) result row.
type Match struct {
	Query, Ref     int
	MZI, NLI       float64
	MZC, NLC       float64
	NetworkScore   float64
	NetworkMatches float64
}

// Keep applies the threshold rule over the union of nonzero supports of the
// four result matrices and returns the surviving matches in row-major
// order. results must contain at least "mzi" and "mzc"; "nli"/"nlc" are
// read if present and treated as all-zero otherwise. It returns an error if
// the four matrices disagree on shape.
func Keep(results map[string]*sparse.CSR, opts Options) ([]Match, error) {
	mzi := results["mzi"]
	mzc := results["mzc"]
	nli := results["nli"]
	nlc := results["nlc"]

	scoreA, scoreB := nonNil(mzi, nli)
	networkScore, err := sparse.Maximum(scoreA, scoreB)
	if err != nil {
		return nil, err
	}
	matchA, matchB := nonNil(mzc, nlc)
	networkMatches, err := sparse.Maximum(matchA, matchB)
	if err != nil {
		return nil, err
	}
	if networkScore.Rows != networkMatches.Rows || networkScore.Cols != networkMatches.Cols {
		return nil, sparse.ErrDimensionMismatch
	}

	type cell struct{ r, c int }
	seen := make(map[cell]struct{})
	var matches []Match

	collect := func(m *sparse.CSR) {
		if m == nil {
			return
		}
		for i := 0; i < m.Rows; i++ {
			for p := m.RowPtr[i]; p < m.RowPtr[i+1]; p++ {
				seen[cell{i, m.ColIdx[p]}] = struct{}{}
			}
		}
	}
	collect(mzi)
	collect(nli)
	collect(mzc)
	collect(nlc)

	for c := range seen {
		miv := at(mzi, c.r, c.c)
		niv := at(nli, c.r, c.c)
		mcv := at(mzc, c.r, c.c)
		ncv := at(nlc, c.r, c.c)
		ns := at(networkScore, c.r, c.c)
		nm := at(networkMatches, c.r, c.c)

		var ok bool
		switch opts.Mode {
		case ModeAnyOfFour:
			ok = miv >= opts.MinScore || niv >= opts.MinScore ||
				mcv >= opts.MinMatches || ncv >= opts.MinMatches
		default:
			scoreOK := miv >= opts.MinScore || niv >= opts.MinScore
			matchOK := mcv >= opts.MinMatches || ncv >= opts.MinMatches
			ok = scoreOK && matchOK
		}
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Query: c.r, Ref: c.c,
			MZI: miv, NLI: niv, MZC: mcv, NLC: ncv,
			NetworkScore: ns, NetworkMatches: nm,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Query != matches[j].Query {
			return matches[i].Query < matches[j].Query
		}
		return matches[i].Ref < matches[j].Ref
	})
	return matches, nil
}

// TopK keeps at most k matches per query row from matches, ranked by
// descending NetworkScore, ties broken by descending NetworkMatches then
// ascending reference id. matches need not be pre-sorted.
func TopK(matches []Match, k int) []Match {
	if k <= 0 {
		return matches
	}
	byQuery := make(map[int][]Match)
	for _, m := range matches {
		byQuery[m.Query] = append(byQuery[m.Query], m)
	}

	queries := make([]int, 0, len(byQuery))
	for q := range byQuery {
		queries = append(queries, q)
	}
	sort.Ints(queries)

	var out []Match
	for _, q := range queries {
		rows := byQuery[q]
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].NetworkScore != rows[j].NetworkScore {
				return rows[i].NetworkScore > rows[j].NetworkScore
			}
			if rows[i].NetworkMatches != rows[j].NetworkMatches {
				return rows[i].NetworkMatches > rows[j].NetworkMatches
			}
			return rows[i].Ref < rows[j].Ref
		})
		if len(rows) > k {
			rows = rows[:k]
		}
		out = append(out, rows...)
	}
	return out
}

func nonNil(a, b *sparse.CSR) (*sparse.CSR, *sparse.CSR) {
	if a == nil && b == nil {
		return sparse.NewCOO(0, 0).ToCSR(), sparse.NewCOO(0, 0).ToCSR()
	}
	if a == nil {
		return sparse.NewCOO(b.Rows, b.Cols).ToCSR(), b
	}
	if b == nil {
		return a, sparse.NewCOO(a.Rows, a.Cols).ToCSR()
	}
	return a, b
}

func at(m *sparse.CSR, r, c int) float64 {
	if m == nil {
		return 0
	}
	return m.At(r, c)
}
