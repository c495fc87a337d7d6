package score

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/kernel"
	"github.com/blinkms/blink/sparse"
	"github.com/blinkms/blink/store"
)

// side holds the four per-axis matrices for one store, in whichever
// orientation the caller built them in (query-major or bin-major).
type side struct {
	mzi, nli, mzc, nlc *sparse.CSR
	shift              int
}

// Score computes the requested result matrices for query against ref (spec
// §4.5). Each returned matrix has shape |query| x |ref|, queries along
// rows. ctx cancellation is checked between row chunks of the final
// multiplication pass.
func Score(ctx context.Context, query, ref *store.Store, opts Options) (map[string]*sparse.CSR, error) {
	if query.NNZ() == 0 || ref.NNZ() == 0 {
		return nil, blinkerr.Wrap("score", blinkerr.ErrEmptyInput)
	}
	if query.BinWidth != ref.BinWidth {
		return nil, blinkerr.Wrap("score", blinkerr.ErrIncompatibleBins)
	}

	qSrc, rSrc := query, ref
	if opts.Kernel != nil {
		// Expand whichever side has fewer pre-expansion nonzeros: expanding
		// the smaller side costs less and produces the same result, since
		// the network kernel is applied independently per side and the
		// product is linear in each side's replicated entries.
		if query.NNZ() <= ref.NNZ() {
			expanded, err := kernel.Expand(query, query.BinWidth, *opts.Kernel)
			if err != nil {
				return nil, blinkerr.Wrap("score", err)
			}
			q := expandedToQuerySide(expanded, ref.N)
			r := buildRefSide(ref)
			return multiplyAll(ctx, q, r, query.N, ref.N, opts)
		}
		expanded, err := kernel.Expand(ref, ref.BinWidth, *opts.Kernel)
		if err != nil {
			return nil, blinkerr.Wrap("score", err)
		}
		q := buildQuerySide(query)
		r := expandedToRefSide(expanded)
		return multiplyAll(ctx, q, r, query.N, ref.N, opts)
	}

	q := buildQuerySide(qSrc)
	r := buildRefSide(rSrc)
	return multiplyAll(ctx, q, r, query.N, ref.N, opts)
}

func buildQuerySide(s *store.Store) side {
	numBins := maxCol(s.MZCol, s.NLCol) + 1
	return side{
		mzi:   toCOO(s.N, numBins, s.SpecID, s.MZCol, s.Intensity).ToCSR(),
		nli:   toCOO(s.N, numBins, s.SpecID, s.NLCol, s.Intensity).ToCSR(),
		mzc:   toCOO(s.N, numBins, s.SpecID, s.MZCol, s.Count).ToCSR(),
		nlc:   toCOO(s.N, numBins, s.SpecID, s.NLCol, s.Count).ToCSR(),
		shift: s.Shift,
	}
}

func buildRefSide(s *store.Store) side {
	numBins := maxCol(s.MZCol, s.NLCol) + 1
	return side{
		mzi:   toCOO(numBins, s.N, s.MZCol, s.SpecID, s.Intensity).ToCSR(),
		nli:   toCOO(numBins, s.N, s.NLCol, s.SpecID, s.Intensity).ToCSR(),
		mzc:   toCOO(numBins, s.N, s.MZCol, s.SpecID, s.Count).ToCSR(),
		nlc:   toCOO(numBins, s.N, s.NLCol, s.SpecID, s.Count).ToCSR(),
		shift: s.Shift,
	}
}

func expandedToQuerySide(e *store.Expanded, _ int) side {
	numBins := maxCol(e.Col, nil) + 1
	mzSpec, mzCol, mzI, mzC := filterAxis(e, true)
	nlSpec, nlCol, nlI, nlC := filterAxis(e, false)
	return side{
		mzi:   toCOO(e.Base.N, numBins, mzSpec, mzCol, mzI).ToCSR(),
		nli:   toCOO(e.Base.N, numBins, nlSpec, nlCol, nlI).ToCSR(),
		mzc:   toCOO(e.Base.N, numBins, mzSpec, mzCol, mzC).ToCSR(),
		nlc:   toCOO(e.Base.N, numBins, nlSpec, nlCol, nlC).ToCSR(),
		shift: e.Shift,
	}
}

func expandedToRefSide(e *store.Expanded) side {
	numBins := maxCol(e.Col, nil) + 1
	mzSpec, mzCol, mzI, mzC := filterAxis(e, true)
	nlSpec, nlCol, nlI, nlC := filterAxis(e, false)
	return side{
		mzi:   toCOO(numBins, e.Base.N, mzCol, mzSpec, mzI).ToCSR(),
		nli:   toCOO(numBins, e.Base.N, nlCol, nlSpec, nlI).ToCSR(),
		mzc:   toCOO(numBins, e.Base.N, mzCol, mzSpec, mzC).ToCSR(),
		nlc:   toCOO(numBins, e.Base.N, nlCol, nlSpec, nlC).ToCSR(),
		shift: e.Shift,
	}
}

func filterAxis(e *store.Expanded, mz bool) (spec, col []int, intensity, count []float64) {
	for i, isMZ := range e.IsMZ {
		if isMZ != mz {
			continue
		}
		spec = append(spec, e.SpecID[i])
		col = append(col, e.Col[i])
		intensity = append(intensity, e.Intensity[i])
		count = append(count, e.Count[i])
	}
	return
}

func toCOO(rows, cols int, rowIdx, colIdx []int, vals []float64) *sparse.COO {
	m := sparse.NewCOO(rows, cols)
	for i := range rowIdx {
		if vals[i] == 0 {
			continue
		}
		m.Add(rowIdx[i], colIdx[i], vals[i])
	}
	return m
}

func maxCol(a, b []int) int {
	max := 0
	for _, v := range a {
		if v > max {
			max = v
		}
	}
	for _, v := range b {
		if v > max {
			max = v
		}
	}
	return max
}

// rowChunks splits [0, rows) into contiguous chunks of size chunkSize,
// defaulting chunkSize to one chunk per GOMAXPROCS CPU when it is <= 0.
func rowChunks(rows, chunkSize int) [][2]int {
	if chunkSize <= 0 {
		workers := runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
		chunkSize = (rows + workers - 1) / workers
		if chunkSize < 1 {
			chunkSize = 1
		}
	}
	var chunks [][2]int
	for start := 0; start < rows; start += chunkSize {
		end := start + chunkSize
		if end > rows {
			end = rows
		}
		chunks = append(chunks, [2]int{start, end})
	}
	if len(chunks) == 0 {
		chunks = append(chunks, [2]int{0, 0})
	}
	return chunks
}

// multiplyAll computes the requested result keys by partitioning query rows
// into chunks sized by opts.RowChunk (or runtime.GOMAXPROCS when unset) and
// running each chunk's four products against the reference concurrently
// through a bounded worker pool (spec §5). Cancellation is checked between
// row chunks so a cancelled score discards partial work instead of running
// a large product to completion.
func multiplyAll(ctx context.Context, q, r side, _, _ int, opts Options) (map[string]*sparse.CSR, error) {
	keys := opts.keys()

	matrixFor := func(key string) (*sparse.CSR, *sparse.CSR) {
		switch key {
		case "mzi":
			return q.mzi, r.mzi
		case "nli":
			return q.nli, r.nli
		case "mzc":
			return q.mzc, r.mzc
		case "nlc":
			return q.nlc, r.nlc
		}
		return nil, nil
	}

	merged := make(map[string]*sparse.COO, len(keys))
	var mu sync.Mutex
	for _, key := range keys {
		qm, _ := matrixFor(key)
		if qm == nil {
			continue
		}
		merged[key] = sparse.NewCOO(qm.Rows, 0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	anyRows := 0
	for _, key := range keys {
		if qm, _ := matrixFor(key); qm != nil {
			anyRows = qm.Rows
			break
		}
	}

	for _, chunk := range rowChunks(anyRows, opts.RowChunk) {
		chunk := chunk
		select {
		case <-gctx.Done():
			return nil, blinkerr.Wrap("score", gctx.Err())
		default:
		}
		for _, key := range keys {
			key := key
			qm, rm := matrixFor(key)
			if qm == nil {
				continue
			}
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				partial := sparse.MulAlignedRows(qm, q.shift, rm, r.shift, chunk[0], chunk[1])
				mu.Lock()
				merged[key].Cols = rm.Cols
				merged[key].Entries = append(merged[key].Entries, partial.Entries...)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, blinkerr.Wrap("score", err)
	}

	out := make(map[string]*sparse.CSR, len(merged))
	for key, coo := range merged {
		out[key] = coo.ToCSR()
	}
	return out, nil
}
