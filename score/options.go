// Package score implements the shift-aligned sparse scoring kernel (spec
// §4.5): given two discretized stores, compute the four result matrices
// mzi, nli, mzc, nlc, optionally expanding one side through a network
// kernel first.
package score

import "github.com/blinkms/blink/kernel"

// Options configures a Score call.
//   - Which restricts the computed result keys to a subset of
//     {"mzi", "nli", "mzc", "nlc"}. Empty means all four.
//   - Kernel, when non-nil, network-kernel-expands whichever side has
//     fewer pre-expansion nonzeros before multiplying (spec §9 Design
//     Notes, "Side selection for expansion" correction: the original
//     always expands the second argument regardless of size).
//   - RowChunk sets how many query rows each worker-pool task covers; <= 0
//     derives a chunk size from runtime.GOMAXPROCS so the query is split
//     into roughly one chunk per available CPU (spec §5).
type Options struct {
	Which    []string
	Kernel   *kernel.Options
	RowChunk int
}

var allKeys = []string{"mzi", "nli", "mzc", "nlc"}

func (o Options) keys() []string {
	if len(o.Which) == 0 {
		return allKeys
	}
	return o.Which
}
