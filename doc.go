// Package blink discretizes tandem mass spectra onto a shared integer
// lattice and scores collections of them against each other through a
// shift-aligned sparse matrix product.
//
// The pipeline has five stages, each its own subpackage:
//
//	spectrum/   — peak-list normalization (duplicate-ion merge)
//	discretize/ — m/z + neutral-loss binning into a packed Store
//	kernel/     — network-kernel expansion of a Store across a tolerance
//	            and a set of chemical mass differences
//	score/      — shift-aligned sparse product producing mzi/nli/mzc/nlc
//	filter/     — thresholding and top-k selection over score results
//
// sparse/ holds the COO/CSR types and the Gustavson's-algorithm
// product at the center of score/. archive/ persists a Store or a score
// result set as msgpack. format/mgf and format/mzml read peak lists off
// disk. cmd/blink wires all of the above into a CLI.
package blink
