// Package blinkerr defines the sentinel error set shared by every BLINK
// package. All algorithms MUST return these sentinels (wrapped with
// fmt.Errorf("%s: %w", ...) for context) and tests MUST check them via
// errors.Is. No core component aborts the process; only cmd/blink maps
// these to exit codes.
package blinkerr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates an input file's extension is not recognized.
	ErrUnsupportedFormat = errors.New("blink: unsupported file format")

	// ErrIncompatibleBins indicates two stores were built with different bin widths.
	ErrIncompatibleBins = errors.New("blink: incompatible bin widths")

	// ErrMalformedArchive indicates a required archive field is missing or invalid.
	ErrMalformedArchive = errors.New("blink: malformed archive")

	// ErrResourceExceeded indicates a kernel expansion or score would exceed its memory budget.
	ErrResourceExceeded = errors.New("blink: resource budget exceeded")

	// ErrEmptyInput indicates an operation was given zero spectra or zero peaks to work with.
	ErrEmptyInput = errors.New("blink: empty input")

	// ErrOutputExists indicates an output path already exists and force was not requested.
	ErrOutputExists = errors.New("blink: output already exists")

	// ErrMissingPrecursor indicates a spectrum has peaks but no precursor m/z.
	ErrMissingPrecursor = errors.New("blink: missing precursor m/z")
)

// Wrap wraps err with a "tag: err" prefix, preserving errors.Is/As matching
// against the sentinel. Mirrors the teacher's matrixErrorf/denseErrorf helpers.
func Wrap(tag string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", tag, err)
}
