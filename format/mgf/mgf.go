// Package mgf reads the Mascot Generic Format peak-list convention:
// BEGIN IONS, a block of KEY=VALUE parameter lines, a run of "mz
// intensity" peak lines, END IONS, grounded on the original's
// pyteomics.mgf-backed read_mgf.
package mgf

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/blinkms/blink/internal/blinkerr"
	"github.com/blinkms/blink/spectrum"
)

// Read scans r for MGF records and returns one spectrum.Spectrum per
// BEGIN IONS/END IONS block, in file order. Params keys are lowercased;
// PEPMASS's first token becomes PrecursorMZ.
func Read(r io.Reader) ([]spectrum.Spectrum, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out []spectrum.Spectrum
	var cur *spectrum.Spectrum
	var params map[string]string

	flush := func() {
		if cur == nil {
			return
		}
		cur.Params = params
		out = append(out, *cur)
		cur = nil
		params = nil
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.EqualFold(line, "BEGIN IONS"):
			cur = &spectrum.Spectrum{}
			params = make(map[string]string)
		case strings.EqualFold(line, "END IONS"):
			flush()
		case cur == nil:
			continue
		case strings.Contains(line, "="):
			parts := strings.SplitN(line, "=", 2)
			key := strings.ToLower(strings.TrimSpace(parts[0]))
			val := strings.TrimSpace(parts[1])
			params[key] = val
			if key == "pepmass" {
				fields := strings.Fields(val)
				if len(fields) > 0 {
					if mz, err := strconv.ParseFloat(fields[0], 64); err == nil {
						cur.PrecursorMZ = mz
						cur.HasPrecursor = true
					}
				}
			}
		default:
			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}
			mz, err1 := strconv.ParseFloat(fields[0], 64)
			in, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			cur.MZ = append(cur.MZ, mz)
			cur.Intensity = append(cur.Intensity, in)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, blinkerr.Wrap("mgf", err)
	}
	if len(out) == 0 {
		return nil, blinkerr.Wrap("mgf", blinkerr.ErrEmptyInput)
	}
	return out, nil
}
