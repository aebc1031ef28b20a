package match

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/stabflow/stabflow/flows"
)

// Tolerances for coordinate comparison, mirroring the usual allclose
// defaults (|a-b| <= atol + rtol*|b|).
const (
	coordRelTol = 1e-5
	coordAbsTol = 1e-8
)

// MatchedDetector is one automatically matched detector: a set of
// measurement-record references with deterministic combined parity, plus a
// coordinate tuple used for display and bookkeeping only.
//
// Values are immutable once built. Equality is set equality on the
// measurements plus numeric closeness on the coordinates; the order
// measurements were inserted in never matters.
type MatchedDetector struct {
	coords       []float64
	measurements []flows.Measurement
}

// NewMatchedDetector builds a detector from a coordinate tuple and the
// involved measurements. Measurements are deduplicated under set semantics
// and stored sorted; both slices are copied.
func NewMatchedDetector(coords []float64, measurements []flows.Measurement) MatchedDetector {
	d := MatchedDetector{coords: make([]float64, len(coords))}
	copy(d.coords, coords)

	seen := make(map[flows.Measurement]struct{}, len(measurements))
	for _, m := range measurements {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		d.measurements = append(d.measurements, m)
	}
	sort.Slice(d.measurements, func(i, j int) bool {
		if d.measurements[i].Offset != d.measurements[j].Offset {
			return d.measurements[i].Offset < d.measurements[j].Offset
		}

		return d.measurements[i].Qubit < d.measurements[j].Qubit
	})

	return d
}

// Coordinates returns a copy of the coordinate tuple.
func (d MatchedDetector) Coordinates() []float64 {
	out := make([]float64, len(d.coords))
	copy(out, d.coords)

	return out
}

// Measurements returns a copy of the measurement set, sorted by offset then
// qubit.
func (d MatchedDetector) Measurements() []flows.Measurement {
	out := make([]flows.Measurement, len(d.measurements))
	copy(out, d.measurements)

	return out
}

// Equal reports whether both detectors reference the same measurement set
// and numerically close coordinates.
func (d MatchedDetector) Equal(o MatchedDetector) bool {
	if len(d.measurements) != len(o.measurements) {
		return false
	}
	for i, m := range d.measurements {
		if o.measurements[i] != m {
			return false
		}
	}

	return allClose(d.coords, o.coords)
}

// String renders the detector, e.g. "Detector(1.5, 0)[q0@rec[-2] q1@rec[-1]]".
func (d MatchedDetector) String() string {
	coords := make([]string, len(d.coords))
	for i, c := range d.coords {
		coords[i] = fmt.Sprintf("%g", c)
	}
	ms := make([]string, len(d.measurements))
	for i, m := range d.measurements {
		ms[i] = m.String()
	}

	return fmt.Sprintf("Detector(%s)[%s]", strings.Join(coords, ", "), strings.Join(ms, " "))
}

// allClose compares float tuples with relative+absolute tolerance.
func allClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > coordAbsTol+coordRelTol*math.Abs(b[i]) {
			return false
		}
	}

	return true
}

// sameDetectorSet reports whether the two slices contain the same detectors
// regardless of order; used by the loop consistency check.
func sameDetectorSet(a, b []MatchedDetector) bool {
	if len(a) != len(b) {
		return false
	}
	claimed := make([]bool, len(b))
outer:
	for _, da := range a {
		for i, db := range b {
			if !claimed[i] && da.Equal(db) {
				claimed[i] = true

				continue outer
			}
		}

		return false
	}

	return true
}

// renderDetectors joins detectors line by line for consistency errors.
func renderDetectors(ds []MatchedDetector) string {
	if len(ds) == 0 {
		return "  (none)"
	}
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = "  " + d.String()
	}

	return strings.Join(lines, "\n")
}
