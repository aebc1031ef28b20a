package flows

import (
	"fmt"
	"sort"

	"github.com/stabflow/stabflow/pauli"
)

// BoundaryStabilizer is one stabilizer propagated to a fragment boundary.
//
// It carries the Pauli content before and after the collapsing operations it
// crossed, the identifiers of the collapse operations it anticommuted with
// (empty for a cleanly propagated stabilizer), and the measurement-record
// references it depends on. Instances are effectively immutable: every
// transform returns a fresh value.
type BoundaryStabilizer struct {
	before        pauli.PauliString
	after         pauli.PauliString
	anticommuting []int // sorted, deduplicated collapse-operation ids
	measurements  []Measurement
}

// NewBoundaryStabilizer validates and builds a boundary stabilizer. All
// measurement offsets must be strictly negative (ErrMeasurementOffset
// otherwise); anticommuting collapse-operation ids are deduplicated and
// sorted; slices are copied, the caller keeps ownership of its arguments.
func NewBoundaryStabilizer(
	before, after pauli.PauliString,
	anticommuting []int,
	measurements []Measurement,
) (*BoundaryStabilizer, error) {
	for _, m := range measurements {
		if m.Offset >= 0 {
			return nil, fmt.Errorf("%w: offset %d for qubit %d must be negative",
				ErrMeasurementOffset, m.Offset, m.Qubit)
		}
	}

	return &BoundaryStabilizer{
		before:        before,
		after:         after,
		anticommuting: dedupeSorted(anticommuting),
		measurements:  dedupeMeasurements(measurements),
	}, nil
}

// BeforeCollapse returns the Pauli content before the collapsing operations.
func (b *BoundaryStabilizer) BeforeCollapse() pauli.PauliString { return b.before }

// AfterCollapse returns the Pauli content after the collapsing operations.
// Matching decisions are made on this string.
func (b *BoundaryStabilizer) AfterCollapse() pauli.PauliString { return b.after }

// HasAnticommuting reports whether the stabilizer anticommuted with at least
// one collapsing operation; such a stabilizer is non-deterministic on its own
// and is never matched directly.
func (b *BoundaryStabilizer) HasAnticommuting() bool { return len(b.anticommuting) > 0 }

// AnticommutingWith returns the collapse-operation ids the stabilizer
// anticommutes with, ascending.
func (b *BoundaryStabilizer) AnticommutingWith() []int {
	out := make([]int, len(b.anticommuting))
	copy(out, b.anticommuting)

	return out
}

// Measurements returns the measurement references the stabilizer depends on.
func (b *BoundaryStabilizer) Measurements() []Measurement {
	out := make([]Measurement, len(b.measurements))
	copy(out, b.measurements)

	return out
}

// IsTrivial reports whether the stabilizer is inert: it never anticommuted
// and both its before- and after-collapse content are identity. Trivial
// stabilizers must never seed a detector — they would declare a vacuous
// deterministic parity.
func (b *BoundaryStabilizer) IsTrivial() bool {
	return !b.HasAnticommuting() && b.after.Weight() == 0 && b.before.Weight() == 0
}

// WithMeasurementOffset returns a copy with every measurement reference
// shifted by delta. A shift that would push any reference to a non-negative
// offset is rejected with ErrMeasurementOffset.
func (b *BoundaryStabilizer) WithMeasurementOffset(delta int) (*BoundaryStabilizer, error) {
	shifted := make([]Measurement, len(b.measurements))
	for i, m := range b.measurements {
		shifted[i] = m.OffsetBy(delta)
		if shifted[i].Offset >= 0 {
			return nil, fmt.Errorf("%w: shifting %v by %d leaves a non-negative offset",
				ErrMeasurementOffset, m, delta)
		}
	}

	return &BoundaryStabilizer{
		before:        b.before,
		after:         b.after,
		anticommuting: b.anticommuting,
		measurements:  shifted,
	}, nil
}

// MergedWith returns the product stabilizer: Pauli contents multiply,
// measurement sets union, and anticommuting collapse sets cancel by symmetric
// difference — two stabilizers anticommuting with the same collapse combine
// into one that commutes with it.
func (b *BoundaryStabilizer) MergedWith(o *BoundaryStabilizer) *BoundaryStabilizer {
	return &BoundaryStabilizer{
		before:        b.before.Mul(o.before),
		after:         b.after.Mul(o.after),
		anticommuting: symmetricDifference(b.anticommuting, o.anticommuting),
		measurements:  dedupeMeasurements(append(b.Measurements(), o.measurements...)),
	}
}

// Coordinates returns the component-wise mean of the coordinates of the
// qubits referenced by the stabilizer's measurements. Unknown qubits yield
// ErrUnknownQubit; tuples of differing arity yield ErrCoordinateArity. A
// stabilizer without measurements has no coordinates and returns nil.
func (b *BoundaryStabilizer) Coordinates(table map[int][]float64) ([]float64, error) {
	if len(b.measurements) == 0 {
		return nil, nil
	}
	var sum []float64
	for _, m := range b.measurements {
		coords, ok := table[m.Qubit]
		if !ok {
			return nil, fmt.Errorf("%w: qubit %d", ErrUnknownQubit, m.Qubit)
		}
		if sum == nil {
			sum = make([]float64, len(coords))
		}
		if len(coords) != len(sum) {
			return nil, fmt.Errorf("%w: qubit %d has %d components, want %d",
				ErrCoordinateArity, m.Qubit, len(coords), len(sum))
		}
		for i, c := range coords {
			sum[i] += c
		}
	}
	for i := range sum {
		sum[i] /= float64(len(b.measurements))
	}

	return sum, nil
}

// Clone returns an independent deep copy.
func (b *BoundaryStabilizer) Clone() *BoundaryStabilizer {
	return &BoundaryStabilizer{
		before:        b.before,
		after:         b.after,
		anticommuting: b.AnticommutingWith(),
		measurements:  b.Measurements(),
	}
}

// String renders the stabilizer for diagnostics.
func (b *BoundaryStabilizer) String() string {
	return fmt.Sprintf("BoundaryStabilizer(after=%v, anticommuting=%v, measurements=%v)",
		b.after, b.anticommuting, b.measurements)
}

// dedupeSorted returns a sorted copy of ids with duplicates removed.
func dedupeSorted(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	unique := out[:0]
	for i, id := range out {
		if i == 0 || id != unique[len(unique)-1] {
			unique = append(unique, id)
		}
	}

	return unique
}

// symmetricDifference returns the ids present in exactly one of a and b,
// ascending. Both inputs are sorted and deduplicated, as maintained by
// dedupeSorted.
func symmetricDifference(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

// dedupeMeasurements returns a copy of ms with duplicates removed, sorted by
// offset then qubit so rendering and iteration stay deterministic.
func dedupeMeasurements(ms []Measurement) []Measurement {
	seen := make(map[Measurement]struct{}, len(ms))
	out := make([]Measurement, 0, len(ms))
	for _, m := range ms {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Offset != out[j].Offset {
			return out[i].Offset < out[j].Offset
		}

		return out[i].Qubit < out[j].Qubit
	})

	return out
}
