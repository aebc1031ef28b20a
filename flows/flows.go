package flows

import "fmt"

// Flows is the per-fragment flow container: the creation arena (stabilizers
// propagated forward from resets), the destruction arena (stabilizers
// propagated backward from measurements) and the fragment's total measurement
// count.
//
// A Flows value represents either a plain fragment or a repeated loop block
// (the tagged-variant cases share this one surface). The loop case carries,
// in addition, a repetition count and the ordered per-iteration body flows;
// its own creation/destruction arenas hold the aggregate boundary stabilizers
// of the whole repeated block.
type Flows struct {
	creation     *Arena
	destruction  *Arena
	measurements int

	// Loop-only fields; repeat == 0 marks a plain fragment.
	repeat int
	body   []*Flows
}

// NewFragmentFlows validates and builds a plain fragment's flows.
// measurements must be non-negative and every stabilizer's measurement
// offsets must fall inside the fragment's record window [-measurements, -1].
func NewFragmentFlows(creation, destruction []*BoundaryStabilizer, measurements int) (*Flows, error) {
	if measurements < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeMeasurementCount, measurements)
	}
	if err := checkWindow(creation, measurements); err != nil {
		return nil, err
	}
	if err := checkWindow(destruction, measurements); err != nil {
		return nil, err
	}

	return &Flows{
		creation:     newArena(creation),
		destruction:  newArena(destruction),
		measurements: measurements,
	}, nil
}

// NewLoopFlows validates and builds the flows of a repeated loop block.
// body holds the per-iteration fragment flows of one loop body, in order;
// creation and destruction hold the aggregate boundary stabilizers of the
// whole block. The block's measurement count is the sum over one body
// iteration: a neighboring fragment's stabilizers meet the loop's first (or
// last) iteration, never the repeated middle.
func NewLoopFlows(body []*Flows, repeat int, creation, destruction []*BoundaryStabilizer) (*Flows, error) {
	if repeat < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadRepeat, repeat)
	}
	if len(body) == 0 {
		return nil, ErrEmptyLoopBody
	}
	measurements := 0
	for _, f := range body {
		measurements += f.Measurements()
	}
	if err := checkWindow(creation, measurements); err != nil {
		return nil, err
	}
	if err := checkWindow(destruction, measurements); err != nil {
		return nil, err
	}

	return &Flows{
		creation:     newArena(creation),
		destruction:  newArena(destruction),
		measurements: measurements,
		repeat:       repeat,
		body:         body,
	}, nil
}

// Creation returns the creation arena.
func (f *Flows) Creation() *Arena { return f.creation }

// Destruction returns the destruction arena.
func (f *Flows) Destruction() *Arena { return f.destruction }

// Measurements returns the fragment's total measurement count (one body
// iteration's total for a loop block).
func (f *Flows) Measurements() int { return f.measurements }

// IsLoop reports whether the value represents a repeated loop block.
func (f *Flows) IsLoop() bool { return f.repeat > 0 }

// Repeat returns the loop repetition count, or 0 for a plain fragment.
func (f *Flows) Repeat() int { return f.repeat }

// Body returns the per-iteration body flows of a loop block, or nil for a
// plain fragment. The slice is shared: the caller must Clone elements before
// mutating them.
func (f *Flows) Body() []*Flows { return f.body }

// Clone returns a deep, independent copy. The loop sanity check matches on
// clones so the real flow state stays untouched by the pre-computation.
func (f *Flows) Clone() *Flows {
	c := &Flows{
		creation:     f.creation.clone(),
		destruction:  f.destruction.clone(),
		measurements: f.measurements,
		repeat:       f.repeat,
	}
	if f.body != nil {
		c.body = make([]*Flows, len(f.body))
		for i, inner := range f.body {
			c.body[i] = inner.Clone()
		}
	}

	return c
}

// String renders a compact summary for diagnostics and consistency errors.
func (f *Flows) String() string {
	kind := "FragmentFlows"
	if f.IsLoop() {
		kind = fmt.Sprintf("FragmentLoopFlows(repeat=%d)", f.repeat)
	}

	return fmt.Sprintf("%s{creation=%d/%d live, destruction=%d/%d live, measurements=%d}",
		kind, f.creation.Len(), f.creation.Size(),
		f.destruction.Len(), f.destruction.Size(), f.measurements)
}

// checkWindow verifies every measurement offset fits the fragment's record
// window. Offsets count backward from the end of the fragment, so anything
// below -measurements references a record entry the fragment does not own.
func checkWindow(stabilizers []*BoundaryStabilizer, measurements int) error {
	for _, b := range stabilizers {
		for _, m := range b.measurements {
			if m.Offset < -measurements {
				return fmt.Errorf("%w: %v exceeds window of %d measurements",
					ErrMeasurementOffset, m, measurements)
			}
		}
	}

	return nil
}
