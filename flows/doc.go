// Package flows models the boundary-stabilizer bookkeeping of a fragmented
// quantum error-correcting circuit.
//
// What:
//
//   - Measurement — a reference into the global measurement record: the
//     measured qubit plus a strictly negative offset counted backward from
//     "now" (the stabilizer-formalism convention).
//   - BoundaryStabilizer — one stabilizer propagated to a fragment boundary,
//     annotated with its Pauli content before and after the collapsing
//     operations it crossed, the collapse operations it anticommuted with,
//     and the measurements it depends on.
//   - Flows — the per-fragment container: a creation arena (stabilizers
//     propagated forward from resets), a destruction arena (propagated
//     backward from measurements) and the fragment's total measurement
//     count. A Flows value can also represent a repeated loop block, in
//     which case it additionally carries the repetition count and the
//     per-iteration body flows.
//
// Why:
//
//	Detector matching consumes stabilizers: once a stabilizer participates
//	in a detector it must never participate in another. Creation and
//	destruction lists are therefore arenas with stable integer Handles and
//	a liveness flag — "removal" retires a handle instead of shifting
//	indices, so a handle observed by one matching pass stays valid (and
//	individually consumable) throughout the pipeline.
//
// Concurrency: none. A Flows value is mutated in place by matching calls and
// must be owned by a single goroutine while matching runs.
//
// Errors:
//
//   - ErrNegativeMeasurementCount: a fragment reported fewer than 0 measurements.
//   - ErrMeasurementOffset: a measurement offset was not strictly negative,
//     or fell outside the fragment's record window.
//   - ErrBadRepeat: a loop block declared fewer than 1 repetitions.
//   - ErrEmptyLoopBody: a loop block declared no body fragments.
//   - ErrBadHandle: an arena access used a retired or out-of-range handle.
//   - ErrUnknownQubit: a coordinate lookup met a qubit absent from the table.
//   - ErrCoordinateArity: qubit coordinate tuples disagree on their length.
package flows
