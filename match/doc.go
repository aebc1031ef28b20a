// Package match is the detector matching engine: it turns per-fragment
// boundary-stabilizer flows into detectors, the measurement sets whose
// parity is deterministic when the circuit runs error-free.
//
// What:
//
//   - MatchDetectorsWithinFragment — resolves the stabilizers a single
//     fragment settles on its own (no anticommuting history, identity after
//     collapse, not trivial) and retires them from the flow container.
//   - MatchBoundaryStabilizers — matches one fragment boundary: merges
//     anticommuting flows on both sides, pairs equal creation/destruction
//     stabilizers 1:1, then covers the leftovers with disjoint combinations
//     from the opposite side. When the right side is a loop repeated more
//     than once, the result is checked against the loop's internal steady
//     state and a mismatch is a hard ErrLoopInconsistency.
//   - MatchDetectorsFromFlowsShallow — runs the two passes over an ordered
//     fragment sequence, attributing each boundary's detectors to the
//     fragment on its right. Loop blocks are treated as atomic: only the
//     first and last iterations' boundary effects are visible (shallow
//     matching; the engine does not recurse into middle iterations).
//
// Matching policy: greedy, first match wins. The 1:1 pass scans creation
// stabilizers in handle order and claims the first equal destruction
// stabilizer; the cover pass runs forward (left targets, right candidates)
// then backward over whatever the forward pass left live. Stabilizers
// consumed into a detector are retired by handle, so no stabilizer can ever
// feed two detectors.
//
// Offsets: measurement references count backward from "now". Crossing a
// boundary into the right fragment moves "now" past that fragment's
// measurements, so left-side references are shifted by -right.Measurements()
// before any comparison or union.
//
// Errors:
//
//   - ErrLoopInconsistency: loop boundary detectors differ from the loop's
//     steady state — the circuit's flows are not self-consistent. Never
//     recovered or suppressed.
//   - Validation failures from flows (unknown qubit, bad handle, offsets)
//     surface unchanged.
package match
