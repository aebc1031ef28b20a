// Package stabflow extracts detectors — deterministic-parity measurement
// sets — from the stabilizer flows of quantum error-correcting circuits.
//
// A circuit is fragmented at its global reset/measurement boundaries. An
// external propagation pass reduces each fragment to two lists of boundary
// stabilizers: "creation" flows pushed forward from resets and "destruction"
// flows pulled backward from measurements. stabflow takes it from there:
// it matches creation flows against destruction flows at every fragment
// boundary and reports, per fragment, the measurement sets whose parity is
// deterministic in the absence of errors.
//
// The work is organized under four subpackages:
//
//	pauli/ — phase-free Pauli-string algebra (qubit→basis maps, products, weight)
//	flows/ — boundary stabilizers, per-fragment flow containers, loop flows
//	cover/ — exact-cover search: which candidate subset multiplies to a target
//	match/ — the matching engine: intra-fragment, 1:1, disjoint-cover, loops
//
// Everything is synchronous, in-memory and deterministic: no I/O, no hidden
// state, explicit errors. Flow containers handed to the matching engine are
// mutated in place (consumed stabilizers are retired) and must be treated as
// exclusively owned by the pipeline for the duration of a matching call.
//
// Quick sketch (repetition-code flavored):
//
//	init round ──► creation Z0 ─┐
//	                            ├─ boundary match ⇒ detector {rec[-1]}
//	QEC round  ──► destruction Z0 (rec[-1])
//
// See examples/ for a runnable end-to-end walkthrough.
package stabflow
