// Package cover decides whether a subset of candidate Pauli strings
// multiplies to exactly equal a target Pauli string (a "disjoint cover":
// every candidate is used at most once).
//
// What:
//
//   - Find(target, candidates, opts) returns the index subset forming a
//     cover, or reports that none exists. The result is deterministic: the
//     search branches in a fixed order and the first cover found along that
//     order is returned, so equal inputs always yield equal outputs.
//
// How:
//
//	Depth-first search with a dedicated engine struct. Candidate and target
//	strings are packed into dense (x, z) bit vectors over the union of their
//	supports, so applying a candidate is a word-wise XOR. At every node the
//	engine locates the lowest-indexed qubit where the accumulated product
//	still differs from the target; only candidates acting on that qubit can
//	make progress, so branching is restricted to them. Candidates already
//	tried at a node are excluded from its deeper branches, which removes
//	permuted duplicates without losing completeness.
//
//	Options.Workers > 1 fans the root-level branches out across a bounded
//	errgroup; each branch searches independently and the cover from the
//	lowest root branch wins, keeping the parallel result identical to the
//	sequential one. The search is a pure query — it never mutates its
//	inputs — so parallelism is safe by construction.
//
// Complexity: worst case exponential in the number of candidates (the
// problem is a subset search); the lowest-mismatch branching rule prunes
// heavily on the sparse, low-weight stabilizers seen in practice. Memory is
// O(candidates × qubits / 64) for the packed vectors.
//
// The empty target has no cover by definition: a weight-0 target would be
// "covered" by the empty subset, which would let trivial stabilizers form
// vacuous detectors downstream. Find returns not-found for it.
package cover
