// Package pauli implements phase-free Pauli-string algebra over integer
// qubit identifiers.
//
// What:
//
//   - Basis — one of X, Y, Z (identity is the absence of a term).
//   - PauliString — an immutable qubit→Basis mapping; identity qubits are
//     simply absent. Equality is mapping equality, weight is the number of
//     non-identity terms.
//   - Mul combines two strings term by term: equal bases cancel to identity,
//     distinct bases compose to the third one (X·Z = Y and so on). Global
//     phases are irrelevant for flow matching and are not tracked.
//   - CommutesWith reports whether two strings commute, counting the parity
//     of anticommuting per-qubit overlaps.
//
// Why:
//
//	Boundary-stabilizer matching is pure symbolic algebra on Pauli strings:
//	two flows form a detector when their strings are equal, and a group of
//	flows covers a target when their product equals it. Every higher layer
//	of the module reduces to the handful of operations defined here.
//
// Internally a term is encoded as an (x, z) bit pair — X=(1,0), Z=(0,1),
// Y=(1,1) — so that multiplication is a per-qubit XOR and commutation is a
// symplectic inner product.
//
// Complexity: all operations are O(weight) time and memory.
//
// Errors:
//
//   - ErrInvalidBasis: a constructor received a value outside {I, X, Y, Z}.
package pauli
