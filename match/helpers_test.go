package match_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stabflow/stabflow/flows"
	"github.com/stabflow/stabflow/pauli"
)

// ps builds a PauliString or fails the test.
func ps(t *testing.T, terms map[int]pauli.Basis) pauli.PauliString {
	t.Helper()
	p, err := pauli.New(terms)
	require.NoError(t, err)

	return p
}

// stab builds a boundary stabilizer with before == after.
func stab(t *testing.T, content pauli.PauliString, anticommuting []int, ms []flows.Measurement) *flows.BoundaryStabilizer {
	t.Helper()
	bs, err := flows.NewBoundaryStabilizer(content, content, anticommuting, ms)
	require.NoError(t, err)

	return bs
}

// resolvedStab builds a stabilizer that collapsed to identity: non-trivial
// (its before-collapse content has weight) but fully resolved within its
// fragment.
func resolvedStab(t *testing.T, before pauli.PauliString, ms []flows.Measurement) *flows.BoundaryStabilizer {
	t.Helper()
	bs, err := flows.NewBoundaryStabilizer(before, pauli.PauliString{}, nil, ms)
	require.NoError(t, err)

	return bs
}

// fragment builds a plain fragment's flows or fails the test.
func fragment(t *testing.T, creation, destruction []*flows.BoundaryStabilizer, measurements int) *flows.Flows {
	t.Helper()
	f, err := flows.NewFragmentFlows(creation, destruction, measurements)
	require.NoError(t, err)

	return f
}

// grid is the coordinate table shared by the tests: qubit q sits at (q, 0).
func grid(qubits ...int) map[int][]float64 {
	table := make(map[int][]float64, len(qubits))
	for _, q := range qubits {
		table[q] = []float64{float64(q), 0}
	}

	return table
}
