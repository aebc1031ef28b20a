package flows_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
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

// stab builds a boundary stabilizer with before == after, which is the
// common shape in these tests.
func stab(t *testing.T, content pauli.PauliString, anticommuting []int, ms []flows.Measurement) *flows.BoundaryStabilizer {
	t.Helper()
	bs, err := flows.NewBoundaryStabilizer(content, content, anticommuting, ms)
	require.NoError(t, err)

	return bs
}

// TestNewBoundaryStabilizer_RejectsNonNegativeOffsets verifies offset
// validation at the API boundary.
func TestNewBoundaryStabilizer_RejectsNonNegativeOffsets(t *testing.T) {
	content := ps(t, map[int]pauli.Basis{0: pauli.Z})
	_, err := flows.NewBoundaryStabilizer(content, content, nil,
		[]flows.Measurement{{Qubit: 0, Offset: 0}})
	assert.ErrorIs(t, err, flows.ErrMeasurementOffset, "offset 0 must be rejected")

	_, err = flows.NewBoundaryStabilizer(content, content, nil,
		[]flows.Measurement{{Qubit: 0, Offset: 2}})
	assert.ErrorIs(t, err, flows.ErrMeasurementOffset, "positive offsets must be rejected")
}

// TestBoundaryStabilizer_IsTrivial verifies the triviality predicate: both
// contents identity and no anticommuting history.
func TestBoundaryStabilizer_IsTrivial(t *testing.T) {
	identity := pauli.PauliString{}
	z0 := ps(t, map[int]pauli.Basis{0: pauli.Z})

	trivial, err := flows.NewBoundaryStabilizer(identity, identity, nil, nil)
	require.NoError(t, err)
	assert.True(t, trivial.IsTrivial())

	resolved, err := flows.NewBoundaryStabilizer(z0, identity, nil,
		[]flows.Measurement{{Qubit: 0, Offset: -1}})
	require.NoError(t, err)
	assert.False(t, resolved.IsTrivial(), "weight before collapse keeps it non-trivial")

	anticommuting, err := flows.NewBoundaryStabilizer(identity, identity, []int{3}, nil)
	require.NoError(t, err)
	assert.False(t, anticommuting.IsTrivial(), "anticommuting history keeps it non-trivial")
}

// TestBoundaryStabilizer_WithMeasurementOffset verifies shifting and its
// window validation.
func TestBoundaryStabilizer_WithMeasurementOffset(t *testing.T) {
	bs := stab(t, ps(t, map[int]pauli.Basis{0: pauli.Z}), nil,
		[]flows.Measurement{{Qubit: 0, Offset: -1}, {Qubit: 1, Offset: -2}})

	shifted, err := bs.WithMeasurementOffset(-3)
	require.NoError(t, err)
	assert.Equal(t, []flows.Measurement{{Qubit: 1, Offset: -5}, {Qubit: 0, Offset: -4}},
		shifted.Measurements(), "all references shift by the same delta")
	assert.Equal(t, []flows.Measurement{{Qubit: 1, Offset: -2}, {Qubit: 0, Offset: -1}},
		bs.Measurements(), "the receiver is unchanged")

	_, err = bs.WithMeasurementOffset(+1)
	assert.ErrorIs(t, err, flows.ErrMeasurementOffset, "shifting to offset 0 must fail")
}

// TestBoundaryStabilizer_MergedWith verifies the product semantics: Pauli
// contents multiply, measurements union, anticommuting signatures cancel.
func TestBoundaryStabilizer_MergedWith(t *testing.T) {
	a := stab(t, ps(t, map[int]pauli.Basis{0: pauli.X}), []int{3, 5},
		[]flows.Measurement{{Qubit: 0, Offset: -1}})
	b := stab(t, ps(t, map[int]pauli.Basis{1: pauli.X}), []int{5, 7},
		[]flows.Measurement{{Qubit: 0, Offset: -1}, {Qubit: 1, Offset: -2}})

	merged := a.MergedWith(b)
	assert.True(t, merged.AfterCollapse().Equal(ps(t, map[int]pauli.Basis{0: pauli.X, 1: pauli.X})))
	assert.Equal(t, []int{3, 7}, merged.AnticommutingWith(), "shared op 5 cancels")
	assert.Equal(t, []flows.Measurement{{Qubit: 1, Offset: -2}, {Qubit: 0, Offset: -1}},
		merged.Measurements(), "measurements union under set semantics")
}

// TestBoundaryStabilizer_Coordinates verifies the component-wise mean and
// both lookup failure modes.
func TestBoundaryStabilizer_Coordinates(t *testing.T) {
	bs := stab(t, ps(t, map[int]pauli.Basis{0: pauli.Z, 1: pauli.Z}), nil,
		[]flows.Measurement{{Qubit: 0, Offset: -2}, {Qubit: 1, Offset: -1}})

	coords, err := bs.Coordinates(map[int][]float64{0: {0, 0}, 1: {2, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5}, coords)

	_, err = bs.Coordinates(map[int][]float64{0: {0, 0}})
	assert.ErrorIs(t, err, flows.ErrUnknownQubit)

	_, err = bs.Coordinates(map[int][]float64{0: {0, 0}, 1: {2}})
	assert.ErrorIs(t, err, flows.ErrCoordinateArity)
}

// TestNewFragmentFlows_Validation verifies the constructor's argument checks.
func TestNewFragmentFlows_Validation(t *testing.T) {
	_, err := flows.NewFragmentFlows(nil, nil, -1)
	assert.ErrorIs(t, err, flows.ErrNegativeMeasurementCount)

	deep := stab(t, ps(t, map[int]pauli.Basis{0: pauli.Z}), nil,
		[]flows.Measurement{{Qubit: 0, Offset: -3}})
	_, err = flows.NewFragmentFlows(nil, []*flows.BoundaryStabilizer{deep}, 2)
	assert.ErrorIs(t, err, flows.ErrMeasurementOffset,
		"offset -3 cannot fit a 2-measurement window")

	f, err := flows.NewFragmentFlows(nil, []*flows.BoundaryStabilizer{deep}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Measurements())
	assert.False(t, f.IsLoop())
}

// TestNewLoopFlows_Validation verifies loop construction and the derived
// measurement count.
func TestNewLoopFlows_Validation(t *testing.T) {
	body, err := flows.NewFragmentFlows(nil, nil, 4)
	require.NoError(t, err)

	_, err = flows.NewLoopFlows([]*flows.Flows{body}, 0, nil, nil)
	assert.ErrorIs(t, err, flows.ErrBadRepeat)

	_, err = flows.NewLoopFlows(nil, 2, nil, nil)
	assert.ErrorIs(t, err, flows.ErrEmptyLoopBody)

	loop, err := flows.NewLoopFlows([]*flows.Flows{body}, 5, nil, nil)
	require.NoError(t, err)
	assert.True(t, loop.IsLoop())
	assert.Equal(t, 5, loop.Repeat())
	assert.Equal(t, 4, loop.Measurements(), "loop measurements are one body iteration's total")
}

// TestArena_HandlesAndConsume verifies the stable-handle protocol: consuming
// one entry never disturbs the others, and a retired handle is rejected.
func TestArena_HandlesAndConsume(t *testing.T) {
	z := ps(t, map[int]pauli.Basis{0: pauli.Z})
	f, err := flows.NewFragmentFlows([]*flows.BoundaryStabilizer{
		stab(t, z, nil, nil),
		stab(t, ps(t, map[int]pauli.Basis{1: pauli.Z}), nil, nil),
		stab(t, ps(t, map[int]pauli.Basis{2: pauli.Z}), nil, nil),
	}, nil, 0)
	require.NoError(t, err)

	arena := f.Creation()
	require.Equal(t, []flows.Handle{0, 1, 2}, arena.Handles())

	require.NoError(t, arena.Consume(1))
	assert.Equal(t, []flows.Handle{0, 2}, arena.Handles(), "surviving handles keep their values")
	assert.Equal(t, 2, arena.Len())
	assert.Equal(t, 3, arena.Size())

	_, err = arena.At(1)
	assert.ErrorIs(t, err, flows.ErrBadHandle, "reading a retired handle must fail")
	assert.ErrorIs(t, arena.Consume(1), flows.ErrBadHandle, "double consumption must fail")
	assert.ErrorIs(t, arena.Consume(17), flows.ErrBadHandle, "out-of-range handle must fail")

	survivor, err := arena.At(2)
	require.NoError(t, err)
	assert.True(t, survivor.AfterCollapse().Equal(ps(t, map[int]pauli.Basis{2: pauli.Z})))
}

// TestFlows_CloneIsolation verifies that clones share no mutable state with
// the original: the sanity check depends on this.
func TestFlows_CloneIsolation(t *testing.T) {
	f, err := flows.NewFragmentFlows(
		[]*flows.BoundaryStabilizer{stab(t, ps(t, map[int]pauli.Basis{0: pauli.Z}), nil, nil)},
		[]*flows.BoundaryStabilizer{stab(t, ps(t, map[int]pauli.Basis{0: pauli.Z}), nil,
			[]flows.Measurement{{Qubit: 0, Offset: -1}})},
		1)
	require.NoError(t, err)

	clone := f.Clone()
	require.NoError(t, clone.Creation().Consume(0))
	require.NoError(t, clone.Destruction().Consume(0))

	assert.Equal(t, 1, f.Creation().Len(), "consuming in the clone must not touch the original")
	assert.Equal(t, 1, f.Destruction().Len())
	assert.Equal(t, 0, clone.Creation().Len())
}
