package match

import (
	"fmt"

	"github.com/stabflow/stabflow/cover"
	"github.com/stabflow/stabflow/flows"
)

// Options governs a matching run.
//
// Fields:
//   - SanityCheck — when the right side of a boundary is a loop repeated
//     more than once, pre-compute the loop's internal steady-state detectors
//     on clones and fail with ErrLoopInconsistency if the boundary result
//     differs. Enabled by default; disable only when the flows are already
//     known consistent and the clone cost matters.
//   - Cover — configuration forwarded to the exact-cover search.
type Options struct {
	SanityCheck bool
	Cover       cover.Options
}

// DefaultOptions enables the sanity check and the sequential cover search.
func DefaultOptions() Options {
	return Options{SanityCheck: true, Cover: cover.DefaultOptions()}
}

// MatchDetectorsWithinFragment finds and retires every boundary stabilizer
// the fragment resolves on its own: no anticommuting history, identity after
// collapse, and not the vacuous trivial stabilizer. Both the creation and
// destruction lists are scanned independently. The flow container is mutated
// in place; the number of retired stabilizers always equals the number of
// detectors returned.
func MatchDetectorsWithinFragment(f *flows.Flows, qubitCoords map[int][]float64) ([]MatchedDetector, error) {
	detectors, err := matchNonPropagating(f.Creation(), qubitCoords)
	if err != nil {
		return nil, err
	}
	fromDestruction, err := matchNonPropagating(f.Destruction(), qubitCoords)
	if err != nil {
		return nil, err
	}

	return append(detectors, fromDestruction...), nil
}

// matchNonPropagating scans one arena in handle order and retires the fully
// collapsed, non-trivial, commuting stabilizers as single-fragment detectors.
func matchNonPropagating(a *flows.Arena, qubitCoords map[int][]float64) ([]MatchedDetector, error) {
	var detectors []MatchedDetector
	for _, h := range a.Handles() {
		bs, err := a.At(h)
		if err != nil {
			return nil, err
		}
		if bs.IsTrivial() || bs.HasAnticommuting() || bs.AfterCollapse().Weight() != 0 {
			continue
		}
		coords, err := bs.Coordinates(qubitCoords)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, NewMatchedDetector(coords, bs.Measurements()))
		if err := a.Consume(h); err != nil {
			return nil, err
		}
	}

	return detectors, nil
}

// MatchBoundaryStabilizers matches detectors at the boundary between two
// adjacent fragments: creation stabilizers propagated forward out of left
// against destruction stabilizers propagated backward out of right.
//
// Steps, in order: the loop steady-state pre-computation (on clones, when
// right is a loop with Repeat > 1 and the sanity check is enabled), the
// anticommuting merge on both sides, the 1:1 matcher, the disjoint-cover
// matcher, and finally the steady-state comparison. Both flow containers are
// mutated in place as stabilizers are consumed. A nil options pointer selects
// DefaultOptions.
func MatchBoundaryStabilizers(left, right *flows.Flows, qubitCoords map[int][]float64, opts *Options) ([]MatchedDetector, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	// The steady state of a valid loop: detectors between two consecutive
	// body iterations. Computed first, on clones, because matching consumes
	// stabilizers from the real containers.
	var steadyState []MatchedDetector
	checkLoop := o.SanityCheck && right.IsLoop() && right.Repeat() > 1
	if checkLoop {
		body := right.Body()
		last, first := body[len(body)-1].Clone(), body[0].Clone()
		var err error
		steadyState, err = MatchBoundaryStabilizers(last, first, qubitCoords, &o)
		if err != nil {
			return nil, err
		}
	}

	// Merging before matching keeps the pipeline single-pass: the merge only
	// looks at anticommuting stabilizers, so its cost is the same on either
	// side of a first matching round.
	left.TryMergeAnticommutingFlows()
	right.TryMergeAnticommutingFlows()

	detectors, err := matchCommuteStabilizers(left, right, qubitCoords)
	if err != nil {
		return nil, err
	}
	covered, err := matchByDisjointCover(left, right, qubitCoords, o.Cover)
	if err != nil {
		return nil, err
	}
	detectors = append(detectors, covered...)

	if checkLoop && !sameDetectorSet(steadyState, detectors) {
		return nil, fmt.Errorf("%w:\nleft flows: %v\nright flows: %v\nboundary detectors:\n%s\nsteady-state detectors:\n%s",
			ErrLoopInconsistency, left, right,
			renderDetectors(detectors), renderDetectors(steadyState))
	}

	return detectors, nil
}

// matchCommuteStabilizers pairs creation and destruction stabilizers 1:1:
// equal after-collapse content, neither side anticommuting. Greedy policy,
// first match wins; consumption is collected during the scan and applied to
// both arenas afterwards in one step.
func matchCommuteStabilizers(left, right *flows.Flows, qubitCoords map[int][]float64) ([]MatchedDetector, error) {
	shift := -right.Measurements()

	var (
		detectors     []MatchedDetector
		leftConsumed  []flows.Handle
		rightConsumed []flows.Handle
	)
	rightClaimed := make(map[flows.Handle]bool)

	for _, lh := range left.Creation().Handles() {
		creation, err := left.Creation().At(lh)
		if err != nil {
			return nil, err
		}
		if creation.HasAnticommuting() {
			continue
		}
		for _, rh := range right.Destruction().Handles() {
			if rightClaimed[rh] {
				continue
			}
			destruction, err := right.Destruction().At(rh)
			if err != nil {
				return nil, err
			}
			if destruction.HasAnticommuting() {
				continue
			}
			if !creation.AfterCollapse().Equal(destruction.AfterCollapse()) {
				continue
			}

			// A match. Left references are shifted past the right fragment's
			// measurements before joining the detector.
			shifted, err := creation.WithMeasurementOffset(shift)
			if err != nil {
				return nil, err
			}
			coords, err := destruction.Coordinates(qubitCoords)
			if err != nil {
				return nil, err
			}
			detectors = append(detectors, NewMatchedDetector(
				coords, append(shifted.Measurements(), destruction.Measurements()...)))
			leftConsumed = append(leftConsumed, lh)
			rightConsumed = append(rightConsumed, rh)
			rightClaimed[rh] = true

			// The creation stabilizer is claimed; no point scanning further.
			break
		}
	}

	for _, h := range leftConsumed {
		if err := left.Creation().Consume(h); err != nil {
			return nil, err
		}
	}
	for _, h := range rightConsumed {
		if err := right.Destruction().Consume(h); err != nil {
			return nil, err
		}
	}

	return detectors, nil
}

// MatchDetectorsFromFlowsShallow matches detectors across an ordered
// fragment sequence: first each fragment on its own, then every adjacent
// boundary, attributing boundary detectors to the fragment on the right.
// The returned lists are index-aligned with the input.
//
// The search is shallow: a loop block is one atomic fragment. Resets in the
// last body fragment and measurements in the first are accounted for, but
// the engine never recurses into intermediate iterations — a loop whose body
// is a single QEC round is matched exactly.
func MatchDetectorsFromFlowsShallow(fragmentFlows []*flows.Flows, qubitCoords map[int][]float64, opts *Options) ([][]MatchedDetector, error) {
	detectors := make([][]MatchedDetector, len(fragmentFlows))
	for i, f := range fragmentFlows {
		ds, err := MatchDetectorsWithinFragment(f, qubitCoords)
		if err != nil {
			return nil, err
		}
		detectors[i] = ds
	}
	for i := 1; i < len(fragmentFlows); i++ {
		ds, err := MatchBoundaryStabilizers(fragmentFlows[i-1], fragmentFlows[i], qubitCoords, opts)
		if err != nil {
			return nil, fmt.Errorf("boundary between fragments %d and %d: %w", i-1, i, err)
		}
		detectors[i] = append(detectors[i], ds...)
	}

	return detectors, nil
}
