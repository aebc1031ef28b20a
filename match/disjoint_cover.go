package match

import (
	"github.com/stabflow/stabflow/cover"
	"github.com/stabflow/stabflow/flows"
	"github.com/stabflow/stabflow/pauli"
)

// eligible pairs a stabilizer prepared for the cover search with the handle
// it came from, so consumption always targets the owning arena. Filtered
// views never carry bare indices back to the original lists.
type eligible struct {
	handle flows.Handle
	bs     *flows.BoundaryStabilizer
}

// matchByDisjointCover matches the stabilizers the 1:1 pass left behind by
// covering them with disjoint combinations from the opposite side. Forward
// pass: each left creation stabilizer against combinations of right
// destruction stabilizers. Backward pass: each right destruction stabilizer
// against combinations of whatever the forward pass left live on the left.
// Only commuting stabilizers are eligible on either side; left references
// are shifted past the right fragment's measurements before searching.
func matchByDisjointCover(left, right *flows.Flows, qubitCoords map[int][]float64, copts cover.Options) ([]MatchedDetector, error) {
	shift := -right.Measurements()

	leftEligible := make([]eligible, 0, left.Creation().Len())
	for _, h := range left.Creation().Handles() {
		bs, err := left.Creation().At(h)
		if err != nil {
			return nil, err
		}
		if bs.HasAnticommuting() {
			continue
		}
		shifted, err := bs.WithMeasurementOffset(shift)
		if err != nil {
			return nil, err
		}
		leftEligible = append(leftEligible, eligible{handle: h, bs: shifted})
	}

	rightEligible := make([]eligible, 0, right.Destruction().Len())
	for _, h := range right.Destruction().Handles() {
		bs, err := right.Destruction().At(h)
		if err != nil {
			return nil, err
		}
		if bs.HasAnticommuting() {
			continue
		}
		rightEligible = append(rightEligible, eligible{handle: h, bs: bs})
	}

	// No candidates on one side means nothing to cover with; one candidate
	// on each side was already either matched or rejected by the 1:1 pass.
	if len(leftEligible) == 0 || len(rightEligible) == 0 {
		return nil, nil
	}
	if len(leftEligible) == 1 && len(rightEligible) == 1 {
		return nil, nil
	}

	forward, usedLeft, err := coverTargets(leftEligible, rightEligible, qubitCoords, copts)
	if err != nil {
		return nil, err
	}
	remainingLeft := make([]eligible, 0, len(leftEligible))
	usedAt := make(map[int]bool, len(usedLeft))
	for _, i := range usedLeft {
		usedAt[i] = true
	}
	for i, e := range leftEligible {
		if usedAt[i] {
			if err := left.Creation().Consume(e.handle); err != nil {
				return nil, err
			}

			continue
		}
		remainingLeft = append(remainingLeft, e)
	}

	backward, usedRight, err := coverTargets(rightEligible, remainingLeft, qubitCoords, copts)
	if err != nil {
		return nil, err
	}
	for _, i := range usedRight {
		if err := right.Destruction().Consume(rightEligible[i].handle); err != nil {
			return nil, err
		}
	}

	return append(forward, backward...), nil
}

// coverTargets tries to cover each target with a disjoint combination of the
// covering stabilizers. Covered targets become detectors (coordinates from
// the target, measurements from the target plus every covering member) and
// are reported by their position in targets; covering stabilizers are a
// read-only pool and are never consumed here.
func coverTargets(targets, covering []eligible, qubitCoords map[int][]float64, copts cover.Options) ([]MatchedDetector, []int, error) {
	candidates := make([]pauli.PauliString, len(covering))
	for i, e := range covering {
		candidates[i] = e.bs.AfterCollapse()
	}

	var (
		detectors []MatchedDetector
		used      []int
	)
	for i, target := range targets {
		chosen, ok := cover.Find(target.bs.AfterCollapse(), candidates, &copts)
		if !ok {
			continue
		}
		measurements := target.bs.Measurements()
		for _, ci := range chosen {
			measurements = append(measurements, covering[ci].bs.Measurements()...)
		}
		coords, err := target.bs.Coordinates(qubitCoords)
		if err != nil {
			return nil, nil, err
		}
		detectors = append(detectors, NewMatchedDetector(coords, measurements))
		used = append(used, i)
	}

	return detectors, used, nil
}
