package match_test

import (
	"fmt"

	"github.com/stabflow/stabflow/flows"
	"github.com/stabflow/stabflow/match"
	"github.com/stabflow/stabflow/pauli"
)

// ExampleMatchBoundaryStabilizers demonstrates the simplest detector: a
// qubit reset in one fragment and measured, in the same basis, in the next.
func ExampleMatchBoundaryStabilizers() {
	z0, err := pauli.New(map[int]pauli.Basis{0: pauli.Z})
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	// Left fragment: the reset pushes a Z stabilizer forward to the boundary.
	created, err := flows.NewBoundaryStabilizer(z0, z0, nil, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	left, err := flows.NewFragmentFlows([]*flows.BoundaryStabilizer{created}, nil, 0)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	// Right fragment: the measurement pulls the same stabilizer backward.
	destroyed, err := flows.NewBoundaryStabilizer(z0, z0, nil,
		[]flows.Measurement{{Qubit: 0, Offset: -1}})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	right, err := flows.NewFragmentFlows(nil, []*flows.BoundaryStabilizer{destroyed}, 1)
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	detectors, err := match.MatchBoundaryStabilizers(left, right,
		map[int][]float64{0: {1.5, 0}}, nil)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	for _, d := range detectors {
		fmt.Println(d)
	}
	// Output:
	// Detector(1.5, 0)[q0@rec[-1]]
}
