package match

import "errors"

// ErrLoopInconsistency indicates that the detectors matched at a loop's
// external boundary differ from the detectors matched between two consecutive
// iterations of the loop body. The flows are not self-consistent: either the
// circuit is not a valid error-correcting circuit, or the upstream flow
// propagation is wrong. The wrapped message carries both detector sets.
var ErrLoopInconsistency = errors.New("match: loop boundary detectors differ from loop steady state")
