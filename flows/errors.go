package flows

import "errors"

var (
	// ErrNegativeMeasurementCount indicates a fragment declared a negative
	// total number of measurements.
	ErrNegativeMeasurementCount = errors.New("flows: total number of measurements must be non-negative")
	// ErrMeasurementOffset indicates a measurement record offset that is not
	// strictly negative or points before the fragment's record window.
	ErrMeasurementOffset = errors.New("flows: measurement offset outside fragment record window")
	// ErrBadRepeat indicates a loop block with a repetition count below 1.
	ErrBadRepeat = errors.New("flows: loop repetition count must be at least 1")
	// ErrEmptyLoopBody indicates a loop block without body fragments.
	ErrEmptyLoopBody = errors.New("flows: loop body must contain at least one fragment")
	// ErrBadHandle indicates an arena access through a retired or
	// out-of-range handle.
	ErrBadHandle = errors.New("flows: handle is retired or out of range")
	// ErrUnknownQubit indicates a qubit identifier missing from the
	// coordinate table.
	ErrUnknownQubit = errors.New("flows: qubit has no entry in the coordinate table")
	// ErrCoordinateArity indicates coordinate tuples of differing lengths.
	ErrCoordinateArity = errors.New("flows: qubit coordinate tuples must share one length")
)
