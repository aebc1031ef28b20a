package flows

import "fmt"

// Measurement references one entry of the global measurement record: the
// qubit the measurement acted on and a strictly negative offset counted
// backward from the end of the record ("rec[-1]" is the most recent
// measurement). Measurement is a comparable value type: it can key maps and
// is compared with ==.
type Measurement struct {
	Qubit  int
	Offset int
}

// OffsetBy returns a copy shifted by delta. Shifting happens when fragments
// are concatenated: including a later fragment's measurements pushes "now"
// forward, so earlier references move deeper into the record.
func (m Measurement) OffsetBy(delta int) Measurement {
	return Measurement{Qubit: m.Qubit, Offset: m.Offset + delta}
}

// String renders the reference in record notation, e.g. "q3@rec[-2]".
func (m Measurement) String() string {
	return fmt.Sprintf("q%d@rec[%d]", m.Qubit, m.Offset)
}
