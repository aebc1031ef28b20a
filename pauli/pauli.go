package pauli

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidBasis indicates a basis value outside {I, X, Y, Z}.
var ErrInvalidBasis = errors.New("pauli: basis must be one of I, X, Y, Z")

// Basis identifies a single-qubit Pauli term. The zero value I is the
// identity and never stored inside a PauliString.
type Basis uint8

const (
	// I is the single-qubit identity. Constructors drop I terms.
	I Basis = iota
	// X is the Pauli X operator.
	X
	// Y is the Pauli Y operator.
	Y
	// Z is the Pauli Z operator.
	Z
)

// String returns the one-letter name of the basis.
func (b Basis) String() string {
	switch b {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// xz returns the symplectic bit pair of the basis: X=(1,0), Z=(0,1), Y=(1,1).
func (b Basis) xz() (x, z bool) {
	return b == X || b == Y, b == Z || b == Y
}

// basisFromXZ is the inverse of Basis.xz.
func basisFromXZ(x, z bool) Basis {
	switch {
	case x && z:
		return Y
	case x:
		return X
	case z:
		return Z
	default:
		return I
	}
}

// PauliString is an immutable mapping from qubit identifier to a non-identity
// Pauli basis. The zero value is the identity string (weight 0) and is ready
// to use.
type PauliString struct {
	terms map[int]Basis
}

// New builds a PauliString from the provided terms. The map is copied, so the
// caller keeps ownership of its argument. Identity (I) entries are dropped;
// any value outside {I, X, Y, Z} yields ErrInvalidBasis.
func New(terms map[int]Basis) (PauliString, error) {
	copied := make(map[int]Basis, len(terms))
	for q, b := range terms {
		if b > Z {
			return PauliString{}, ErrInvalidBasis
		}
		if b == I {
			continue
		}
		copied[q] = b
	}

	return PauliString{terms: copied}, nil
}

// Weight returns the number of non-identity terms.
func (p PauliString) Weight() int { return len(p.terms) }

// At returns the basis acting on qubit q, or I if the string is identity there.
func (p PauliString) At(q int) Basis { return p.terms[q] }

// Qubits returns the qubit identifiers with a non-identity term, ascending.
func (p PauliString) Qubits() []int {
	qs := make([]int, 0, len(p.terms))
	for q := range p.terms {
		qs = append(qs, q)
	}
	sort.Ints(qs)

	return qs
}

// Equal reports whether both strings carry exactly the same terms.
func (p PauliString) Equal(o PauliString) bool {
	if len(p.terms) != len(o.terms) {
		return false
	}
	for q, b := range p.terms {
		if o.terms[q] != b {
			return false
		}
	}

	return true
}

// Mul returns the phase-free product of the two strings. Equal bases on the
// same qubit cancel to identity; distinct bases compose to the remaining one.
func (p PauliString) Mul(o PauliString) PauliString {
	product := make(map[int]Basis, len(p.terms)+len(o.terms))
	for q, b := range p.terms {
		product[q] = b
	}
	for q, b := range o.terms {
		px, pz := product[q].xz()
		ox, oz := b.xz()
		combined := basisFromXZ(px != ox, pz != oz)
		if combined == I {
			delete(product, q)
		} else {
			product[q] = combined
		}
	}

	return PauliString{terms: product}
}

// CommutesWith reports whether the two strings commute as operators: they do
// iff the number of qubits where both act with distinct non-identity bases
// is even.
func (p PauliString) CommutesWith(o PauliString) bool {
	anticommuting := 0
	for q, b := range p.terms {
		ob, ok := o.terms[q]
		if ok && ob != b {
			anticommuting++
		}
	}

	return anticommuting%2 == 0
}

// String renders the terms in ascending qubit order, e.g. "X0*Z3". The
// identity string renders as "I".
func (p PauliString) String() string {
	if len(p.terms) == 0 {
		return "I"
	}
	var sb strings.Builder
	for i, q := range p.Qubits() {
		if i > 0 {
			sb.WriteByte('*')
		}
		sb.WriteString(p.terms[q].String())
		sb.WriteString(strconv.Itoa(q))
	}

	return sb.String()
}
