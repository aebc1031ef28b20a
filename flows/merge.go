package flows

import (
	"github.com/stabflow/stabflow/cover"
	"github.com/stabflow/stabflow/pauli"
)

// TryMergeAnticommutingFlows tries, independently within the creation and
// destruction lists, to combine stabilizers that individually anticommute
// with a collapsing operation into a product that does not.
//
// Two (or more) stabilizers anticommuting with exactly the same collapse
// operations multiply into a stabilizer that commutes with all of them:
// anticommuting signatures cancel pairwise. Finding such a group is an exact
// cover over the signatures, so the search is delegated to the cover solver
// with each signature encoded as a Z-type Pauli string over the collapse
// operation ids (products of equal Z terms cancel exactly like the XOR of
// signature sets).
//
// Merged groups are consumed and replaced by their product; the scan repeats
// until no further group can be merged. Stabilizers left anticommuting after
// the fixpoint stay in place — the matchers simply skip them.
func (f *Flows) TryMergeAnticommutingFlows() {
	mergeAnticommuting(f.creation)
	mergeAnticommuting(f.destruction)
}

// mergeAnticommuting runs the merge fixpoint on one arena.
func mergeAnticommuting(a *Arena) {
	for merged := true; merged; {
		merged = false

		anticommuting := make([]Handle, 0)
		for _, h := range a.Handles() {
			bs, err := a.At(h)
			if err != nil {
				continue
			}
			if bs.HasAnticommuting() {
				anticommuting = append(anticommuting, h)
			}
		}
		if len(anticommuting) < 2 {
			return
		}

		for ti, target := range anticommuting {
			others := make([]Handle, 0, len(anticommuting)-1)
			candidates := make([]pauli.PauliString, 0, len(anticommuting)-1)
			for oi, h := range anticommuting {
				if oi == ti {
					continue
				}
				bs, _ := a.At(h)
				others = append(others, h)
				candidates = append(candidates, signatureOf(bs))
			}

			targetStab, _ := a.At(target)
			chosen, ok := cover.Find(signatureOf(targetStab), candidates, nil)
			if !ok {
				continue
			}

			product := targetStab
			for _, ci := range chosen {
				member, _ := a.At(others[ci])
				product = product.MergedWith(member)
			}
			if product.HasAnticommuting() {
				// Signature arithmetic guarantees this cannot happen; skip
				// rather than inject a still-anticommuting product.
				continue
			}
			_ = a.Consume(target)
			for _, ci := range chosen {
				_ = a.Consume(others[ci])
			}
			a.add(product)
			merged = true

			break
		}
	}
}

// signatureOf encodes a stabilizer's anticommuting collapse set as a Z-type
// Pauli string keyed by collapse-operation id.
func signatureOf(b *BoundaryStabilizer) pauli.PauliString {
	terms := make(map[int]pauli.Basis, len(b.anticommuting))
	for _, op := range b.anticommuting {
		terms[op] = pauli.Z
	}
	sig, _ := pauli.New(terms) // Z terms only, cannot fail

	return sig
}
