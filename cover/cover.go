package cover

import (
	"math/bits"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/stabflow/stabflow/pauli"
)

// Options governs the cover search.
//
// Fields:
//   - Workers — number of goroutines allowed to explore root-level branches
//     concurrently. Values below 2 select the plain sequential search.
//     The result is identical either way; parallelism only trades CPU for
//     latency on large candidate sets.
type Options struct {
	Workers int
}

// DefaultOptions returns the sequential configuration.
func DefaultOptions() Options { return Options{Workers: 1} }

// Find searches for a subset of candidates whose phase-free product equals
// target. On success it returns the candidate indices in ascending order and
// true. The search is exhaustive and deterministic; a nil options pointer
// selects DefaultOptions. A weight-0 target is never covered (see package
// documentation).
func Find(target pauli.PauliString, candidates []pauli.PauliString, opts *Options) ([]int, bool) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if target.Weight() == 0 || len(candidates) == 0 {
		return nil, false
	}

	e := newEngine(target, candidates)
	if e == nil {
		return nil, false
	}
	if o.Workers > 1 {
		return e.searchParallel(o.Workers)
	}

	state := e.zeroVec()
	avail := make([]bool, len(candidates))
	for i := range avail {
		avail[i] = true
	}

	return e.search(state, avail, nil)
}

// vec packs a Pauli string into parallel (x, z) bit vectors: slot i of the
// universe occupies bit i of both vectors.
type vec struct {
	x, z []uint64
}

// engine holds the immutable search data. Searches share it read-only; all
// mutable state travels through the call stack, which is what makes the
// parallel root fan-out safe.
type engine struct {
	words  int
	target vec
	cand   []vec
	// touch[slot] lists, ascending, the candidates acting on that slot's
	// qubit. Branching only ever considers candidates from one such list.
	touch [][]int
}

// newEngine packs target and candidates over the union of their supports.
// Returns nil when the target acts on a qubit no candidate can reach, in
// which case no cover can exist.
func newEngine(target pauli.PauliString, candidates []pauli.PauliString) *engine {
	slotOf := make(map[int]int)
	universe := make([]int, 0)
	addQubits := func(p pauli.PauliString) {
		for _, q := range p.Qubits() {
			if _, ok := slotOf[q]; !ok {
				slotOf[q] = 0 // placeholder, assigned after sorting
				universe = append(universe, q)
			}
		}
	}
	addQubits(target)
	for _, c := range candidates {
		addQubits(c)
	}
	sort.Ints(universe)
	for i, q := range universe {
		slotOf[q] = i
	}

	e := &engine{words: (len(universe) + 63) / 64}
	e.target = e.pack(target, slotOf)
	e.cand = make([]vec, len(candidates))
	e.touch = make([][]int, len(universe))
	for i, c := range candidates {
		e.cand[i] = e.pack(c, slotOf)
		for _, q := range c.Qubits() {
			slot := slotOf[q]
			e.touch[slot] = append(e.touch[slot], i)
		}
	}
	for _, q := range target.Qubits() {
		if len(e.touch[slotOf[q]]) == 0 {
			return nil
		}
	}

	return e
}

// pack encodes p into a vec using the slot assignment.
func (e *engine) pack(p pauli.PauliString, slotOf map[int]int) vec {
	v := vec{x: make([]uint64, e.words), z: make([]uint64, e.words)}
	for _, q := range p.Qubits() {
		slot := slotOf[q]
		word, bit := slot/64, uint(slot%64)
		switch p.At(q) {
		case pauli.X:
			v.x[word] |= 1 << bit
		case pauli.Z:
			v.z[word] |= 1 << bit
		case pauli.Y:
			v.x[word] |= 1 << bit
			v.z[word] |= 1 << bit
		}
	}

	return v
}

func (e *engine) zeroVec() vec {
	return vec{x: make([]uint64, e.words), z: make([]uint64, e.words)}
}

// xor folds c into state in place. Applying the same candidate twice is a
// no-op, which is also how the search backtracks.
func (e *engine) xor(state vec, c int) {
	for w := 0; w < e.words; w++ {
		state.x[w] ^= e.cand[c].x[w]
		state.z[w] ^= e.cand[c].z[w]
	}
}

// firstMismatch returns the lowest slot where state differs from the target,
// or -1 when state already equals it.
func (e *engine) firstMismatch(state vec) int {
	for w := 0; w < e.words; w++ {
		diff := (state.x[w] ^ e.target.x[w]) | (state.z[w] ^ e.target.z[w])
		if diff != 0 {
			return w*64 + bits.TrailingZeros64(diff)
		}
	}

	return -1
}

// search explores covers extending `chosen`, branching on the candidates
// that act on the lowest mismatched slot. Candidates tried at this node are
// withheld from its deeper branches so each subset is visited exactly once.
func (e *engine) search(state vec, avail []bool, chosen []int) ([]int, bool) {
	slot := e.firstMismatch(state)
	if slot == -1 {
		result := make([]int, len(chosen))
		copy(result, chosen)
		sort.Ints(result)

		return result, true
	}

	tried := make([]int, 0, len(e.touch[slot]))
	for _, c := range e.touch[slot] {
		if !avail[c] {
			continue
		}
		avail[c] = false
		tried = append(tried, c)
		e.xor(state, c)
		if result, ok := e.search(state, avail, append(chosen, c)); ok {
			return result, true
		}
		e.xor(state, c)
	}
	for _, c := range tried {
		avail[c] = true
	}

	return nil, false
}

// searchParallel fans the root-level branches out across a bounded errgroup.
// Each branch mirrors the sequential exclusion rule (earlier root candidates
// are unavailable below later ones), so collecting the lowest successful
// branch reproduces the sequential answer exactly.
func (e *engine) searchParallel(workers int) ([]int, bool) {
	state := e.zeroVec()
	slot := e.firstMismatch(state)
	if slot == -1 {
		return nil, false // unreachable: weight-0 targets are rejected upfront
	}

	branches := e.touch[slot]
	results := make([][]int, len(branches))
	found := make([]bool, len(branches))

	var g errgroup.Group
	g.SetLimit(workers)
	for bi, c := range branches {
		g.Go(func() error {
			branchState := e.zeroVec()
			avail := make([]bool, len(e.cand))
			for i := range avail {
				avail[i] = true
			}
			for _, earlier := range branches[:bi] {
				avail[earlier] = false
			}
			avail[c] = false
			e.xor(branchState, c)
			results[bi], found[bi] = e.search(branchState, avail, []int{c})

			return nil
		})
	}
	_ = g.Wait() // branch workers never error

	for bi := range branches {
		if found[bi] {
			return results[bi], true
		}
	}

	return nil, false
}
