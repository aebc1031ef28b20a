package flows

import "fmt"

// Handle is a stable identifier of a boundary stabilizer inside one arena.
// Handles stay valid for the lifetime of the owning Flows value: consuming a
// stabilizer retires its handle without disturbing any other handle.
type Handle int

// Arena stores one flow list (creation or destruction) of a fragment.
// Stabilizers are never removed; they are retired by handle, and iteration
// only yields live entries. This replaces delete-by-index bookkeeping, where
// a removal shifts every later index.
type Arena struct {
	entries []*BoundaryStabilizer
	live    []bool
	alive   int
}

// newArena builds an arena over the given stabilizers, all live.
func newArena(entries []*BoundaryStabilizer) *Arena {
	a := &Arena{
		entries: make([]*BoundaryStabilizer, len(entries)),
		live:    make([]bool, len(entries)),
		alive:   len(entries),
	}
	copy(a.entries, entries)
	for i := range a.live {
		a.live[i] = true
	}

	return a
}

// Handles returns the live handles in ascending order.
func (a *Arena) Handles() []Handle {
	hs := make([]Handle, 0, a.alive)
	for i, live := range a.live {
		if live {
			hs = append(hs, Handle(i))
		}
	}

	return hs
}

// Len returns the number of live stabilizers.
func (a *Arena) Len() int { return a.alive }

// Size returns the number of stabilizers ever stored, live or retired.
func (a *Arena) Size() int { return len(a.entries) }

// At returns the stabilizer behind a live handle.
func (a *Arena) At(h Handle) (*BoundaryStabilizer, error) {
	if int(h) < 0 || int(h) >= len(a.entries) || !a.live[h] {
		return nil, fmt.Errorf("%w: handle %d", ErrBadHandle, h)
	}

	return a.entries[h], nil
}

// Consume retires a live handle. A stabilizer consumed into a detector must
// never be considered again; retiring enforces that at the container level.
func (a *Arena) Consume(h Handle) error {
	if int(h) < 0 || int(h) >= len(a.entries) || !a.live[h] {
		return fmt.Errorf("%w: handle %d", ErrBadHandle, h)
	}
	a.live[h] = false
	a.alive--

	return nil
}

// add appends a live stabilizer and returns its handle. Used by the
// anticommuting merge, which replaces a consumed group with its product.
func (a *Arena) add(b *BoundaryStabilizer) Handle {
	a.entries = append(a.entries, b)
	a.live = append(a.live, true)
	a.alive++

	return Handle(len(a.entries) - 1)
}

// clone returns a deep copy sharing nothing with the receiver.
func (a *Arena) clone() *Arena {
	c := &Arena{
		entries: make([]*BoundaryStabilizer, len(a.entries)),
		live:    make([]bool, len(a.live)),
		alive:   a.alive,
	}
	for i, b := range a.entries {
		c.entries[i] = b.Clone()
	}
	copy(c.live, a.live)

	return c
}
