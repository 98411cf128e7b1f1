package pizza

// Handle is a stable reference to an entity in a World.
// A handle goes stale when its entity is removed; stale handles never
// resolve again, even after the slot is reused.
type Handle struct {
	Index int
	Gen   uint32
}

// NoHandle refers to nothing.
var NoHandle = Handle{Index: -1}

type slot struct {
	gen uint32
	seq uint64  // value of World.seq when the entity was added
	e   *Entity // nil while the slot is free
}

// World is the arena holding every live entity.
// It is owned by a single session and is not safe for concurrent use.
type World struct {
	slots    []slot
	free     []int
	released []int // freed since the last Drain, not yet reusable
	seq      uint64

	created []Handle
	removed []Handle
}

// NewWorld creates an empty arena.
func NewWorld() *World {
	return &World{
		slots: make([]slot, 0, 64),
	}
}

// Add stores an entity and returns its handle.
func (w *World) Add(e Entity) Handle {
	ent := e
	w.seq++
	var idx int
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
		w.slots[idx].e = &ent
		w.slots[idx].seq = w.seq
	} else {
		idx = len(w.slots)
		w.slots = append(w.slots, slot{seq: w.seq, e: &ent})
	}
	h := Handle{Index: idx, Gen: w.slots[idx].gen}
	w.created = append(w.created, h)
	return h
}

// Get returns the entity behind a handle.
// The pointer stays valid until the entity is removed.
func (w *World) Get(h Handle) (*Entity, bool) {
	if h.Index < 0 || h.Index >= len(w.slots) {
		return nil, false
	}
	s := w.slots[h.Index]
	if s.e == nil || s.gen != h.Gen {
		return nil, false
	}
	return s.e, true
}

// Alive reports whether the handle still refers to a live entity.
func (w *World) Alive(h Handle) bool {
	_, ok := w.Get(h)
	return ok
}

// Remove deletes an entity. Removing a stale handle is a no-op.
// Returns true if something was removed.
func (w *World) Remove(h Handle) bool {
	if !w.Alive(h) {
		return false
	}
	w.slots[h.Index].e = nil
	w.slots[h.Index].gen++
	w.released = append(w.released, h.Index)
	w.removed = append(w.removed, h)
	return true
}

// Each calls fn for every live entity of the given kind, in slot order.
// Entities added during iteration are not visited, even in reused slots;
// entities removed during iteration are skipped. Iteration stops when fn
// returns false.
func (w *World) Each(kind Kind, fn func(h Handle, e *Entity) bool) {
	n, seq := len(w.slots), w.seq
	for i := 0; i < n; i++ {
		s := w.slots[i]
		if s.e == nil || s.e.Kind != kind || s.seq > seq {
			continue
		}
		if !fn(Handle{Index: i, Gen: s.gen}, s.e) {
			return
		}
	}
}

// All calls fn for every live entity regardless of kind.
func (w *World) All(fn func(h Handle, e *Entity)) {
	for i, s := range w.slots {
		if s.e != nil {
			fn(Handle{Index: i, Gen: s.gen}, s.e)
		}
	}
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, s := range w.slots {
		if s.e != nil && s.e.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.slots) - len(w.free) - len(w.released)
}

// Purge removes every entity of the given kinds.
func (w *World) Purge(kinds ...Kind) int {
	n := 0
	for i, s := range w.slots {
		if s.e == nil {
			continue
		}
		for _, k := range kinds {
			if s.e.Kind == k {
				w.Remove(Handle{Index: i, Gen: s.gen})
				n++
				break
			}
		}
	}
	return n
}

// Clear removes every entity.
func (w *World) Clear() {
	for i, s := range w.slots {
		if s.e != nil {
			w.Remove(Handle{Index: i, Gen: s.gen})
		}
	}
}

// Drain returns the handles added and removed since the previous call.
// A handle may appear in both lists when it lived less than one drain.
// Slots freed since the previous call become reusable.
func (w *World) Drain() (created, removed []Handle) {
	w.free = append(w.free, w.released...)
	w.released = w.released[:0]
	created, removed = w.created, w.removed
	w.created, w.removed = nil, nil
	return created, removed
}
