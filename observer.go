package arbor

// Subscription allows removing a registered observer callback.
// The zero value is valid and Remove on it is a no-op.
type Subscription struct {
	remove func()
}

// Remove unregisters the callback so it no longer fires. Removing during an
// emission skips the callback if it has not run yet in that emission.
func (s Subscription) Remove() {
	if s.remove != nil {
		s.remove()
	}
}

type observerEntry[F any] struct {
	id      uint32
	fn      F
	removed bool
}

// observers is an ordered callback list. Emission walks a snapshot, so
// callbacks added during an emission first run on the next one.
type observers[F any] struct {
	entries []*observerEntry[F]
	nextID  uint32
	scratch []*observerEntry[F]
	depth   int
}

func (o *observers[F]) add(fn F) Subscription {
	o.nextID++
	e := &observerEntry[F]{id: o.nextID, fn: fn}
	o.entries = append(o.entries, e)
	return Subscription{remove: func() { o.removeEntry(e) }}
}

func (o *observers[F]) removeEntry(e *observerEntry[F]) {
	if e.removed {
		return
	}
	e.removed = true
	for i, c := range o.entries {
		if c == e {
			copy(o.entries[i:], o.entries[i+1:])
			o.entries[len(o.entries)-1] = nil
			o.entries = o.entries[:len(o.entries)-1]
			return
		}
	}
}

func (o *observers[F]) len() int {
	return len(o.entries)
}

// each calls visit for every live callback in registration order.
func (o *observers[F]) each(visit func(F)) {
	if len(o.entries) == 0 {
		return
	}
	var snap []*observerEntry[F]
	if o.depth == 0 {
		snap = append(o.scratch[:0], o.entries...)
		o.scratch = snap
	} else {
		// Nested emission: the scratch buffer belongs to the outer loop.
		snap = append([]*observerEntry[F](nil), o.entries...)
	}
	o.depth++
	defer func() { o.depth-- }()
	for _, e := range snap {
		if !e.removed {
			visit(e.fn)
		}
	}
}

func (o *observers[F]) clear() {
	for _, e := range o.entries {
		e.removed = true
	}
	o.entries = nil
}
