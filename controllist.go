package arbor

// ControlList is the ordered child collection of a control. Observers are
// told about every insertion, removal and move after it happened.
type ControlList struct {
	owner *ControlBase
	items []Control

	addedObs   observers[func(Control, int)]
	removedObs observers[func(Control, int)]
	movedObs   observers[func(Control, int, int)]
}

func newControlList(owner *ControlBase) *ControlList {
	return &ControlList{owner: owner}
}

// Len returns the number of controls.
func (l *ControlList) Len() int {
	return len(l.items)
}

// At returns the control at index.
func (l *ControlList) At(index int) Control {
	return l.items[index]
}

// Items returns the controls in order. The returned slice MUST NOT be
// mutated by the caller.
func (l *ControlList) Items() []Control {
	return l.items
}

// IndexOf returns the index of c, or -1.
func (l *ControlList) IndexOf(c Control) int {
	for i, e := range l.items {
		if e == c {
			return i
		}
	}
	return -1
}

// Add appends c. A control that belongs to another list is moved here; the
// insertion is announced before the removal from the old list so its
// visualization is reparented rather than rebuilt.
func (l *ControlList) Add(c Control) {
	l.Insert(len(l.items), c)
}

// Insert places c at index. Panics on a nil control, an out-of-range index,
// a control already in this list, or a control that would become its own
// ancestor.
func (l *ControlList) Insert(index int, c Control) {
	if c == nil {
		panic("arbor: cannot add nil control")
	}
	if index < 0 || index > len(l.items) {
		panic("arbor: control index out of range")
	}
	cb := c.Base()
	cb.checkInit()
	if cb.list == l {
		panic("arbor: control is already in this list; use MoveTo")
	}
	for p := l.owner; p != nil; p = p.Parent() {
		if p == cb {
			panic("arbor: adding control would create a cycle")
		}
	}

	old := cb.list
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = c
	cb.list = l
	l.addedObs.each(func(fn func(Control, int)) { fn(c, index) })

	if old != nil {
		old.removeFromItems(c)
	}
}

// Remove removes c. It reports whether c was present.
func (l *ControlList) Remove(c Control) bool {
	i := l.IndexOf(c)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// RemoveAt removes and returns the control at index.
func (l *ControlList) RemoveAt(index int) Control {
	if index < 0 || index >= len(l.items) {
		panic("arbor: control index out of range")
	}
	c := l.items[index]
	c.Base().list = nil
	l.removeIndex(index, c)
	return c
}

// MoveTo moves c to index, counted after its removal.
func (l *ControlList) MoveTo(c Control, index int) {
	from := l.IndexOf(c)
	if from < 0 {
		panic("arbor: control is not in this list")
	}
	if index < 0 || index >= len(l.items) {
		panic("arbor: control index out of range")
	}
	if from == index {
		return
	}
	if from < index {
		copy(l.items[from:index], l.items[from+1:index+1])
	} else {
		copy(l.items[index+1:from+1], l.items[index:from])
	}
	l.items[index] = c
	l.movedObs.each(func(fn func(Control, int, int)) { fn(c, from, index) })
}

// Clear removes every control, last to first.
func (l *ControlList) Clear() {
	for i := len(l.items) - 1; i >= 0; i-- {
		l.RemoveAt(i)
	}
}

// OnAdded registers a callback fired after a control is inserted.
func (l *ControlList) OnAdded(fn func(c Control, index int)) Subscription {
	return l.addedObs.add(fn)
}

// OnRemoved registers a callback fired after a control is removed. index
// is the position it had.
func (l *ControlList) OnRemoved(fn func(c Control, index int)) Subscription {
	return l.removedObs.add(fn)
}

// OnMoved registers a callback fired after MoveTo.
func (l *ControlList) OnMoved(fn func(c Control, from, to int)) Subscription {
	return l.movedObs.add(fn)
}

// removeFromItems drops c after it moved to another list.
func (l *ControlList) removeFromItems(c Control) {
	if i := l.IndexOf(c); i >= 0 {
		l.removeIndex(i, c)
	}
}

func (l *ControlList) removeIndex(index int, c Control) {
	copy(l.items[index:], l.items[index+1:])
	l.items[len(l.items)-1] = nil
	l.items = l.items[:len(l.items)-1]
	l.removedObs.each(func(fn func(Control, int)) { fn(c, index) })
}
