package arbor

import "math"

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	start     Point
	last      Point
	hitNode   *Visual
	hoverNode *Visual // last visual the pointer was over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// --- Capture and focus ---

// CapturePointer routes all events for pointerID to v until released. A
// capture ends automatically when the pointer is released.
func (c *Canvas) CapturePointer(pointerID int, v *Visual) {
	if pointerID >= 0 && pointerID < maxPointers {
		c.captured[pointerID] = v
	}
}

// ReleasePointer stops routing events for pointerID to a captured visual.
func (c *Canvas) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		c.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (c *Canvas) SetDragDeadZone(pixels float64) {
	c.dragDeadZone = pixels
}

// SetFocus makes v the target of keyboard and text input. nil clears focus.
func (c *Canvas) SetFocus(v *Visual) {
	c.focus = v
}

// Focus returns the visual receiving keyboard input, or nil.
func (c *Canvas) Focus() *Visual {
	if c.focus != nil && !c.focus.attached {
		c.focus = nil
	}
	return c.focus
}

// SetModifiers records the modifier keys reported with subsequent events.
func (c *Canvas) SetModifiers(m KeyModifiers) {
	c.modifiers = m
}

// --- Hit testing ---

// HitTest returns the topmost visual at p, in canvas coordinates. Children
// are tested last to first so later siblings win; a point outside a visual's
// clip misses its whole subtree.
func (c *Canvas) HitTest(p Point) *Visual {
	return hitTest(c.visual, p, RectFromSize(c.size))
}

// hitTest works in the parent's coordinate space for both p and clip.
func hitTest(v *Visual, p Point, clip Rect) *Visual {
	b := v.bounds
	if v.ClipToBounds.Get() {
		clip = clip.Intersect(b)
		if clip.Empty() {
			return nil
		}
	}
	origin := b.Position()
	local := p.Sub(origin)
	localClip := clip.Offset(Point{-origin.X, -origin.Y})
	for i := len(v.children) - 1; i >= 0; i-- {
		if h := hitTest(v.children[i], local, localClip); h != nil {
			return h
		}
	}
	if b.Contains(p.X, p.Y) && clip.Contains(p.X, p.Y) {
		return v
	}
	return nil
}

// --- Pointer state machine ---

// HandlePointer feeds one pointer sample into the state machine. Backends
// call it once per frame per pointer; pressed is the current button state.
func (c *Canvas) HandlePointer(pointerID int, p Point, pressed bool, button MouseButton) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &c.pointers[pointerID]

	// Determine target: captured visual or hit test.
	captured := c.captured[pointerID]
	if captured != nil && !captured.attached {
		c.captured[pointerID] = nil
		captured = nil
	}
	target := captured
	if target == nil {
		target = c.HitTest(p)
	}

	// Fire hover enter/leave when the hovered visual changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			c.firePointer(InputPointerLeave, ps.hoverNode, pointerID, p, button)
		}
		if target != nil {
			c.firePointer(InputPointerEnter, target, pointerID, p, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.start = p
		ps.last = p
		ps.hitNode = target
		ps.dragging = false
		if target != nil {
			c.focus = target
		}
		c.firePointer(InputPointerDown, target, pointerID, p, ps.button)

	case !pressed && ps.down:
		if ps.dragging {
			c.fireDrag(InputDragEnd, ps.hitNode, pointerID, p, ps.start, p.Sub(ps.last), ps.button)
		} else if ps.hitNode != nil && ps.hitNode == target {
			c.firePointer(InputClick, target, pointerID, p, ps.button)
		}
		c.firePointer(InputPointerUp, target, pointerID, p, ps.button)

		c.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.last = p

	case pressed && ps.down:
		if p != ps.last {
			if !ps.dragging {
				d := p.Sub(ps.start)
				if math.Hypot(d.X, d.Y) > c.dragDeadZone {
					ps.dragging = true
					c.fireDrag(InputDragStart, ps.hitNode, pointerID, p, ps.start, d, ps.button)
				}
			}
			if ps.dragging {
				c.fireDrag(InputDrag, ps.hitNode, pointerID, p, ps.start, p.Sub(ps.last), ps.button)
			}
			c.firePointer(InputPointerMove, target, pointerID, p, ps.button)
		}
		ps.last = p

	default:
		if p != ps.last {
			c.firePointer(InputPointerMove, target, pointerID, p, button)
			ps.last = p
		}
	}
}

// HandleScroll routes a scroll event to the visual under p.
func (c *Canvas) HandleScroll(p Point, delta Point) {
	target := c.HitTest(p)
	if target == nil {
		return
	}
	RouteInput(target, &InputEvent{
		Kind: InputScroll, Position: p, Delta: delta, Modifiers: c.modifiers,
	})
}

// HandleKey routes a key press or release to the focused visual. It reports
// whether a handler marked the event handled.
func (c *Canvas) HandleKey(key Key, down bool) bool {
	target := c.Focus()
	if target == nil {
		return false
	}
	kind := InputKeyUp
	if down {
		kind = InputKeyDown
	}
	e := &InputEvent{Kind: kind, Key: key, Modifiers: c.modifiers}
	RouteInput(target, e)
	return e.Handled
}

// HandleText routes a typed character to the focused visual.
func (c *Canvas) HandleText(r rune) bool {
	target := c.Focus()
	if target == nil {
		return false
	}
	e := &InputEvent{Kind: InputText, Rune: r, Modifiers: c.modifiers}
	RouteInput(target, e)
	return e.Handled
}

// --- Event dispatch ---

func (c *Canvas) firePointer(kind InputKind, target *Visual, pointerID int, p Point, button MouseButton) {
	if target == nil {
		return
	}
	RouteInput(target, &InputEvent{
		Kind: kind, Position: p, Button: button, PointerID: pointerID, Modifiers: c.modifiers,
	})
}

func (c *Canvas) fireDrag(kind InputKind, target *Visual, pointerID int, p, start, delta Point, button MouseButton) {
	if target == nil {
		return
	}
	RouteInput(target, &InputEvent{
		Kind: kind, Position: p, Start: start, Delta: delta,
		Button: button, PointerID: pointerID, Modifiers: c.modifiers,
	})
}

// --- Injection ---

// syntheticPointerEvent is a queued pointer sample in canvas coordinates.
type syntheticPointerEvent struct {
	pos     Point
	pressed bool
	button  MouseButton
}

// InjectPress queues a left-button press at (x, y). Queued events are
// consumed one per call to ProcessInjected.
func (c *Canvas) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{
		pos: Point{x, y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectMove queues a move at (x, y) with the button held down. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{
		pos: Point{x, y}, pressed: true, button: MouseButtonLeft,
	})
}

// InjectHover queues a move at (x, y) with no button held.
func (c *Canvas) InjectHover(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{
		pos: Point{x, y}, button: MouseButtonLeft,
	})
}

// InjectRelease queues a release at (x, y).
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticPointerEvent{
		pos: Point{x, y}, button: MouseButtonLeft,
	})
}

// InjectClick queues a press followed by a release at the same point.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a press at from, steps linearly interpolated moves and
// a release at to.
func (c *Canvas) InjectDrag(from, to Point, steps int) {
	c.InjectPress(from.X, from.Y)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(from.X+(to.X-from.X)*t, from.Y+(to.Y-from.Y)*t)
	}
	c.InjectRelease(to.X, to.Y)
}

// PendingInjected returns the number of queued synthetic events.
func (c *Canvas) PendingInjected() int {
	return len(c.injectQueue)
}

// ProcessInjected pops one queued event and feeds it through the pointer
// state machine as pointer 0. It returns false when the queue is empty, in
// which case backends should process real input instead.
func (c *Canvas) ProcessInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	c.Layout()
	c.HandlePointer(0, evt.pos, evt.pressed, evt.button)
	return true
}
