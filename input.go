package arbor

import "fmt"

// InputKind identifies a kind of input event.
type InputKind uint8

const (
	InputPointerDown  InputKind = iota // a pointer button was pressed
	InputPointerUp                     // a pointer button was released
	InputPointerMove                   // the pointer moved
	InputPointerEnter                  // the pointer entered a visual
	InputPointerLeave                  // the pointer left a visual
	InputClick                         // press then release over the same visual
	InputDragStart                     // movement exceeded the drag dead zone
	InputDrag                          // pointer moved while dragging
	InputDragEnd                       // pointer released after dragging
	InputScroll                        // wheel or trackpad scroll
	InputKeyDown                       // key pressed while the target has focus
	InputKeyUp                         // key released while the target has focus
	InputText                          // character input while the target has focus
)

var inputKindNames = [...]string{
	"pointer-down", "pointer-up", "pointer-move", "pointer-enter", "pointer-leave",
	"click", "drag-start", "drag", "drag-end", "scroll", "key-down", "key-up", "text",
}

func (k InputKind) String() string {
	if int(k) < len(inputKindNames) {
		return inputKindNames[k]
	}
	return fmt.Sprintf("input(%d)", k)
}

// Phase is the routing phase an event is currently in.
type Phase uint8

const (
	PhasePreview Phase = iota // tunneling, root to target
	PhaseBubble               // bubbling, target to root
)

func (p Phase) String() string {
	if p == PhasePreview {
		return "preview"
	}
	return "bubble"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key names a keyboard key, e.g. "Enter", "Tab", "A". Backends translate
// their native key codes to these names.
type Key string

// InputEvent is routed through the visual tree by RouteInput. Handlers may
// set Handled to stop the remaining traversal.
type InputEvent struct {
	Kind    InputKind
	Target  *Visual
	Current *Visual
	Phase   Phase

	// Position is in canvas coordinates; Local is relative to Current.
	Position Point
	Local    Point

	Button    MouseButton
	PointerID int
	Key       Key
	Rune      rune
	Delta     Point // scroll amount, or drag movement since the last event
	Start     Point // press position for drag events
	Modifiers KeyModifiers

	Handled bool
}

// RouteInput delivers e to target and its ancestors: first the preview
// phase from the root down to target, then the bubble phase from target back
// up to the root. At each visual the behavior's step runs, then the visual's
// observers, then, when the visual anchors a control's template, the owning
// control's handlers. Once a handler marks the event Handled nothing further
// receives it.
func RouteInput(target *Visual, e *InputEvent) {
	if target == nil || e == nil {
		return
	}
	e.Target = target

	path := make([]*Visual, 0, 8)
	for p := target; p != nil; p = p.parent {
		path = append(path, p)
	}

	e.Phase = PhasePreview
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].deliver(e) {
			return
		}
	}
	e.Phase = PhaseBubble
	for _, v := range path {
		if v.deliver(e) {
			return
		}
	}
}

// deliver runs the handlers of one visual for the current phase and reports
// whether the event has been handled.
func (v *Visual) deliver(e *InputEvent) bool {
	e.Current = v
	e.Local = e.Position.Sub(v.AbsolutePosition())

	preview := e.Phase == PhasePreview
	if preview {
		if v.steps.preview != nil {
			v.steps.preview.OnInputPreview(v, e)
		}
	} else if v.steps.input != nil {
		v.steps.input.OnInput(v, e)
	}
	if e.Handled {
		return true
	}

	obs := &v.inputObs
	if preview {
		obs = &v.previewObs
	}
	obs.each(func(fn func(*InputEvent)) {
		if !e.Handled {
			fn(e)
		}
	})
	if e.Handled {
		return true
	}

	if c := v.anchorOwner.Get(); c != nil {
		c.Base().deliverInput(e)
	}
	return e.Handled
}

// AbsolutePosition returns the visual's origin in root coordinates.
func (v *Visual) AbsolutePosition() Point {
	var p Point
	for n := v; n != nil; n = n.parent {
		p = p.Add(n.bounds.Position())
	}
	return p
}

// ToLocal converts a root-coordinate point to the visual's coordinates.
func (v *Visual) ToLocal(p Point) Point {
	return p.Sub(v.AbsolutePosition())
}
