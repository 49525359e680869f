package arbor

import (
	"reflect"
	"testing"
)

// --- Routing ---

type routeRecorder struct {
	log []string
}

func (r *routeRecorder) watch(v *Visual) {
	v.OnInputPreview(func(e *InputEvent) { r.log = append(r.log, "preview "+v.Name) })
	v.OnInput(func(e *InputEvent) { r.log = append(r.log, "bubble "+v.Name) })
}

func (r *routeRecorder) watchControl(c *ControlBase) {
	c.OnInputPreview(func(e *InputEvent) { r.log = append(r.log, "preview control "+c.Name) })
	c.OnInput(func(e *InputEvent) { r.log = append(r.log, "bubble control "+c.Name) })
}

func buildRouteTree(rec *routeRecorder) (target *Visual, ctrl *ControlBase) {
	root := NewContainer("root")
	ctrl = NewControl("button", func(Control) *Visual {
		anchor := NewContainer("anchor")
		inner := NewContainer("inner")
		leaf := NewContainer("leaf")
		inner.AddChild(leaf)
		anchor.AddChild(inner)
		return anchor
	})
	anchor := ctrl.Visualize()
	root.AddChild(anchor)
	inner := anchor.ChildAt(0)
	target = inner.ChildAt(0)
	for _, v := range []*Visual{root, anchor, inner, target} {
		rec.watch(v)
	}
	rec.watchControl(ctrl)
	return target, ctrl
}

func TestRouteInputOrderWithAnchorRelay(t *testing.T) {
	rec := &routeRecorder{}
	target, _ := buildRouteTree(rec)

	RouteInput(target, &InputEvent{Kind: InputClick})

	want := []string{
		"preview root",
		"preview anchor", "preview control button",
		"preview inner",
		"preview leaf",
		"bubble leaf",
		"bubble inner",
		"bubble anchor", "bubble control button",
		"bubble root",
	}
	if !reflect.DeepEqual(rec.log, want) {
		t.Errorf("order =\n%v\nwant\n%v", rec.log, want)
	}
}

func TestRouteInputHandledStops(t *testing.T) {
	rec := &routeRecorder{}
	target, ctrl := buildRouteTree(rec)
	ctrl.OnInput(func(e *InputEvent) { e.Handled = true })

	e := &InputEvent{Kind: InputClick}
	RouteInput(target, e)
	if !e.Handled {
		t.Fatal("event should be handled")
	}
	last := rec.log[len(rec.log)-1]
	if last != "bubble control button" {
		t.Errorf("last handler = %q, want the control's bubble handler", last)
	}
}

func TestRouteInputSetsTargetAndLocal(t *testing.T) {
	root := NewContainer("root")
	child := newSized("child", 10, 10)
	child.Margin.Set(Thickness{Left: 20, Top: 30})
	child.HorizontalAlignment.Set(AlignStart)
	child.VerticalAlignment.Set(AlignStart)
	root.AddChild(child)
	root.Measure(Size{100, 100})
	root.Arrange(Rect{Width: 100, Height: 100})

	var phases []Phase
	var locals []Point
	child.OnInputPreview(func(e *InputEvent) {
		phases = append(phases, e.Phase)
		locals = append(locals, e.Local)
		if e.Target != child || e.Current != child {
			t.Error("Target and Current should be the child")
		}
	})
	root.OnInput(func(e *InputEvent) {
		phases = append(phases, e.Phase)
		locals = append(locals, e.Local)
	})

	RouteInput(child, &InputEvent{Kind: InputPointerDown, Position: Point{25, 35}})
	if want := []Phase{PhasePreview, PhaseBubble}; !reflect.DeepEqual(phases, want) {
		t.Errorf("phases = %v, want %v", phases, want)
	}
	if want := []Point{{5, 5}, {25, 35}}; !reflect.DeepEqual(locals, want) {
		t.Errorf("locals = %v, want %v", locals, want)
	}
}

type previewStopper struct{}

func (previewStopper) OnInputPreview(v *Visual, e *InputEvent) { e.Handled = true }

func TestPreviewHandlerStopsBeforeTarget(t *testing.T) {
	root := NewVisual("root", previewStopper{})
	child := NewContainer("child")
	root.AddChild(child)
	reached := false
	child.OnInputPreview(func(*InputEvent) { reached = true })
	child.OnInput(func(*InputEvent) { reached = true })
	RouteInput(child, &InputEvent{Kind: InputKeyDown})
	if reached {
		t.Error("a handled preview should not reach the target")
	}
}

// --- Canvas pointer state machine ---

type pointerLog struct {
	kinds []InputKind
}

func (l *pointerLog) attach(v *Visual) {
	v.OnInput(func(e *InputEvent) {
		if e.Current == e.Target {
			l.kinds = append(l.kinds, e.Kind)
		}
	})
}

func newPointerCanvas() (*Canvas, *Visual, *Visual) {
	c, _ := newTestCanvas(200, 100)
	row := NewStack("row", Horizontal)
	a := newSized("a", 100, 100)
	b := newSized("b", 100, 100)
	row.AddChild(a)
	row.AddChild(b)
	c.AddChild(row)
	c.Layout()
	return c, a, b
}

func TestHitTestTopmost(t *testing.T) {
	c, a, b := newPointerCanvas()
	tests := []struct {
		name string
		p    Point
		want *Visual
	}{
		{"left", Point{10, 10}, a},
		{"right", Point{150, 50}, b},
		{"shared edge belongs to right", Point{100, 50}, b},
		{"outside", Point{300, 50}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HitTest(tt.p); got != tt.want {
				t.Errorf("HitTest(%v) = %v, want %v", tt.p, name(got), name(tt.want))
			}
		})
	}
}

func TestHitTestHonorsClip(t *testing.T) {
	c, _ := newTestCanvas(100, 100)
	viewport := NewVisual("viewport", &offsetArranger{offset: Point{80, 0}})
	viewport.MaxWidth.Set(90)
	inner := newSized("inner", 50, 50)
	viewport.AddChild(inner)
	c.AddChild(viewport)
	c.Layout()

	if got := c.HitTest(Point{85, 10}); got != inner {
		t.Errorf("HitTest inside clip = %v, want inner", name(got))
	}
	if got := c.HitTest(Point{95, 10}); got == inner {
		t.Error("a point outside the viewport clip should not hit inner")
	}
}

func TestPointerClickEnterLeave(t *testing.T) {
	c, a, b := newPointerCanvas()
	la, lb := &pointerLog{}, &pointerLog{}
	la.attach(a)
	lb.attach(b)

	c.InjectHover(10, 10)
	c.InjectClick(20, 20)
	c.InjectHover(150, 20)
	for c.ProcessInjected() {
	}

	wantA := []InputKind{InputPointerEnter, InputPointerMove, InputPointerDown, InputClick, InputPointerUp, InputPointerLeave}
	if !reflect.DeepEqual(la.kinds, wantA) {
		t.Errorf("a events = %v, want %v", la.kinds, wantA)
	}
	wantB := []InputKind{InputPointerEnter, InputPointerMove}
	if !reflect.DeepEqual(lb.kinds, wantB) {
		t.Errorf("b events = %v, want %v", lb.kinds, wantB)
	}
	if c.Focus() != a {
		t.Errorf("focus = %v, want a", name(c.Focus()))
	}
}

func TestPointerReleaseElsewhereIsNotClick(t *testing.T) {
	c, a, _ := newPointerCanvas()
	la := &pointerLog{}
	la.attach(a)

	c.InjectPress(10, 10)
	c.InjectRelease(150, 10)
	for c.ProcessInjected() {
	}
	for _, k := range la.kinds {
		if k == InputClick {
			t.Error("release over another visual should not click")
		}
	}
}

func TestDragSuppressesClick(t *testing.T) {
	c, a, _ := newPointerCanvas()
	la := &pointerLog{}
	la.attach(a)

	c.InjectDrag(Point{10, 10}, Point{40, 10}, 3)
	for c.ProcessInjected() {
	}

	var sawStart, sawEnd, sawClick bool
	for _, k := range la.kinds {
		switch k {
		case InputDragStart:
			sawStart = true
		case InputDragEnd:
			sawEnd = true
		case InputClick:
			sawClick = true
		}
	}
	if !sawStart || !sawEnd {
		t.Errorf("drag events missing: %v", la.kinds)
	}
	if sawClick {
		t.Error("a drag should not produce a click")
	}
}

func TestSmallMoveStaysClick(t *testing.T) {
	c, a, _ := newPointerCanvas()
	la := &pointerLog{}
	la.attach(a)

	c.InjectPress(10, 10)
	c.InjectMove(12, 11)
	c.InjectRelease(12, 11)
	for c.ProcessInjected() {
	}
	found := false
	for _, k := range la.kinds {
		if k == InputDragStart {
			t.Error("movement inside the dead zone should not start a drag")
		}
		if k == InputClick {
			found = true
		}
	}
	if !found {
		t.Error("expected a click")
	}
}

func TestCaptureRoutesToCapturedVisual(t *testing.T) {
	c, a, b := newPointerCanvas()
	var upTarget *Visual
	a.OnInput(func(e *InputEvent) {
		if e.Kind == InputPointerDown {
			c.CapturePointer(e.PointerID, a)
		}
		if e.Kind == InputPointerUp {
			upTarget = e.Target
		}
	})
	lb := &pointerLog{}
	lb.attach(b)

	c.InjectPress(10, 10)
	c.InjectMove(150, 10)
	c.InjectRelease(150, 10)
	for c.ProcessInjected() {
	}
	if upTarget != a {
		t.Errorf("pointer up target = %v, want the captured visual", name(upTarget))
	}
	if len(lb.kinds) != 0 {
		t.Errorf("b received %v while the pointer was captured", lb.kinds)
	}
}

func TestKeyAndTextGoToFocus(t *testing.T) {
	c, _, b := newPointerCanvas()
	var keys []Key
	var runes []rune
	b.OnInput(func(e *InputEvent) {
		switch e.Kind {
		case InputKeyDown:
			keys = append(keys, e.Key)
		case InputText:
			runes = append(runes, e.Rune)
			e.Handled = true
		}
	})

	if c.HandleKey("A", true) {
		t.Error("no focus: key should not be handled")
	}
	c.SetFocus(b)
	c.HandleKey("Enter", true)
	if !c.HandleText('x') {
		t.Error("text handler marked the event handled")
	}
	if !reflect.DeepEqual(keys, []Key{"Enter"}) || !reflect.DeepEqual(runes, []rune{'x'}) {
		t.Errorf("keys = %v, runes = %v", keys, runes)
	}
}

func TestScrollRoutesToHit(t *testing.T) {
	c, _, b := newPointerCanvas()
	var delta Point
	b.OnInput(func(e *InputEvent) {
		if e.Kind == InputScroll {
			delta = e.Delta
		}
	})
	c.HandleScroll(Point{150, 50}, Point{0, -3})
	if delta != (Point{0, -3}) {
		t.Errorf("delta = %v, want {0 -3}", delta)
	}
}

func name(v *Visual) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name
}
