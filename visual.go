package arbor

// visualIDCounter is a plain counter; arbor is single-threaded.
var visualIDCounter uint32

func nextVisualID() uint32 {
	visualIDCounter++
	return visualIDCounter
}

// Visual is the scene-graph node. A single concrete type is used for every
// kind of visual; kind-specific steps live in its Behavior.
//
// A visual exclusively owns its children and holds a non-owning link to its
// parent. Bounds are defined only after a successful Arrange and MeasuredSize
// only after a successful Measure.
type Visual struct {
	// Identity
	ID   uint32
	Name string

	// Metadata
	UserData any

	// Layout and appearance properties. Layout properties left unset on a
	// template anchor resolve to the owning control's values.
	Margin              *Property[Thickness]
	Padding             *Property[Thickness]
	MinWidth            *Property[float64]
	MinHeight           *Property[float64]
	MaxWidth            *Property[float64]
	MaxHeight           *Property[float64]
	HorizontalAlignment *Property[Alignment]
	VerticalAlignment   *Property[Alignment]
	Background          *Property[Color]
	Foreground          *Property[Color]
	ClipToBounds        *Property[bool]

	behavior Behavior
	steps    steps

	// Hierarchy
	parent   *Visual
	children []*Visual

	// Attachment
	root       bool
	attached   bool
	holdsRes   bool
	canvas     *Canvas // set on the canvas root only
	disposed   bool
	debugLocal bool
	debugEff   bool

	// Template association. ownerCell is set for every visual of a template
	// instantiation; anchorOwner only for its anchor.
	ownerCell   *Property[Control]
	anchorOwner *Property[Control]

	// Layout cache
	measuredSize  Size
	bounds        Rect
	lastAvailable Size
	lastFinal     Rect
	measureValid  bool
	arrangeValid  bool
	renderValid   bool
	hasArranged   bool

	// Per-visual observers (empty by default; zero cost when unused)
	attachedObs observers[func(*Visual)]
	detachedObs observers[func(*Visual, bool)]
	boundsObs   observers[func(*Visual, Rect, Rect)]
	inputObs    observers[func(*InputEvent)]
	previewObs  observers[func(*InputEvent)]

	// Counters read by tests and debug stats.
	measureCount    int
	arrangeCount    int
	invalidateCount int
}

// NewVisual creates a visual with the given behavior. A nil behavior yields a
// generic container.
func NewVisual(name string, b Behavior) *Visual {
	v := &Visual{ID: nextVisualID(), Name: name}
	v.ownerCell = NewProperty[Control](v, "TemplateOwner", AffectsNone, Const[Control](nil))
	v.anchorOwner = NewProperty[Control](v, "AnchorOwner", AffectsNone, Const[Control](nil))

	v.Margin = NewProperty(v, "Margin", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[Thickness] { return c.Margin }, Thickness{}))
	v.Padding = NewProperty(v, "Padding", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[Thickness] { return c.Padding }, Thickness{}))
	v.MinWidth = NewProperty(v, "MinWidth", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[float64] { return c.MinWidth }, 1))
	v.MinHeight = NewProperty(v, "MinHeight", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[float64] { return c.MinHeight }, 1))
	v.MaxWidth = NewProperty(v, "MaxWidth", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[float64] { return c.MaxWidth }, Infinity))
	v.MaxHeight = NewProperty(v, "MaxHeight", AffectsMeasure,
		inheritFromOwner(v, func(c *ControlBase) *Property[float64] { return c.MaxHeight }, Infinity))
	v.HorizontalAlignment = NewProperty(v, "HorizontalAlignment", AffectsArrange,
		inheritFromOwner(v, func(c *ControlBase) *Property[Alignment] { return c.HorizontalAlignment }, AlignStretch))
	v.VerticalAlignment = NewProperty(v, "VerticalAlignment", AffectsArrange,
		inheritFromOwner(v, func(c *ControlBase) *Property[Alignment] { return c.VerticalAlignment }, AlignStretch))
	v.Background = NewProperty(v, "Background", AffectsRender,
		inheritFromOwner(v, func(c *ControlBase) *Property[Color] { return c.Background }, ColorTransparent))
	v.Foreground = NewProperty(v, "Foreground", AffectsRender, Bind(func(s *Scope) Color {
		if c := v.ownerCell.Read(s); c != nil {
			return c.Base().Foreground.Read(s)
		}
		return ColorBlack
	}))
	v.ClipToBounds = NewProperty(v, "ClipToBounds", AffectsRender, Const(true))

	v.SetBehavior(b)
	return v
}

// NewContainer creates a generic container visual.
func NewContainer(name string) *Visual {
	return NewVisual(name, nil)
}

// Behavior returns the visual's behavior, or nil for a generic container.
func (v *Visual) Behavior() Behavior {
	return v.behavior
}

// SetBehavior replaces the overridable steps and invalidates layout.
func (v *Visual) SetBehavior(b Behavior) {
	v.behavior = b
	v.steps = resolveSteps(b)
	v.InvalidateMeasure()
}

// --- Tree manipulation ---

// AddChild appends child to this visual's children.
// If child already has a parent, it is detached from that parent first as a
// reparenting detach. Panics if child is nil or child is an ancestor of this
// visual (cycle).
func (v *Visual) AddChild(child *Visual) {
	if child != nil && child.parent == v {
		v.InsertChild(child, len(v.children)-1)
		return
	}
	v.InsertChild(child, len(v.children))
}

// InsertChild inserts child at index, with AddChild's reparenting and cycle
// rules. When child is already a child of v it is moved to index.
func (v *Visual) InsertChild(child *Visual, index int) {
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(v, "InsertChild (parent)")
		debugCheckDisposed(child, "InsertChild (child)")
	}
	if isAncestor(child, v) {
		panic("arbor: adding child would create a cycle")
	}
	if child.root {
		panic("arbor: a root visual cannot be added as a child")
	}

	limit := len(v.children)
	if child.parent == v {
		limit--
	}
	if index < 0 || index > limit {
		panic("arbor: child index out of range")
	}

	if old := child.parent; old != nil {
		if old == v {
			if i := v.indexOf(child); i == index {
				return
			}
		}
		old.detachChild(child, true)
	}

	child.parent = v
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = child

	child.updateAttachment(false)
	child.updateDebugOutlines()
	v.InvalidateMeasure()

	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(v)
	}
}

// SetChild replaces the child at index with child. The previous child is
// permanently detached.
func (v *Visual) SetChild(index int, child *Visual) {
	if index < 0 || index >= len(v.children) {
		panic("arbor: child index out of range")
	}
	if child == nil {
		panic("arbor: cannot add nil child")
	}
	if child.parent == v {
		panic("arbor: SetChild with a visual that is already a child")
	}
	old := v.children[index]
	if old == child {
		return
	}
	v.detachChild(old, false)
	v.InsertChild(child, index)
}

// ReplaceChild swaps old for child at old's index.
func (v *Visual) ReplaceChild(old, child *Visual) {
	i := v.indexOf(old)
	if i < 0 {
		panic("arbor: child's parent is not this visual")
	}
	v.SetChild(i, child)
}

// RemoveChild permanently detaches child from this visual.
// Panics if child.Parent() != v.
func (v *Visual) RemoveChild(child *Visual) {
	if globalDebug {
		debugCheckDisposed(v, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.parent != v {
		panic("arbor: child's parent is not this visual")
	}
	v.detachChild(child, false)
}

// RemoveChildAt removes and returns the child at the given index.
func (v *Visual) RemoveChildAt(index int) *Visual {
	if index < 0 || index >= len(v.children) {
		panic("arbor: child index out of range")
	}
	child := v.children[index]
	v.detachChild(child, false)
	return child
}

// RemoveFromParent detaches this visual from its parent.
// No-op if this visual has no parent.
func (v *Visual) RemoveFromParent() {
	if v.parent == nil {
		return
	}
	v.parent.RemoveChild(v)
}

// RemoveChildren permanently detaches all children, last to first.
func (v *Visual) RemoveChildren() {
	for i := len(v.children) - 1; i >= 0; i-- {
		v.detachChild(v.children[i], false)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (v *Visual) Children() []*Visual {
	return v.children
}

// NumChildren returns the number of children.
func (v *Visual) NumChildren() int {
	return len(v.children)
}

// ChildAt returns the child at the given index.
func (v *Visual) ChildAt(index int) *Visual {
	return v.children[index]
}

// Parent returns the parent visual, or nil.
func (v *Visual) Parent() *Visual {
	return v.parent
}

// detachChild is the single path that breaks the parent/child links. Both
// links are cleared before any detach callback runs.
func (v *Visual) detachChild(child *Visual, reparenting bool) {
	i := v.indexOf(child)
	if i < 0 {
		return
	}
	copy(v.children[i:], v.children[i+1:])
	v.children[len(v.children)-1] = nil
	v.children = v.children[:len(v.children)-1]
	child.parent = nil

	child.updateAttachment(reparenting)
	if !reparenting {
		// A subtree moved into an unattached parent kept its resources; a
		// permanent removal from there releases them.
		child.releaseSubtree()
	}
	child.updateDebugOutlines()
	v.InvalidateMeasure()
}

func (v *Visual) indexOf(child *Visual) int {
	for i, c := range v.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Attachment ---

// SetRoot marks the visual as the root of a tree. A root is attached
// regardless of parent.
func (v *Visual) SetRoot(root bool) {
	if root && v.parent != nil {
		panic("arbor: a visual with a parent cannot become a root")
	}
	if v.root == root {
		return
	}
	v.root = root
	v.updateAttachment(false)
}

// IsRoot reports whether the visual was marked as a root.
func (v *Visual) IsRoot() bool {
	return v.root
}

// IsAttached reports whether a chain of parent links reaches a root.
func (v *Visual) IsAttached() bool {
	return v.attached
}

// Canvas returns the canvas this visual is attached to, or nil.
func (v *Visual) Canvas() *Canvas {
	if !v.attached {
		return nil
	}
	p := v
	for p.parent != nil {
		p = p.parent
	}
	return p.canvas
}

// updateAttachment recomputes the attached flag from the parent link and
// propagates a change depth-first: pre-order on attach, post-order on detach.
// Calling it when nothing changed is a no-op.
func (v *Visual) updateAttachment(reparenting bool) {
	should := v.root || (v.parent != nil && v.parent.attached)
	if should == v.attached {
		return
	}
	v.attached = should
	kids := append([]*Visual(nil), v.children...)
	if should {
		v.onAttach()
		for _, c := range kids {
			c.updateAttachment(false)
		}
		return
	}
	for _, c := range kids {
		c.updateAttachment(reparenting)
	}
	v.onDetach(reparenting)
}

func (v *Visual) onAttach() {
	v.holdsRes = true
	if v.steps.attach != nil {
		v.steps.attach.OnAttach(v)
	}
	v.attachedObs.each(func(fn func(*Visual)) { fn(v) })
	logger().Debug("visual attached", "visual", v.Name, "id", v.ID)
}

func (v *Visual) onDetach(reparenting bool) {
	if v.steps.attach != nil {
		v.steps.attach.OnDetach(v, reparenting)
	}
	if !reparenting {
		v.holdsRes = false
		v.releaseTemplate()
	}
	v.detachedObs.each(func(fn func(*Visual, bool)) { fn(v, reparenting) })
	logger().Debug("visual detached", "visual", v.Name, "id", v.ID, "reparenting", reparenting)
}

// releaseSubtree runs the permanent-detach step for every visual of the
// subtree that still holds resources. Already released visuals are skipped.
func (v *Visual) releaseSubtree() {
	for _, c := range v.children {
		c.releaseSubtree()
	}
	if v.holdsRes {
		v.onDetach(false)
	}
}

// --- Template association ---

// SetAnchor binds the visual to c as the anchor of c's template. Passing nil
// clears the binding without detaching the visual.
func (v *Visual) SetAnchor(c Control) {
	if c == nil {
		v.anchorOwner.Reset()
		v.ownerCell.Reset()
		return
	}
	v.ownerCell.Set(c)
	v.anchorOwner.Set(c)
}

// IsAnchor reports whether the visual is the anchor of a control's template.
func (v *Visual) IsAnchor() bool {
	return v.anchorOwner.Get() != nil
}

// TemplateOwner returns the control whose template produced this visual, or nil.
func (v *Visual) TemplateOwner() Control {
	return v.ownerCell.Get()
}

// releaseTemplate clears the association when the visual is permanently
// detached. The owner drops its cached visualization if this was its anchor.
func (v *Visual) releaseTemplate() {
	if c := v.anchorOwner.Get(); c != nil {
		c.Base().forgetVisual(v)
	}
	v.anchorOwner.Reset()
	v.ownerCell.Reset()
}

// --- Debug outlines ---

// SetDebugOutlines enables margin/bounds/padding outlines for this visual and
// its descendants.
func (v *Visual) SetDebugOutlines(on bool) {
	v.debugLocal = on
	v.updateDebugOutlines()
}

// DebugOutlines reports the effective flag: the local flag or any ancestor's.
func (v *Visual) DebugOutlines() bool {
	return v.debugEff
}

func (v *Visual) updateDebugOutlines() {
	eff := v.debugLocal || (v.parent != nil && v.parent.debugEff)
	if eff == v.debugEff {
		return
	}
	v.debugEff = eff
	v.InvalidateRender()
	for _, c := range v.children {
		c.updateDebugOutlines()
	}
}

// --- Observers ---

// OnAttached registers a callback fired after the visual becomes attached.
func (v *Visual) OnAttached(fn func(v *Visual)) Subscription {
	return v.attachedObs.add(fn)
}

// OnDetached registers a callback fired after the visual stops being attached.
func (v *Visual) OnDetached(fn func(v *Visual, reparenting bool)) Subscription {
	return v.detachedObs.add(fn)
}

// OnBoundsChanged registers a callback fired when arrange changes Bounds.
func (v *Visual) OnBoundsChanged(fn func(v *Visual, old, bounds Rect)) Subscription {
	return v.boundsObs.add(fn)
}

// OnInput registers a bubbling input callback.
func (v *Visual) OnInput(fn func(e *InputEvent)) Subscription {
	return v.inputObs.add(fn)
}

// OnInputPreview registers a tunneling input callback.
func (v *Visual) OnInputPreview(fn func(e *InputEvent)) Subscription {
	return v.previewObs.add(fn)
}

// --- PropertyOwner ---

// Invalidate implements PropertyOwner.
func (v *Visual) Invalidate(kind InvalidationKind) {
	switch kind {
	case AffectsVisualization:
		if c := v.anchorOwner.Get(); c != nil {
			c.Base().InvalidateVisualization()
			return
		}
		v.InvalidateMeasure()
	case AffectsMeasure:
		v.InvalidateMeasure()
	case AffectsArrange:
		v.InvalidateArrange()
	case AffectsRender:
		v.InvalidateRender()
	}
}

// --- Disposal ---

// Dispose removes this visual from its parent, releases resources, and
// recursively disposes all descendants.
func (v *Visual) Dispose() {
	if v.disposed {
		return
	}
	v.RemoveFromParent()
	v.dispose()
}

func (v *Visual) dispose() {
	for _, c := range v.children {
		c.parent = nil
		c.dispose()
	}
	if v.holdsRes {
		v.onDetach(false)
	}
	v.releaseTemplate()
	v.children = nil
	v.disposed = true
	v.attached = false
	v.root = false
	v.canvas = nil
	v.UserData = nil
	v.attachedObs.clear()
	v.detachedObs.clear()
	v.boundsObs.clear()
	v.inputObs.clear()
	v.previewObs.clear()
}

// IsDisposed returns true if this visual has been disposed.
func (v *Visual) IsDisposed() bool {
	return v.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Visual) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
