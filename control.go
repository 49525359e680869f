package arbor

import "fmt"

// Control is a logical widget. Its appearance is a visual subtree produced
// by a template; the control itself never measures or draws.
//
// Custom controls embed ControlBase and call Init with themselves so the
// template receives, and the visuals report, the outer type:
//
//	type Button struct {
//		arbor.ControlBase
//	}
//
//	func NewButton() *Button {
//		b := &Button{}
//		b.Init(b, "button", buttonTemplate)
//		return b
//	}
type Control interface {
	Base() *ControlBase
}

// TemplateFunc builds the visualization of a control. The returned visual
// becomes the anchor of the instantiation.
type TemplateFunc func(c Control) *Visual

// ControlBase carries the state shared by every control: its logical
// children, the properties its template anchor inherits, and the cached
// visualization.
type ControlBase struct {
	Name     string
	Children *ControlList

	// Properties read by the default bindings of the template anchor.
	// Foreground is read by every visual of the template.
	Foreground          *Property[Color]
	Background          *Property[Color]
	Margin              *Property[Thickness]
	Padding             *Property[Thickness]
	MinWidth            *Property[float64]
	MinHeight           *Property[float64]
	MaxWidth            *Property[float64]
	MaxHeight           *Property[float64]
	HorizontalAlignment *Property[Alignment]
	VerticalAlignment   *Property[Alignment]

	self     Control
	template TemplateFunc
	visual   *Visual
	list     *ControlList // list this control is a member of
	builds   int

	inputObs   observers[func(*InputEvent)]
	previewObs observers[func(*InputEvent)]
}

// NewControl creates a plain control. A nil template presents the control's
// children in a generic container.
func NewControl(name string, tmpl TemplateFunc) *ControlBase {
	c := &ControlBase{}
	c.Init(c, name, tmpl)
	return c
}

// Init prepares an embedded ControlBase. self must be the control that
// embeds it. Init panics if called twice.
func (b *ControlBase) Init(self Control, name string, tmpl TemplateFunc) {
	if b.self != nil {
		panic(fmt.Sprintf("arbor: control %q initialized twice", b.Name))
	}
	if self == nil || self.Base() != b {
		panic("arbor: Init requires the control embedding this ControlBase")
	}
	b.self = self
	b.Name = name
	b.template = tmpl
	b.Children = newControlList(b)

	b.Foreground = NewProperty(b, "Foreground", AffectsNone, Const(ColorBlack))
	b.Background = NewProperty(b, "Background", AffectsNone, Const(ColorTransparent))
	b.Margin = NewProperty(b, "Margin", AffectsNone, Const(Thickness{}))
	b.Padding = NewProperty(b, "Padding", AffectsNone, Const(Thickness{}))
	b.MinWidth = NewProperty(b, "MinWidth", AffectsNone, Const(1.0))
	b.MinHeight = NewProperty(b, "MinHeight", AffectsNone, Const(1.0))
	b.MaxWidth = NewProperty(b, "MaxWidth", AffectsNone, Const(Infinity))
	b.MaxHeight = NewProperty(b, "MaxHeight", AffectsNone, Const(Infinity))
	b.HorizontalAlignment = NewProperty(b, "HorizontalAlignment", AffectsNone, Const(AlignStretch))
	b.VerticalAlignment = NewProperty(b, "VerticalAlignment", AffectsNone, Const(AlignStretch))
}

// Base implements Control.
func (b *ControlBase) Base() *ControlBase {
	return b
}

// Self returns the control that embeds b.
func (b *ControlBase) Self() Control {
	return b.self
}

// Parent returns the control whose Children list holds this control, or nil.
func (b *ControlBase) Parent() *ControlBase {
	if b.list == nil {
		return nil
	}
	return b.list.owner
}

// Template returns the template function, or nil for the default.
func (b *ControlBase) Template() TemplateFunc {
	return b.template
}

// SetTemplate replaces the template and rebuilds the visualization.
func (b *ControlBase) SetTemplate(tmpl TemplateFunc) {
	b.template = tmpl
	b.InvalidateVisualization()
}

// Visual returns the cached visualization, or nil if none is current.
func (b *ControlBase) Visual() *Visual {
	return b.visual
}

// Visualize returns the control's visualization, instantiating the template
// on first use. The result is cached until the visualization is invalidated
// or its anchor is permanently detached.
func (b *ControlBase) Visualize() *Visual {
	b.checkInit()
	if b.visual != nil {
		return b.visual
	}
	tmpl := b.template
	if tmpl == nil {
		tmpl = DefaultTemplate
	}
	v := tmpl(b.self)
	if v == nil {
		panic(fmt.Sprintf("arbor: template of control %q returned nil", b.Name))
	}
	b.associate(v)
	b.visual = v
	b.builds++
	logger().Debug("control visualized", "control", b.Name, "anchor", v.Name, "builds", b.builds)
	return v
}

// InvalidateVisualization discards the cached visualization. If the old
// anchor sits in a parent visual, a fresh instantiation takes its place.
func (b *ControlBase) InvalidateVisualization() {
	old := b.visual
	if old == nil {
		return
	}
	b.visual = nil
	b.dissociate(old)

	parent := old.parent
	if parent == nil {
		return
	}
	parent.ReplaceChild(old, b.Visualize())
}

// Invalidate implements PropertyOwner. Kinds other than visualization are
// forwarded to the anchor.
func (b *ControlBase) Invalidate(kind InvalidationKind) {
	switch kind {
	case AffectsNone:
	case AffectsVisualization:
		b.InvalidateVisualization()
	default:
		if b.visual != nil {
			b.visual.Invalidate(kind)
		}
	}
}

// forgetVisual drops the cache when v, the anchor, is permanently detached.
func (b *ControlBase) forgetVisual(v *Visual) {
	if b.visual == v {
		b.visual = nil
		b.dissociate(v)
	}
}

// --- Input ---

// OnInput registers a callback for bubbling input delivered anywhere inside
// the control's visualization.
func (b *ControlBase) OnInput(fn func(e *InputEvent)) Subscription {
	return b.inputObs.add(fn)
}

// OnInputPreview registers a callback for tunneling input.
func (b *ControlBase) OnInputPreview(fn func(e *InputEvent)) Subscription {
	return b.previewObs.add(fn)
}

func (b *ControlBase) deliverInput(e *InputEvent) {
	obs := &b.inputObs
	if e.Phase == PhasePreview {
		obs = &b.previewObs
	}
	obs.each(func(fn func(*InputEvent)) {
		if !e.Handled {
			fn(e)
		}
	})
}

func (b *ControlBase) checkInit() {
	if b.self == nil {
		panic("arbor: ControlBase used before Init")
	}
}
