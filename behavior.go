package arbor

// Behavior supplies the overridable steps of a Visual. A behavior implements
// any subset of the step interfaces below; steps it does not implement fall
// back to the generic container defaults. The generic lifecycle (caching,
// invalidation, offset and clip stacking) always stays in Visual.
type Behavior any

// Measurer computes the desired size of a visual's content. available has the
// margin already removed; the result must not include the margin.
type Measurer interface {
	MeasureContent(v *Visual, available Size) Size
}

// Arranger places a visual's children inside local, the visual's own
// rectangle at the origin (margin removed, padding not).
type Arranger interface {
	ArrangeContent(v *Visual, local Rect)
}

// Drawer draws a visual's own content. The renderer offset is already at the
// visual's origin and the visual's clip is applied.
type Drawer interface {
	Draw(v *Visual, r Renderer)
}

// Attacher acquires and releases external resources. OnDetach receives
// reparenting=true when the visual is moving to another parent in the same
// update; resources must be kept in that case.
type Attacher interface {
	OnAttach(v *Visual)
	OnDetach(v *Visual, reparenting bool)
}

// InputHandler receives bubbling input.
type InputHandler interface {
	OnInput(v *Visual, e *InputEvent)
}

// PreviewInputHandler receives tunneling input.
type PreviewInputHandler interface {
	OnInputPreview(v *Visual, e *InputEvent)
}

// BoundsObserver is told when arrange moves or resizes the visual.
type BoundsObserver interface {
	OnBoundsChanged(v *Visual, old, bounds Rect)
}

// steps is the resolved dispatch table for a behavior. Assertions run once
// in SetBehavior instead of on every layout or render call.
type steps struct {
	measure  Measurer
	arrange  Arranger
	draw     Drawer
	attach   Attacher
	input    InputHandler
	preview  PreviewInputHandler
	boundsCh BoundsObserver
}

func resolveSteps(b Behavior) steps {
	var s steps
	if b == nil {
		return s
	}
	s.measure, _ = b.(Measurer)
	s.arrange, _ = b.(Arranger)
	s.draw, _ = b.(Drawer)
	s.attach, _ = b.(Attacher)
	s.input, _ = b.(InputHandler)
	s.preview, _ = b.(PreviewInputHandler)
	s.boundsCh, _ = b.(BoundsObserver)
	return s
}
