// Package arbor is the visual-tree core of a retained-mode UI toolkit.
//
// Application code builds a tree of controls. Each control produces a
// visualization, a tree of [Visual] nodes that measure, arrange, render and
// route input. Arbor provides the machinery underneath: reactive properties,
// the two-pass layout protocol with caching and invalidation bubbling, the
// attach/detach lifecycle, template anchors and the render and input passes.
//
// # Quick start
//
// A [Canvas] owns the root visual and draws through a [Renderer]. Backends
// live in sub-packages: ebitenrender opens a window, ggrender draws to an
// image without a display.
//
//	c := arbor.NewCanvas(r, arbor.DefaultOptions())
//	stack := arbor.NewStack("column", arbor.Vertical)
//	stack.AddChild(arbor.NewText("title", "Hello", arbor.Font{}))
//	c.AddChild(stack)
//	c.Render()
//
// # Properties
//
// Visual attributes are [Property] cells. A cell holds either a literal set
// with Set or a [Binding] computed from other cells; changes are pushed to
// the owning visual with the cell's [InvalidationKind]:
//
//	label.Background.Bind(arbor.When(hovered,
//		arbor.Const(arbor.ColorWhite), arbor.Const(arbor.ColorTransparent)))
//
// # Layout
//
// Layout is measure then arrange. Measure(available) returns the desired size
// including margin; Arrange(final) positions the visual and sets its Bounds.
// Both cache their inputs, so a second call with the same argument and no
// invalidation in between does nothing. Invalidation bubbles to the root and
// stops at the first ancestor that is already invalid.
//
// Kind-specific steps are supplied by a Behavior implementing any of
// [Measurer], [Arranger], [Drawer], [Attacher], [InputHandler],
// [PreviewInputHandler] and [BoundsObserver]. [StackLayout] and
// [TextBehavior] are the built-in behaviors.
//
// # Controls and templates
//
// A [Control] builds its visualization with a [TemplateFunc]. The root of the
// result is the anchor: its unset layout properties read the control's values,
// and input delivered anywhere inside the template reaches the control's
// handlers after the anchor's own.
//
// # Input
//
// [RouteInput] delivers an event in two phases: preview from the root down to
// the target, then bubble from the target up. The canvas turns raw pointer,
// scroll and keyboard samples into routed events and supports injected pointer
// sequences for scripted runs.
package arbor
