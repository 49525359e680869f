package arbor

import (
	"time"
)

// FrameRenderer is implemented by renderers that need to prepare and finish
// each frame. Canvas.Render calls BeginFrame with the canvas viewport before
// drawing and EndFrame afterwards.
type FrameRenderer interface {
	BeginFrame(viewport Rect)
	EndFrame()
}

// Canvas is the root of a visual tree. It owns the root visual, the renderer,
// pointer and keyboard state, and the layout size.
type Canvas struct {
	visual   *Visual
	renderer Renderer
	opts     Options
	size     Size
	content  Control

	// Input state
	pointers     [maxPointers]pointerState
	captured     [maxPointers]*Visual
	focus        *Visual
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	modifiers    KeyModifiers

	stats frameStats
}

// NewCanvas creates a canvas drawing through r. Options are used as given;
// call Options.Validate first when they come from user input.
func NewCanvas(r Renderer, opts Options) *Canvas {
	c := &Canvas{
		renderer:     r,
		opts:         opts,
		size:         Size{float64(opts.Width), float64(opts.Height)},
		dragDeadZone: opts.DragDeadZone,
	}
	if c.dragDeadZone <= 0 {
		c.dragDeadZone = defaultDragDeadZone
	}
	if opts.DebugMode {
		SetDebugMode(true)
	}

	v := NewContainer("canvas")
	v.canvas = c
	v.Background.Set(opts.Background)
	v.SetDebugOutlines(opts.DebugOutlines)
	v.SetRoot(true)
	c.visual = v
	return c
}

// Visual returns the root visual of the canvas.
func (c *Canvas) Visual() *Visual {
	return c.visual
}

// Renderer returns the renderer the canvas draws through.
func (c *Canvas) Renderer() Renderer {
	return c.renderer
}

// Options returns the options the canvas was created with.
func (c *Canvas) Options() Options {
	return c.opts
}

// SetSize changes the layout size. The tree is re-measured on the next Layout.
func (c *Canvas) SetSize(s Size) {
	if s == c.size {
		return
	}
	c.size = s
	c.visual.InvalidateMeasure()
	logger().Debug("canvas resized", "width", s.Width, "height", s.Height)
}

// Size returns the layout size.
func (c *Canvas) Size() Size {
	return c.size
}

// AddChild appends v to the root visual.
func (c *Canvas) AddChild(v *Visual) {
	c.visual.AddChild(v)
}

// SetContent replaces the canvas content with the visualization of ctrl.
// Passing nil clears the content.
func (c *Canvas) SetContent(ctrl Control) {
	c.visual.RemoveChildren()
	c.content = ctrl
	if ctrl == nil {
		return
	}
	c.visual.AddChild(ctrl.Base().Visualize())
}

// Content returns the control set with SetContent, or nil.
func (c *Canvas) Content() Control {
	return c.content
}

// Layout measures and arranges the tree against the canvas size. Cached
// results make repeated calls free when nothing changed.
func (c *Canvas) Layout() {
	c.visual.Measure(c.size)
	c.visual.Arrange(RectFromSize(c.size))
}

// NeedsRender reports whether anything changed since the last Render.
func (c *Canvas) NeedsRender() bool {
	v := c.visual
	return !v.renderValid || !v.measureValid || !v.arrangeValid
}

// Render lays out the tree and draws it.
func (c *Canvas) Render() {
	if c.renderer == nil {
		panic("arbor: canvas has no renderer")
	}
	var t0 time.Time
	debug := c.opts.DebugMode || globalDebug
	if debug {
		t0 = time.Now()
	}
	c.Layout()
	var t1 time.Time
	if debug {
		t1 = time.Now()
	}

	fr, framed := c.renderer.(FrameRenderer)
	if framed {
		fr.BeginFrame(RectFromSize(c.size))
	}
	c.visual.Render(c.renderer)
	if framed {
		fr.EndFrame()
	}

	if debug {
		c.stats = frameStats{
			layoutTime: t1.Sub(t0),
			renderTime: time.Since(t1),
		}
		countTree(c.visual, &c.stats)
		c.debugLog(c.stats)
	}
}
